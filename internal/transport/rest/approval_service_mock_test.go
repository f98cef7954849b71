package rest

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/approval"
)

var _ approvalService = &approvalServiceMock{}

type approvalServiceMock struct {
	ListPendingFunc    func(ctx context.Context, input approval.ListPendingInput) (*approval.PendingPage, error)
	PendingCountFunc   func(ctx context.Context, domainID string) (int, error)
	SubmitDecisionFunc func(ctx context.Context, input approval.DecisionInput) (*domain.WorkflowInstance, error)

	calls struct {
		ListPending []struct {
			Ctx   context.Context
			Input approval.ListPendingInput
		}
		PendingCount []struct {
			Ctx      context.Context
			DomainID string
		}
		SubmitDecision []struct {
			Ctx   context.Context
			Input approval.DecisionInput
		}
	}
	lockListPending    sync.RWMutex
	lockPendingCount   sync.RWMutex
	lockSubmitDecision sync.RWMutex
}

func (mock *approvalServiceMock) ListPending(ctx context.Context, input approval.ListPendingInput) (*approval.PendingPage, error) {
	if mock.ListPendingFunc == nil {
		panic("approvalServiceMock.ListPendingFunc: method is nil but approvalService.ListPending was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.ListPendingInput
	}{Ctx: ctx, Input: input}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx, input)
}

func (mock *approvalServiceMock) ListPendingCalls() []struct {
	Ctx   context.Context
	Input approval.ListPendingInput
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *approvalServiceMock) PendingCount(ctx context.Context, domainID string) (int, error) {
	if mock.PendingCountFunc == nil {
		panic("approvalServiceMock.PendingCountFunc: method is nil but approvalService.PendingCount was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		DomainID string
	}{Ctx: ctx, DomainID: domainID}
	mock.lockPendingCount.Lock()
	mock.calls.PendingCount = append(mock.calls.PendingCount, callInfo)
	mock.lockPendingCount.Unlock()
	return mock.PendingCountFunc(ctx, domainID)
}

func (mock *approvalServiceMock) PendingCountCalls() []struct {
	Ctx      context.Context
	DomainID string
} {
	mock.lockPendingCount.RLock()
	calls := mock.calls.PendingCount
	mock.lockPendingCount.RUnlock()
	return calls
}

func (mock *approvalServiceMock) SubmitDecision(ctx context.Context, input approval.DecisionInput) (*domain.WorkflowInstance, error) {
	if mock.SubmitDecisionFunc == nil {
		panic("approvalServiceMock.SubmitDecisionFunc: method is nil but approvalService.SubmitDecision was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.DecisionInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitDecision.Lock()
	mock.calls.SubmitDecision = append(mock.calls.SubmitDecision, callInfo)
	mock.lockSubmitDecision.Unlock()
	return mock.SubmitDecisionFunc(ctx, input)
}

func (mock *approvalServiceMock) SubmitDecisionCalls() []struct {
	Ctx   context.Context
	Input approval.DecisionInput
} {
	mock.lockSubmitDecision.RLock()
	calls := mock.calls.SubmitDecision
	mock.lockSubmitDecision.RUnlock()
	return calls
}

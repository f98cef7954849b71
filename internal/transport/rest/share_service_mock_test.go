package rest

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/approval"
)

var _ shareService = &shareServiceMock{}

type shareServiceMock struct {
	GetInstanceFunc        func(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	ListSharesFunc         func(ctx context.Context, input approval.ListSharesInput) ([]domain.ShareMapping, int, error)
	SubmitShareRequestFunc func(ctx context.Context, input approval.ShareRequestInput) (*domain.WorkflowInstance, error)

	calls struct {
		GetInstance []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		ListShares []struct {
			Ctx   context.Context
			Input approval.ListSharesInput
		}
		SubmitShareRequest []struct {
			Ctx   context.Context
			Input approval.ShareRequestInput
		}
	}
	lockGetInstance        sync.RWMutex
	lockListShares         sync.RWMutex
	lockSubmitShareRequest sync.RWMutex
}

func (mock *shareServiceMock) GetInstance(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	if mock.GetInstanceFunc == nil {
		panic("shareServiceMock.GetInstanceFunc: method is nil but shareService.GetInstance was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGetInstance.Lock()
	mock.calls.GetInstance = append(mock.calls.GetInstance, callInfo)
	mock.lockGetInstance.Unlock()
	return mock.GetInstanceFunc(ctx, id)
}

func (mock *shareServiceMock) GetInstanceCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGetInstance.RLock()
	calls := mock.calls.GetInstance
	mock.lockGetInstance.RUnlock()
	return calls
}

func (mock *shareServiceMock) ListShares(ctx context.Context, input approval.ListSharesInput) ([]domain.ShareMapping, int, error) {
	if mock.ListSharesFunc == nil {
		panic("shareServiceMock.ListSharesFunc: method is nil but shareService.ListShares was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.ListSharesInput
	}{Ctx: ctx, Input: input}
	mock.lockListShares.Lock()
	mock.calls.ListShares = append(mock.calls.ListShares, callInfo)
	mock.lockListShares.Unlock()
	return mock.ListSharesFunc(ctx, input)
}

func (mock *shareServiceMock) ListSharesCalls() []struct {
	Ctx   context.Context
	Input approval.ListSharesInput
} {
	mock.lockListShares.RLock()
	calls := mock.calls.ListShares
	mock.lockListShares.RUnlock()
	return calls
}

func (mock *shareServiceMock) SubmitShareRequest(ctx context.Context, input approval.ShareRequestInput) (*domain.WorkflowInstance, error) {
	if mock.SubmitShareRequestFunc == nil {
		panic("shareServiceMock.SubmitShareRequestFunc: method is nil but shareService.SubmitShareRequest was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input approval.ShareRequestInput
	}{Ctx: ctx, Input: input}
	mock.lockSubmitShareRequest.Lock()
	mock.calls.SubmitShareRequest = append(mock.calls.SubmitShareRequest, callInfo)
	mock.lockSubmitShareRequest.Unlock()
	return mock.SubmitShareRequestFunc(ctx, input)
}

func (mock *shareServiceMock) SubmitShareRequestCalls() []struct {
	Ctx   context.Context
	Input approval.ShareRequestInput
} {
	mock.lockSubmitShareRequest.RLock()
	calls := mock.calls.SubmitShareRequest
	mock.lockSubmitShareRequest.RUnlock()
	return calls
}

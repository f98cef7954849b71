package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/workflow"
)

var _ engine = &engineMock{}

type engineMock struct {
	ApplyOutcomeFunc func(ctx context.Context, id uuid.UUID, outcome domain.Outcome) (*domain.WorkflowInstance, error)
	GetFunc          func(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	ResumeFunc       func(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	StartFunc        func(ctx context.Context, input workflow.StartInput) (*domain.WorkflowInstance, error)

	calls struct {
		ApplyOutcome []struct {
			Ctx     context.Context
			ID      uuid.UUID
			Outcome domain.Outcome
		}
		Get []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Resume []struct {
			Ctx context.Context
			ID  uuid.UUID
		}
		Start []struct {
			Ctx   context.Context
			Input workflow.StartInput
		}
	}
	lockApplyOutcome sync.RWMutex
	lockGet          sync.RWMutex
	lockResume       sync.RWMutex
	lockStart        sync.RWMutex
}

func (mock *engineMock) ApplyOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome) (*domain.WorkflowInstance, error) {
	if mock.ApplyOutcomeFunc == nil {
		panic("engineMock.ApplyOutcomeFunc: method is nil but engine.ApplyOutcome was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		ID      uuid.UUID
		Outcome domain.Outcome
	}{Ctx: ctx, ID: id, Outcome: outcome}
	mock.lockApplyOutcome.Lock()
	mock.calls.ApplyOutcome = append(mock.calls.ApplyOutcome, callInfo)
	mock.lockApplyOutcome.Unlock()
	return mock.ApplyOutcomeFunc(ctx, id, outcome)
}

func (mock *engineMock) ApplyOutcomeCalls() []struct {
	Ctx     context.Context
	ID      uuid.UUID
	Outcome domain.Outcome
} {
	mock.lockApplyOutcome.RLock()
	calls := mock.calls.ApplyOutcome
	mock.lockApplyOutcome.RUnlock()
	return calls
}

func (mock *engineMock) Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	if mock.GetFunc == nil {
		panic("engineMock.GetFunc: method is nil but engine.Get was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, id)
}

func (mock *engineMock) GetCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *engineMock) Resume(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	if mock.ResumeFunc == nil {
		panic("engineMock.ResumeFunc: method is nil but engine.Resume was just called")
	}
	callInfo := struct {
		Ctx context.Context
		ID  uuid.UUID
	}{Ctx: ctx, ID: id}
	mock.lockResume.Lock()
	mock.calls.Resume = append(mock.calls.Resume, callInfo)
	mock.lockResume.Unlock()
	return mock.ResumeFunc(ctx, id)
}

func (mock *engineMock) ResumeCalls() []struct {
	Ctx context.Context
	ID  uuid.UUID
} {
	mock.lockResume.RLock()
	calls := mock.calls.Resume
	mock.lockResume.RUnlock()
	return calls
}

func (mock *engineMock) Start(ctx context.Context, input workflow.StartInput) (*domain.WorkflowInstance, error) {
	if mock.StartFunc == nil {
		panic("engineMock.StartFunc: method is nil but engine.Start was just called")
	}
	callInfo := struct {
		Ctx   context.Context
		Input workflow.StartInput
	}{Ctx: ctx, Input: input}
	mock.lockStart.Lock()
	mock.calls.Start = append(mock.calls.Start, callInfo)
	mock.lockStart.Unlock()
	return mock.StartFunc(ctx, input)
}

func (mock *engineMock) StartCalls() []struct {
	Ctx   context.Context
	Input workflow.StartInput
} {
	mock.lockStart.RLock()
	calls := mock.calls.Start
	mock.lockStart.RUnlock()
	return calls
}

package workflow

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

var _ continuations = &continuationsMock{}

type continuationsMock struct {
	IssueFunc func(ctx context.Context, instanceID uuid.UUID) (string, error)

	calls struct {
		Issue []struct {
			Ctx        context.Context
			InstanceID uuid.UUID
		}
	}
	lockIssue sync.RWMutex
}

func (mock *continuationsMock) Issue(ctx context.Context, instanceID uuid.UUID) (string, error) {
	if mock.IssueFunc == nil {
		panic("continuationsMock.IssueFunc: method is nil but continuations.Issue was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		InstanceID uuid.UUID
	}{Ctx: ctx, InstanceID: instanceID}
	mock.lockIssue.Lock()
	mock.calls.Issue = append(mock.calls.Issue, callInfo)
	mock.lockIssue.Unlock()
	return mock.IssueFunc(ctx, instanceID)
}

func (mock *continuationsMock) IssueCalls() []struct {
	Ctx        context.Context
	InstanceID uuid.UUID
} {
	mock.lockIssue.RLock()
	calls := mock.calls.Issue
	mock.lockIssue.RUnlock()
	return calls
}

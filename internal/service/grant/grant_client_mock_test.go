package grant

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ grantClient = &grantClientMock{}

type grantClientMock struct {
	GrantAccessFunc func(ctx context.Context, req domain.GrantRequest) error

	calls struct {
		GrantAccess []struct {
			Ctx context.Context
			Req domain.GrantRequest
		}
	}
	lockGrantAccess sync.RWMutex
}

func (mock *grantClientMock) GrantAccess(ctx context.Context, req domain.GrantRequest) error {
	if mock.GrantAccessFunc == nil {
		panic("grantClientMock.GrantAccessFunc: method is nil but grantClient.GrantAccess was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Req domain.GrantRequest
	}{Ctx: ctx, Req: req}
	mock.lockGrantAccess.Lock()
	mock.calls.GrantAccess = append(mock.calls.GrantAccess, callInfo)
	mock.lockGrantAccess.Unlock()
	return mock.GrantAccessFunc(ctx, req)
}

func (mock *grantClientMock) GrantAccessCalls() []struct {
	Ctx context.Context
	Req domain.GrantRequest
} {
	mock.lockGrantAccess.RLock()
	calls := mock.calls.GrantAccess
	mock.lockGrantAccess.RUnlock()
	return calls
}

package workflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ granter = &granterMock{}

type granterMock struct {
	GrantFunc func(ctx context.Context, ownerDomainID string, targetDomainID string, sel domain.Selector) error

	calls struct {
		Grant []struct {
			Ctx            context.Context
			OwnerDomainID  string
			TargetDomainID string
			Sel            domain.Selector
		}
	}
	lockGrant sync.RWMutex
}

func (mock *granterMock) Grant(ctx context.Context, ownerDomainID string, targetDomainID string, sel domain.Selector) error {
	if mock.GrantFunc == nil {
		panic("granterMock.GrantFunc: method is nil but granter.Grant was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		OwnerDomainID  string
		TargetDomainID string
		Sel            domain.Selector
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, TargetDomainID: targetDomainID, Sel: sel}
	mock.lockGrant.Lock()
	mock.calls.Grant = append(mock.calls.Grant, callInfo)
	mock.lockGrant.Unlock()
	return mock.GrantFunc(ctx, ownerDomainID, targetDomainID, sel)
}

func (mock *granterMock) GrantCalls() []struct {
	Ctx            context.Context
	OwnerDomainID  string
	TargetDomainID string
	Sel            domain.Selector
} {
	mock.lockGrant.RLock()
	calls := mock.calls.Grant
	mock.lockGrant.RUnlock()
	return calls
}

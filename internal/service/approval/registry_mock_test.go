package approval

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ registry = &registryMock{}

type registryMock struct {
	RedeemFunc func(ctx context.Context, token string, outcome domain.Outcome) (uuid.UUID, error)

	calls struct {
		Redeem []struct {
			Ctx     context.Context
			Token   string
			Outcome domain.Outcome
		}
	}
	lockRedeem sync.RWMutex
}

func (mock *registryMock) Redeem(ctx context.Context, token string, outcome domain.Outcome) (uuid.UUID, error) {
	if mock.RedeemFunc == nil {
		panic("registryMock.RedeemFunc: method is nil but registry.Redeem was just called")
	}
	callInfo := struct {
		Ctx     context.Context
		Token   string
		Outcome domain.Outcome
	}{Ctx: ctx, Token: token, Outcome: outcome}
	mock.lockRedeem.Lock()
	mock.calls.Redeem = append(mock.calls.Redeem, callInfo)
	mock.lockRedeem.Unlock()
	return mock.RedeemFunc(ctx, token, outcome)
}

func (mock *registryMock) RedeemCalls() []struct {
	Ctx     context.Context
	Token   string
	Outcome domain.Outcome
} {
	mock.lockRedeem.RLock()
	calls := mock.calls.Redeem
	mock.lockRedeem.RUnlock()
	return calls
}

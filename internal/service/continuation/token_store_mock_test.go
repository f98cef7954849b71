package continuation

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ tokenStore = &tokenStoreMock{}

type tokenStoreMock struct {
	CreateFunc func(ctx context.Context, tokenHash []byte, instanceID uuid.UUID) error
	RedeemFunc func(ctx context.Context, tokenHash []byte, outcome domain.Outcome) (uuid.UUID, error)

	calls struct {
		Create []struct {
			Ctx        context.Context
			TokenHash  []byte
			InstanceID uuid.UUID
		}
		Redeem []struct {
			Ctx       context.Context
			TokenHash []byte
			Outcome   domain.Outcome
		}
	}
	lockCreate sync.RWMutex
	lockRedeem sync.RWMutex
}

func (mock *tokenStoreMock) Create(ctx context.Context, tokenHash []byte, instanceID uuid.UUID) error {
	if mock.CreateFunc == nil {
		panic("tokenStoreMock.CreateFunc: method is nil but tokenStore.Create was just called")
	}
	callInfo := struct {
		Ctx        context.Context
		TokenHash  []byte
		InstanceID uuid.UUID
	}{Ctx: ctx, TokenHash: tokenHash, InstanceID: instanceID}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, tokenHash, instanceID)
}

func (mock *tokenStoreMock) CreateCalls() []struct {
	Ctx        context.Context
	TokenHash  []byte
	InstanceID uuid.UUID
} {
	mock.lockCreate.RLock()
	calls := mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}

func (mock *tokenStoreMock) Redeem(ctx context.Context, tokenHash []byte, outcome domain.Outcome) (uuid.UUID, error) {
	if mock.RedeemFunc == nil {
		panic("tokenStoreMock.RedeemFunc: method is nil but tokenStore.Redeem was just called")
	}
	callInfo := struct {
		Ctx       context.Context
		TokenHash []byte
		Outcome   domain.Outcome
	}{Ctx: ctx, TokenHash: tokenHash, Outcome: outcome}
	mock.lockRedeem.Lock()
	mock.calls.Redeem = append(mock.calls.Redeem, callInfo)
	mock.lockRedeem.Unlock()
	return mock.RedeemFunc(ctx, tokenHash, outcome)
}

func (mock *tokenStoreMock) RedeemCalls() []struct {
	Ctx       context.Context
	TokenHash []byte
	Outcome   domain.Outcome
} {
	mock.lockRedeem.RLock()
	calls := mock.calls.Redeem
	mock.lockRedeem.RUnlock()
	return calls
}

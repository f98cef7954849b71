package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ ledgerRepo = &ledgerRepoMock{}

type ledgerRepoMock struct {
	AddPendingFunc    func(ctx context.Context, ownerDomainID string, delta int) (int, error)
	DeleteRequestFunc func(ctx context.Context, ownerDomainID string, requestID string) (*domain.ApprovalRequest, error)
	GetRequestFunc    func(ctx context.Context, ownerDomainID string, requestID string) (*domain.ApprovalRequest, error)
	ListPendingFunc   func(ctx context.Context, ownerDomainID string, limit int, afterRequestID string) ([]domain.ApprovalRequest, error)
	SumCountersFunc   func(ctx context.Context, ownerDomainIDs []string) (int, error)

	calls struct {
		AddPending []struct {
			Ctx           context.Context
			OwnerDomainID string
			Delta         int
		}
		DeleteRequest []struct {
			Ctx           context.Context
			OwnerDomainID string
			RequestID     string
		}
		GetRequest []struct {
			Ctx           context.Context
			OwnerDomainID string
			RequestID     string
		}
		ListPending []struct {
			Ctx            context.Context
			OwnerDomainID  string
			Limit          int
			AfterRequestID string
		}
		SumCounters []struct {
			Ctx            context.Context
			OwnerDomainIDs []string
		}
	}
	lockAddPending    sync.RWMutex
	lockDeleteRequest sync.RWMutex
	lockGetRequest    sync.RWMutex
	lockListPending   sync.RWMutex
	lockSumCounters   sync.RWMutex
}

func (mock *ledgerRepoMock) AddPending(ctx context.Context, ownerDomainID string, delta int) (int, error) {
	if mock.AddPendingFunc == nil {
		panic("ledgerRepoMock.AddPendingFunc: method is nil but ledgerRepo.AddPending was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		Delta         int
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, Delta: delta}
	mock.lockAddPending.Lock()
	mock.calls.AddPending = append(mock.calls.AddPending, callInfo)
	mock.lockAddPending.Unlock()
	return mock.AddPendingFunc(ctx, ownerDomainID, delta)
}

func (mock *ledgerRepoMock) AddPendingCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	Delta         int
} {
	mock.lockAddPending.RLock()
	calls := mock.calls.AddPending
	mock.lockAddPending.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) DeleteRequest(ctx context.Context, ownerDomainID string, requestID string) (*domain.ApprovalRequest, error) {
	if mock.DeleteRequestFunc == nil {
		panic("ledgerRepoMock.DeleteRequestFunc: method is nil but ledgerRepo.DeleteRequest was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		RequestID     string
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, RequestID: requestID}
	mock.lockDeleteRequest.Lock()
	mock.calls.DeleteRequest = append(mock.calls.DeleteRequest, callInfo)
	mock.lockDeleteRequest.Unlock()
	return mock.DeleteRequestFunc(ctx, ownerDomainID, requestID)
}

func (mock *ledgerRepoMock) DeleteRequestCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	RequestID     string
} {
	mock.lockDeleteRequest.RLock()
	calls := mock.calls.DeleteRequest
	mock.lockDeleteRequest.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) GetRequest(ctx context.Context, ownerDomainID string, requestID string) (*domain.ApprovalRequest, error) {
	if mock.GetRequestFunc == nil {
		panic("ledgerRepoMock.GetRequestFunc: method is nil but ledgerRepo.GetRequest was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		RequestID     string
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, RequestID: requestID}
	mock.lockGetRequest.Lock()
	mock.calls.GetRequest = append(mock.calls.GetRequest, callInfo)
	mock.lockGetRequest.Unlock()
	return mock.GetRequestFunc(ctx, ownerDomainID, requestID)
}

func (mock *ledgerRepoMock) GetRequestCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	RequestID     string
} {
	mock.lockGetRequest.RLock()
	calls := mock.calls.GetRequest
	mock.lockGetRequest.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) ListPending(ctx context.Context, ownerDomainID string, limit int, afterRequestID string) ([]domain.ApprovalRequest, error) {
	if mock.ListPendingFunc == nil {
		panic("ledgerRepoMock.ListPendingFunc: method is nil but ledgerRepo.ListPending was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		OwnerDomainID  string
		Limit          int
		AfterRequestID string
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, Limit: limit, AfterRequestID: afterRequestID}
	mock.lockListPending.Lock()
	mock.calls.ListPending = append(mock.calls.ListPending, callInfo)
	mock.lockListPending.Unlock()
	return mock.ListPendingFunc(ctx, ownerDomainID, limit, afterRequestID)
}

func (mock *ledgerRepoMock) ListPendingCalls() []struct {
	Ctx            context.Context
	OwnerDomainID  string
	Limit          int
	AfterRequestID string
} {
	mock.lockListPending.RLock()
	calls := mock.calls.ListPending
	mock.lockListPending.RUnlock()
	return calls
}

func (mock *ledgerRepoMock) SumCounters(ctx context.Context, ownerDomainIDs []string) (int, error) {
	if mock.SumCountersFunc == nil {
		panic("ledgerRepoMock.SumCountersFunc: method is nil but ledgerRepo.SumCounters was just called")
	}
	callInfo := struct {
		Ctx            context.Context
		OwnerDomainIDs []string
	}{Ctx: ctx, OwnerDomainIDs: ownerDomainIDs}
	mock.lockSumCounters.Lock()
	mock.calls.SumCounters = append(mock.calls.SumCounters, callInfo)
	mock.lockSumCounters.Unlock()
	return mock.SumCountersFunc(ctx, ownerDomainIDs)
}

func (mock *ledgerRepoMock) SumCountersCalls() []struct {
	Ctx            context.Context
	OwnerDomainIDs []string
} {
	mock.lockSumCounters.RLock()
	calls := mock.calls.SumCounters
	mock.lockSumCounters.RUnlock()
	return calls
}

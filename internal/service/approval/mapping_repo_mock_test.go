package approval

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ mappingRepo = &mappingRepoMock{}

type mappingRepoMock struct {
	GetFunc    func(ctx context.Context, ownerDomainID string, mappingKey string) (*domain.ShareMapping, error)
	ListFunc   func(ctx context.Context, ownerDomainID string, limit int, offset int) ([]domain.ShareMapping, int, error)
	UpsertFunc func(ctx context.Context, m domain.ShareMapping) error

	calls struct {
		Get []struct {
			Ctx           context.Context
			OwnerDomainID string
			MappingKey    string
		}
		List []struct {
			Ctx           context.Context
			OwnerDomainID string
			Limit         int
			Offset        int
		}
		Upsert []struct {
			Ctx context.Context
			M   domain.ShareMapping
		}
	}
	lockGet    sync.RWMutex
	lockList   sync.RWMutex
	lockUpsert sync.RWMutex
}

func (mock *mappingRepoMock) Get(ctx context.Context, ownerDomainID string, mappingKey string) (*domain.ShareMapping, error) {
	if mock.GetFunc == nil {
		panic("mappingRepoMock.GetFunc: method is nil but mappingRepo.Get was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		MappingKey    string
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, MappingKey: mappingKey}
	mock.lockGet.Lock()
	mock.calls.Get = append(mock.calls.Get, callInfo)
	mock.lockGet.Unlock()
	return mock.GetFunc(ctx, ownerDomainID, mappingKey)
}

func (mock *mappingRepoMock) GetCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	MappingKey    string
} {
	mock.lockGet.RLock()
	calls := mock.calls.Get
	mock.lockGet.RUnlock()
	return calls
}

func (mock *mappingRepoMock) List(ctx context.Context, ownerDomainID string, limit int, offset int) ([]domain.ShareMapping, int, error) {
	if mock.ListFunc == nil {
		panic("mappingRepoMock.ListFunc: method is nil but mappingRepo.List was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		Limit         int
		Offset        int
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, Limit: limit, Offset: offset}
	mock.lockList.Lock()
	mock.calls.List = append(mock.calls.List, callInfo)
	mock.lockList.Unlock()
	return mock.ListFunc(ctx, ownerDomainID, limit, offset)
}

func (mock *mappingRepoMock) ListCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	Limit         int
	Offset        int
} {
	mock.lockList.RLock()
	calls := mock.calls.List
	mock.lockList.RUnlock()
	return calls
}

func (mock *mappingRepoMock) Upsert(ctx context.Context, m domain.ShareMapping) error {
	if mock.UpsertFunc == nil {
		panic("mappingRepoMock.UpsertFunc: method is nil but mappingRepo.Upsert was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.ShareMapping
	}{Ctx: ctx, M: m}
	mock.lockUpsert.Lock()
	mock.calls.Upsert = append(mock.calls.Upsert, callInfo)
	mock.lockUpsert.Unlock()
	return mock.UpsertFunc(ctx, m)
}

func (mock *mappingRepoMock) UpsertCalls() []struct {
	Ctx context.Context
	M   domain.ShareMapping
} {
	mock.lockUpsert.RLock()
	calls := mock.calls.Upsert
	mock.lockUpsert.RUnlock()
	return calls
}

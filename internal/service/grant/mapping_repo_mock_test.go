package grant

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ mappingRepo = &mappingRepoMock{}

type mappingRepoMock struct {
	UpsertFunc func(ctx context.Context, m domain.ShareMapping) error

	calls struct {
		Upsert []struct {
			Ctx context.Context
			M   domain.ShareMapping
		}
	}
	lockUpsert sync.RWMutex
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

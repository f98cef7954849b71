package workflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ publisher = &publisherMock{}

type publisherMock struct {
	PublishShareGrantedFunc func(ctx context.Context, ev domain.ShareGrantedEvent) error

	calls struct {
		PublishShareGranted []struct {
			Ctx context.Context
			Ev  domain.ShareGrantedEvent
		}
	}
	lockPublishShareGranted sync.RWMutex
}

func (mock *publisherMock) PublishShareGranted(ctx context.Context, ev domain.ShareGrantedEvent) error {
	if mock.PublishShareGrantedFunc == nil {
		panic("publisherMock.PublishShareGrantedFunc: method is nil but publisher.PublishShareGranted was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ev  domain.ShareGrantedEvent
	}{Ctx: ctx, Ev: ev}
	mock.lockPublishShareGranted.Lock()
	mock.calls.PublishShareGranted = append(mock.calls.PublishShareGranted, callInfo)
	mock.lockPublishShareGranted.Unlock()
	return mock.PublishShareGrantedFunc(ctx, ev)
}

func (mock *publisherMock) PublishShareGrantedCalls() []struct {
	Ctx context.Context
	Ev  domain.ShareGrantedEvent
} {
	mock.lockPublishShareGranted.RLock()
	calls := mock.calls.PublishShareGranted
	mock.lockPublishShareGranted.RUnlock()
	return calls
}

package workflow

import (
	"context"
	"sync"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

var _ classifier = &classifierMock{}

type classifierMock struct {
	GetClassificationFunc func(ctx context.Context, ownerDomainID string, res domain.ResourceSelector) (*domain.Classification, error)

	calls struct {
		GetClassification []struct {
			Ctx           context.Context
			OwnerDomainID string
			Res           domain.ResourceSelector
		}
	}
	lockGetClassification sync.RWMutex
}

func (mock *classifierMock) GetClassification(ctx context.Context, ownerDomainID string, res domain.ResourceSelector) (*domain.Classification, error) {
	if mock.GetClassificationFunc == nil {
		panic("classifierMock.GetClassificationFunc: method is nil but classifier.GetClassification was just called")
	}
	callInfo := struct {
		Ctx           context.Context
		OwnerDomainID string
		Res           domain.ResourceSelector
	}{Ctx: ctx, OwnerDomainID: ownerDomainID, Res: res}
	mock.lockGetClassification.Lock()
	mock.calls.GetClassification = append(mock.calls.GetClassification, callInfo)
	mock.lockGetClassification.Unlock()
	return mock.GetClassificationFunc(ctx, ownerDomainID, res)
}

func (mock *classifierMock) GetClassificationCalls() []struct {
	Ctx           context.Context
	OwnerDomainID string
	Res           domain.ResourceSelector
} {
	mock.lockGetClassification.RLock()
	calls := mock.calls.GetClassification
	mock.lockGetClassification.RUnlock()
	return calls
}

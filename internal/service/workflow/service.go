// Package workflow drives share workflow instances through their persisted
// state machine.
package workflow

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/config"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

type instanceRepo interface {
	Create(ctx context.Context, inst *domain.WorkflowInstance) error
	Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	Transition(ctx context.Context, inst *domain.WorkflowInstance) error
	ListRunnable(ctx context.Context, staleBefore time.Time, limit int) ([]uuid.UUID, error)
	CountByState(ctx context.Context) (map[domain.InstanceState]int, error)
}

type ledgerRepo interface {
	CreateRequest(ctx context.Context, req domain.ApprovalRequest) error
	AddPending(ctx context.Context, ownerDomainID string, delta int) (int, error)
}

type mappingRepo interface {
	Upsert(ctx context.Context, m domain.ShareMapping) error
}

type classifier interface {
	GetClassification(ctx context.Context, ownerDomainID string, res domain.ResourceSelector) (*domain.Classification, error)
}

type granter interface {
	Grant(ctx context.Context, ownerDomainID, targetDomainID string, sel domain.Selector) error
}

type continuations interface {
	Issue(ctx context.Context, instanceID uuid.UUID) (string, error)
}

type publisher interface {
	PublishShareGranted(ctx context.Context, ev domain.ShareGrantedEvent) error
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Engine runs share workflow instances. Every transition is persisted with an
// optimistic revision check before the next step starts, so any number of
// drivers may call Run for the same instance.
type Engine struct {
	instances  instanceRepo
	ledger     ledgerRepo
	mappings   mappingRepo
	catalog    classifier
	grants     granter
	tokens     continuations
	events     publisher
	tx         txManager
	cfg        config.WorkflowConfig
	log        *slog.Logger
	now        func() time.Time
	retryDelay time.Duration
}

// NewEngine creates a new workflow Engine.
func NewEngine(
	log *slog.Logger,
	cfg config.WorkflowConfig,
	instances instanceRepo,
	ledger ledgerRepo,
	mappings mappingRepo,
	catalog classifier,
	grants granter,
	tokens continuations,
	events publisher,
	tx txManager,
) *Engine {
	return &Engine{
		instances:  instances,
		ledger:     ledger,
		mappings:   mappings,
		catalog:    catalog,
		grants:     grants,
		tokens:     tokens,
		events:     events,
		tx:         tx,
		cfg:        cfg,
		log:        log.With("service", "workflow"),
		now:        time.Now,
		retryDelay: time.Millisecond,
	}
}

// Get returns an instance by ID.
func (e *Engine) Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	return e.instances.Get(ctx, id)
}

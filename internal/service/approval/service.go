package approval

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
	"github.com/heartmarshall/domainshare-backend/internal/service/workflow"
)

type ledgerRepo interface {
	GetRequest(ctx context.Context, ownerDomainID, requestID string) (*domain.ApprovalRequest, error)
	ListPending(ctx context.Context, ownerDomainID string, limit int, afterRequestID string) ([]domain.ApprovalRequest, error)
	DeleteRequest(ctx context.Context, ownerDomainID, requestID string) (*domain.ApprovalRequest, error)
	AddPending(ctx context.Context, ownerDomainID string, delta int) (int, error)
	SumCounters(ctx context.Context, ownerDomainIDs []string) (int, error)
}

type mappingRepo interface {
	Get(ctx context.Context, ownerDomainID, mappingKey string) (*domain.ShareMapping, error)
	Upsert(ctx context.Context, m domain.ShareMapping) error
	List(ctx context.Context, ownerDomainID string, limit, offset int) ([]domain.ShareMapping, int, error)
}

type registry interface {
	Redeem(ctx context.Context, token string, outcome domain.Outcome) (uuid.UUID, error)
}

type engine interface {
	Start(ctx context.Context, input workflow.StartInput) (*domain.WorkflowInstance, error)
	Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
	ApplyOutcome(ctx context.Context, id uuid.UUID, outcome domain.Outcome) (*domain.WorkflowInstance, error)
	Resume(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 200
)

// Service is the inbound surface of the share workflow: share submission,
// reviewer decisions and the pending-approval views.
type Service struct {
	ledger   ledgerRepo
	mappings mappingRepo
	tokens   registry
	engine   engine
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new approval Service.
func NewService(
	log *slog.Logger,
	ledger ledgerRepo,
	mappings mappingRepo,
	tokens registry,
	engine engine,
	tx txManager,
) *Service {
	return &Service{
		ledger:   ledger,
		mappings: mappings,
		tokens:   tokens,
		engine:   engine,
		tx:       tx,
		log:      log.With("service", "approval"),
	}
}

package testhelper

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres/instance"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// UniqueDomain returns a domain id that no other test uses.
func UniqueDomain(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedInstance stores a workflow instance in the given state for a
// resource-mode share of owner's db.table with target.
func SeedInstance(t *testing.T, pool *pgxpool.Pool, state domain.InstanceState, owner, target string) domain.WorkflowInstance {
	t.Helper()

	now := time.Now().UTC().Truncate(time.Microsecond)
	inst := domain.WorkflowInstance{
		ID:        uuid.New(),
		State:     state,
		Context:   domain.NewShareContext(domain.ResourceSelector{Database: "sales", Table: "orders"}, owner, target, "seed"),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := instance.New(pool).Create(context.Background(), &inst); err != nil {
		t.Fatalf("testhelper: SeedInstance: %v", err)
	}
	return inst
}

// SeedRequest stores a pending approval request for owner and bumps the
// owner's counter, the way the workflow does.
func SeedRequest(t *testing.T, pool *pgxpool.Pool, owner, target string, createdAt time.Time) domain.ApprovalRequest {
	t.Helper()
	ctx := context.Background()

	inst := SeedInstance(t, pool, domain.StateAwaitingApproval, owner, target)
	req := domain.ApprovalRequest{
		OwnerDomainID:      owner,
		RequestID:          domain.NewRequestID(createdAt),
		Mode:               domain.ModeResourceBased,
		ContinuationToken:  "seed-token-" + uuid.New().String(),
		TargetDomainID:     target,
		SourceResourceKey:  "sales.orders",
		ResourceMappingKey: "sales.orders#" + target,
		InstanceID:         inst.ID,
		CreatedAt:          createdAt.UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO approval_ledger (owner_domain_id, request_id, mode, continuation_token, target_domain_id,
			source_resource_key, resource_mapping_key, instance_id, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		req.OwnerDomainID, req.RequestID, string(req.Mode), req.ContinuationToken, req.TargetDomainID,
		req.SourceResourceKey, req.ResourceMappingKey, req.InstanceID, req.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRequest insert: %v", err)
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO approval_ledger (owner_domain_id, request_id, pending_count) VALUES ($1, $2, 1)
		 ON CONFLICT (owner_domain_id, request_id) DO UPDATE SET pending_count = approval_ledger.pending_count + 1`,
		owner, domain.PendingCounterKey,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedRequest counter: %v", err)
	}

	return req
}

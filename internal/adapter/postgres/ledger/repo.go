// Package ledger implements the approval ledger: pending approval requests
// and the per-domain pending counter, stored in one PostgreSQL table.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

const (
	table          = "approval_ledger"
	pkeyConstraint = "approval_ledger_pkey"
)

var requestColumns = []string{
	"owner_domain_id",
	"request_id",
	"mode",
	"continuation_token",
	"target_domain_id",
	"source_resource_key",
	"resource_mapping_key",
	"instance_id",
	"created_at",
}

// Repo provides approval ledger persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new ledger repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// ---------------------------------------------------------------------------
// Approval requests
// ---------------------------------------------------------------------------

// CreateRequest inserts a pending approval request. A request with the same
// (owner, request id) already present means two writers raced for the same
// millisecond; that surfaces as domain.ErrTransactionConflict.
func (r *Repo) CreateRequest(ctx context.Context, req domain.ApprovalRequest) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns(requestColumns...).
		Values(
			req.OwnerDomainID,
			req.RequestID,
			string(req.Mode),
			req.ContinuationToken,
			req.TargetDomainID,
			req.SourceResourceKey,
			req.ResourceMappingKey,
			req.InstanceID,
			req.CreatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert approval_request: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		if postgres.IsUniqueViolation(err, pkeyConstraint) {
			return fmt.Errorf("approval_request %s/%s: %w", req.OwnerDomainID, req.RequestID, domain.ErrTransactionConflict)
		}
		return postgres.MapError(err, "approval_request", req.OwnerDomainID+"/"+req.RequestID)
	}
	return nil
}

// GetRequest returns a pending approval request by key.
// Returns domain.ErrNotFound if it does not exist.
func (r *Repo) GetRequest(ctx context.Context, ownerDomainID, requestID string) (*domain.ApprovalRequest, error) {
	query, args, err := postgres.Builder().
		Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID, "request_id": requestID}).
		Where(squirrel.Like{"request_id": domain.PendingRequestPrefix + "%"}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select approval_request: %w", err)
	}

	req, err := scanRequest(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "approval_request", ownerDomainID+"/"+requestID)
	}
	return &req, nil
}

// ListPending returns up to limit pending requests of a domain ordered by
// request id, starting strictly after afterRequestID (empty = from the start).
func (r *Repo) ListPending(ctx context.Context, ownerDomainID string, limit int, afterRequestID string) ([]domain.ApprovalRequest, error) {
	b := postgres.Builder().
		Select(requestColumns...).
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID}).
		Where(squirrel.Like{"request_id": domain.PendingRequestPrefix + "%"}).
		OrderBy("request_id ASC").
		Limit(uint64(limit))
	if afterRequestID != "" {
		b = b.Where(squirrel.Gt{"request_id": afterRequestID})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list approval_requests: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list approval_requests: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ApprovalRequest, 0, limit)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan approval_request: %w", err)
		}
		out = append(out, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list approval_requests: %w", err)
	}
	return out, nil
}

// CountRequests returns the number of live request rows of a domain.
func (r *Repo) CountRequests(ctx context.Context, ownerDomainID string) (int, error) {
	query, args, err := postgres.Builder().
		Select("count(*)").
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID}).
		Where(squirrel.Like{"request_id": domain.PendingRequestPrefix + "%"}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count approval_requests: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count approval_requests: %w", err)
	}
	return n, nil
}

// DeleteRequest removes a pending request and returns the deleted row.
// Returns domain.ErrNotFound if no row was deleted.
func (r *Repo) DeleteRequest(ctx context.Context, ownerDomainID, requestID string) (*domain.ApprovalRequest, error) {
	query, args, err := postgres.Builder().
		Delete(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID, "request_id": requestID}).
		Where(squirrel.Like{"request_id": domain.PendingRequestPrefix + "%"}).
		Suffix("RETURNING " + strings.Join(requestColumns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delete approval_request: %w", err)
	}

	req, err := scanRequest(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "approval_request", ownerDomainID+"/"+requestID)
	}
	return &req, nil
}

// ---------------------------------------------------------------------------
// Pending counter
// ---------------------------------------------------------------------------

// AddPending atomically adds delta to the domain's pending counter and returns
// the new value. A missing counter starts at zero. The table's CHECK
// constraint rejects a negative result with domain.ErrValidation.
func (r *Repo) AddPending(ctx context.Context, ownerDomainID string, delta int) (int, error) {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("owner_domain_id", "request_id", "pending_count").
		Values(ownerDomainID, domain.PendingCounterKey, delta).
		Suffix(`ON CONFLICT (owner_domain_id, request_id) DO UPDATE
			SET pending_count = approval_ledger.pending_count + EXCLUDED.pending_count,
			    updated_at = now()
			RETURNING pending_count`).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build add pending: %w", err)
	}

	var n int
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&n); err != nil {
		return 0, postgres.MapError(err, "pending_counter", ownerDomainID)
	}
	return n, nil
}

// GetCounter returns the domain's pending counter, zero if it was never written.
func (r *Repo) GetCounter(ctx context.Context, ownerDomainID string) (domain.PendingCounter, error) {
	query, args, err := postgres.Builder().
		Select("pending_count").
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID, "request_id": domain.PendingCounterKey}).
		ToSql()
	if err != nil {
		return domain.PendingCounter{}, fmt.Errorf("build select pending_counter: %w", err)
	}

	c := domain.PendingCounter{OwnerDomainID: ownerDomainID}
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&c.PendingCount)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return domain.PendingCounter{}, postgres.MapError(err, "pending_counter", ownerDomainID)
	}
	return c, nil
}

// SumCounters returns the total of the pending counters of the given domains.
func (r *Repo) SumCounters(ctx context.Context, ownerDomainIDs []string) (int, error) {
	if len(ownerDomainIDs) == 0 {
		return 0, nil
	}

	query, args, err := postgres.Builder().
		Select("COALESCE(SUM(pending_count), 0)").
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainIDs, "request_id": domain.PendingCounterKey}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build sum pending_counters: %w", err)
	}

	var total int64
	if err := postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum pending_counters: %w", err)
	}
	return int(total), nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func scanRequest(row pgx.Row) (domain.ApprovalRequest, error) {
	var (
		req  domain.ApprovalRequest
		mode string
	)
	err := row.Scan(
		&req.OwnerDomainID,
		&req.RequestID,
		&mode,
		&req.ContinuationToken,
		&req.TargetDomainID,
		&req.SourceResourceKey,
		&req.ResourceMappingKey,
		&req.InstanceID,
		&req.CreatedAt,
	)
	req.Mode = domain.ApprovalMode(mode)
	return req, err
}

// Package sharemapping stores which resources of a domain are shared with,
// pending for, or rejected for which target domains.
package sharemapping

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

const table = "share_mappings"

var columns = []string{
	"owner_domain_id",
	"resource_mapping_key",
	"target_domain_id",
	"mode",
	"status",
	"updated_at",
}

// Repo provides share-mapping persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new share-mapping repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Get returns the mapping for (owner, key).
// Returns domain.ErrNotFound if the pair was never requested.
func (r *Repo) Get(ctx context.Context, ownerDomainID, mappingKey string) (*domain.ShareMapping, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"owner_domain_id": ownerDomainID, "resource_mapping_key": mappingKey}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select share_mapping: %w", err)
	}

	m, err := scanMapping(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "share_mapping", ownerDomainID+"/"+mappingKey)
	}
	return &m, nil
}

// Upsert creates the mapping or overwrites its status. Rows are never deleted.
func (r *Repo) Upsert(ctx context.Context, m domain.ShareMapping) error {
	if !m.Status.IsValid() {
		return domain.NewValidationError("status", "must be pending, shared or rejected")
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("owner_domain_id", "resource_mapping_key", "target_domain_id", "mode", "status").
		Values(m.OwnerDomainID, m.ResourceMappingKey, m.TargetDomainID, string(m.Mode), string(m.Status)).
		Suffix(`ON CONFLICT (owner_domain_id, resource_mapping_key) DO UPDATE
			SET status = EXCLUDED.status,
			    target_domain_id = EXCLUDED.target_domain_id,
			    mode = EXCLUDED.mode,
			    updated_at = now()`).
		ToSql()
	if err != nil {
		return fmt.Errorf("build upsert share_mapping: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "share_mapping", m.OwnerDomainID+"/"+m.ResourceMappingKey)
	}
	return nil
}

// List returns one page of an owner domain's mappings, most recently updated
// first, together with the total number of mappings.
func (r *Repo) List(ctx context.Context, ownerDomainID string, limit, offset int) ([]domain.ShareMapping, int, error) {
	q := postgres.QuerierFromCtx(ctx, r.pool)
	where := squirrel.Eq{"owner_domain_id": ownerDomainID}

	countSQL, countArgs, err := postgres.Builder().Select("count(*)").From(table).Where(where).ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build count share_mappings: %w", err)
	}
	var total int
	if err := q.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count share_mappings: %w", err)
	}

	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(where).
		OrderBy("updated_at DESC", "resource_mapping_key ASC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list share_mappings: %w", err)
	}

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list share_mappings: %w", err)
	}
	defer rows.Close()

	out := make([]domain.ShareMapping, 0, limit)
	for rows.Next() {
		m, err := scanMapping(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan share_mapping: %w", err)
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list share_mappings: %w", err)
	}

	return out, total, nil
}

func scanMapping(row pgx.Row) (domain.ShareMapping, error) {
	var (
		m            domain.ShareMapping
		mode, status string
	)
	err := row.Scan(&m.OwnerDomainID, &m.ResourceMappingKey, &m.TargetDomainID, &mode, &status, &m.UpdatedAt)
	m.Mode = domain.ApprovalMode(mode)
	m.Status = domain.ShareStatus(status)
	return m, err
}

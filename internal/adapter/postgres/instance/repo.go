// Package instance persists workflow instances. Every transition is an
// optimistic update guarded by the instance revision.
package instance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

const table = "workflow_instances"

var columns = []string{
	"id", "state", "context", "failure", "revision", "created_at", "updated_at",
}

// Repo provides workflow instance persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new instance repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create inserts a new instance at revision 0.
func (r *Repo) Create(ctx context.Context, inst *domain.WorkflowInstance) error {
	raw, err := encodeContext(inst.Context)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder().
		Insert(table).
		Columns("id", "state", "mode", "owner_domain_id", "target_domain_id", "context", "failure", "revision", "created_at", "updated_at").
		Values(
			inst.ID,
			string(inst.State),
			string(inst.Context.Mode),
			inst.Context.OwnerDomainID,
			inst.Context.TargetDomainID,
			raw,
			inst.Failure,
			int64(0),
			inst.CreatedAt,
			inst.UpdatedAt,
		).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert workflow_instance: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "workflow_instance", inst.ID.String())
	}
	inst.Revision = 0
	return nil
}

// Get returns an instance by ID. Returns domain.ErrNotFound if absent.
func (r *Repo) Get(ctx context.Context, id uuid.UUID) (*domain.WorkflowInstance, error) {
	query, args, err := postgres.Builder().
		Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select workflow_instance: %w", err)
	}

	inst, err := scanInstance(postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...))
	if err != nil {
		return nil, postgres.MapError(err, "workflow_instance", id.String())
	}
	return inst, nil
}

// Transition persists inst's state, context and failure if the stored
// revision still equals inst.Revision. On success inst.Revision is advanced
// and UpdatedAt refreshed. A stale revision returns domain.ErrConflict.
func (r *Repo) Transition(ctx context.Context, inst *domain.WorkflowInstance) error {
	raw, err := encodeContext(inst.Context)
	if err != nil {
		return err
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("state", string(inst.State)).
		Set("context", raw).
		Set("failure", inst.Failure).
		Set("revision", squirrel.Expr("revision + 1")).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": inst.ID.String(), "revision": inst.Revision}).
		Suffix("RETURNING revision, updated_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("build update workflow_instance: %w", err)
	}

	var (
		revision  int64
		updatedAt time.Time
	)
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&revision, &updatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.Get(ctx, inst.ID); getErr != nil {
			return getErr
		}
		return fmt.Errorf("workflow_instance %s revision %d: %w", inst.ID, inst.Revision, domain.ErrConflict)
	}
	if err != nil {
		return postgres.MapError(err, "workflow_instance", inst.ID.String())
	}

	inst.Revision = revision
	inst.UpdatedAt = updatedAt
	return nil
}

// ListRunnable returns IDs of instances in a runnable state that have not
// been touched since staleBefore, oldest first.
func (r *Repo) ListRunnable(ctx context.Context, staleBefore time.Time, limit int) ([]uuid.UUID, error) {
	states := make([]string, len(domain.RunnableStates))
	for i, s := range domain.RunnableStates {
		states[i] = string(s)
	}

	query, args, err := postgres.Builder().
		Select("id").
		From(table).
		Where(squirrel.Eq{"state": states}).
		Where(squirrel.LtOrEq{"updated_at": staleBefore}).
		OrderBy("updated_at ASC").
		Limit(uint64(limit)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list runnable workflow_instances: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runnable workflow_instances: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[uuid.UUID])
	if err != nil {
		return nil, fmt.Errorf("list runnable workflow_instances: %w", err)
	}
	return ids, nil
}

// CountByState returns the number of instances per state.
func (r *Repo) CountByState(ctx context.Context) (map[domain.InstanceState]int, error) {
	query, args, err := postgres.Builder().
		Select("state", "count(*)").
		From(table).
		GroupBy("state").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build count workflow_instances: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("count workflow_instances: %w", err)
	}
	defer rows.Close()

	out := make(map[domain.InstanceState]int)
	for rows.Next() {
		var (
			state string
			n     int
		)
		if err := rows.Scan(&state, &n); err != nil {
			return nil, fmt.Errorf("scan workflow_instance count: %w", err)
		}
		out[domain.InstanceState(state)] = n
	}
	return out, rows.Err()
}

func scanInstance(row pgx.Row) (*domain.WorkflowInstance, error) {
	var (
		inst  domain.WorkflowInstance
		state string
		raw   []byte
	)
	if err := row.Scan(&inst.ID, &state, &raw, &inst.Failure, &inst.Revision, &inst.CreatedAt, &inst.UpdatedAt); err != nil {
		return nil, err
	}
	c, err := decodeContext(raw)
	if err != nil {
		return nil, err
	}
	inst.State = domain.InstanceState(state)
	inst.Context = c
	return &inst, nil
}

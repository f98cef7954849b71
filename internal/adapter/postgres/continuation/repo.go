// Package continuation stores continuation tokens of suspended workflow
// instances by hash and redeems each at most once.
package continuation

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/adapter/postgres"
	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

const table = "continuations"

// Repo provides continuation persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
}

// New creates a new continuation repository.
func New(pool *pgxpool.Pool) *Repo {
	return &Repo{pool: pool}
}

// Create registers an unredeemed continuation for an instance.
func (r *Repo) Create(ctx context.Context, tokenHash []byte, instanceID uuid.UUID) error {
	query, args, err := postgres.Builder().
		Insert(table).
		Columns("token_hash", "instance_id").
		Values(tokenHash, instanceID).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert continuation: %w", err)
	}

	if _, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...); err != nil {
		return postgres.MapError(err, "continuation", hashKey(tokenHash))
	}
	return nil
}

// Redeem marks the continuation redeemed with the given outcome and returns
// its instance. The conditional update lets exactly one caller win; unknown
// or already redeemed hashes return domain.ErrInvalidToken.
func (r *Repo) Redeem(ctx context.Context, tokenHash []byte, outcome domain.Outcome) (uuid.UUID, error) {
	output := outcome.Output
	if output == nil {
		output = map[string]string{}
	}

	query, args, err := postgres.Builder().
		Update(table).
		Set("redeemed_at", squirrel.Expr("now()")).
		Set("outcome_success", outcome.Success).
		Set("outcome_output", output).
		Where(squirrel.Expr("token_hash = ?", tokenHash)).
		Where(squirrel.Eq{"redeemed_at": nil}).
		Suffix("RETURNING instance_id").
		ToSql()
	if err != nil {
		return uuid.Nil, fmt.Errorf("build redeem continuation: %w", err)
	}

	var id uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.pool).QueryRow(ctx, query, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return uuid.Nil, domain.ErrInvalidToken
	}
	if err != nil {
		return uuid.Nil, postgres.MapError(err, "continuation", hashKey(tokenHash))
	}
	return id, nil
}

// hashKey is a short, loggable prefix of a token hash.
func hashKey(h []byte) string {
	return hex.EncodeToString(h[:min(4, len(h))])
}

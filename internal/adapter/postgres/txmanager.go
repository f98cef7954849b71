package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/domainshare-backend/internal/domain"
)

// Querier is the common interface implemented by both *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type txCtxKey struct{}

// QuerierFromCtx returns the transaction carried by ctx, or the pool when
// the call runs outside RunInTx.
func QuerierFromCtx(ctx context.Context, pool *pgxpool.Pool) Querier {
	if tx, ok := ctx.Value(txCtxKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

// InTx reports whether ctx carries a transaction started by RunInTx.
func InTx(ctx context.Context) bool {
	_, ok := ctx.Value(txCtxKey{}).(pgx.Tx)
	return ok
}

// TxManager runs functions inside a single database transaction. Every
// repository call made with the callback's context joins that transaction,
// so all writes commit together or not at all.
type TxManager struct {
	pool *pgxpool.Pool
	opts pgx.TxOptions
}

// NewTxManager creates a TxManager. Isolation is one of "read_committed"
// (the default when empty), "repeatable_read" or "serializable".
func NewTxManager(pool *pgxpool.Pool, isolation string) (*TxManager, error) {
	level, err := parseIsolation(isolation)
	if err != nil {
		return nil, err
	}
	return &TxManager{pool: pool, opts: pgx.TxOptions{IsoLevel: level}}, nil
}

func parseIsolation(s string) (pgx.TxIsoLevel, error) {
	switch s {
	case "", "read_committed":
		return pgx.ReadCommitted, nil
	case "repeatable_read":
		return pgx.RepeatableRead, nil
	case "serializable":
		return pgx.Serializable, nil
	}
	return "", fmt.Errorf("unknown transaction isolation %q", s)
}

// RunInTx executes fn within a transaction.
// On success: commits. On error: rolls back and returns the error.
// On panic: rolls back and re-panics.
// A nested call joins the outer transaction instead of opening a new one.
// Serialization failures surface as domain.ErrTransactionConflict.
func (m *TxManager) RunInTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	tx, err := m.pool.BeginTx(ctx, m.opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(context.WithValue(ctx, txCtxKey{}, tx)); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			return fmt.Errorf("rollback failed: %w (original error: %v)", rbErr, err)
		}
		if IsConflict(err) && !errors.Is(err, domain.ErrTransactionConflict) {
			return fmt.Errorf("%w: %v", domain.ErrTransactionConflict, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		if IsConflict(err) {
			return fmt.Errorf("commit transaction: %w", domain.ErrTransactionConflict)
		}
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// TxRunner executes a unit of work inside a single database transaction.
type TxRunner interface {
	InTx(ctx context.Context, fn func(q Querier) error) error
}

// PoolTxRunner is the production TxRunner backed by a connection pool.
type PoolTxRunner struct {
	Pool *pgxpool.Pool
}

func (r PoolTxRunner) InTx(ctx context.Context, fn func(q Querier) error) error {
	tx, err := r.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// StubTxRunner runs the unit of work directly, without a transaction. Test use only.
type StubTxRunner struct{}

func (StubTxRunner) InTx(ctx context.Context, fn func(q Querier) error) error {
	return fn(nil)
}

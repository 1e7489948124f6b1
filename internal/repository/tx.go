package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier is the subset of pgx shared by pgxpool.Pool and pgx.Tx.
// Repository methods resolve one from the context so they transparently
// join a transaction started by PgxTxRunner.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type txKey struct{}

func querierFrom(ctx context.Context, db *pgxpool.Pool) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}

	return db
}

// PgxTxRunner implements domain.TxRunner on a pgx connection pool.
type PgxTxRunner struct {
	db *pgxpool.Pool
}

func NewPgxTxRunner(db *pgxpool.Pool) *PgxTxRunner {
	return &PgxTxRunner{db: db}
}

func (r *PgxTxRunner) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	var txOptions pgx.TxOptions

	tx, err := r.db.BeginTx(ctx, txOptions)
	if err != nil {
		return err
	}

	err = fn(context.WithValue(ctx, txKey{}, tx))
	if err == nil {
		return tx.Commit(ctx)
	}

	rollbackErr := tx.Rollback(ctx)
	if rollbackErr != nil {
		return errors.Join(err, rollbackErr)
	}

	return err
}

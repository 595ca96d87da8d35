// Package dbx holds the database/sql plumbing shared by the server and client
// repositories: the DBTX handle that both *sql.DB and *sql.Tx satisfy, the
// transaction runners and PostgreSQL error classification.
package dbx

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// DBTX is the subset of database/sql the repositories use.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx runs fn inside a transaction on db. The transaction is committed
// when fn returns nil and rolled back when fn fails or panics; a panic is
// re-raised after the rollback. A failed rollback is joined to fn's error.
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
				err = errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
			}
			return
		}
		if cErr := tx.Commit(); cErr != nil {
			err = fmt.Errorf("commit transaction: %w", cErr)
		}
	}()

	return fn(ctx, tx)
}

// WithRetryTx runs WithTx up to attempts times, starting over only while the
// failure satisfies retry and ctx is live. fn may run more than once, so it
// must not have effects outside the transaction.
func WithRetryTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, attempts int, retry func(error) bool,
	fn func(ctx context.Context, tx DBTX) error) error {
	var err error
	for range max(attempts, 1) {
		err = WithTx(ctx, db, opts, fn)
		if err == nil || !retry(err) || ctx.Err() != nil {
			return err
		}
	}
	return err
}

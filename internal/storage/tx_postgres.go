// Package storage provides the transaction boundaries mutating services
// run inside. Both backends give all-or-nothing semantics for the
// post-write/log-write pair: PostgresTx through a database transaction,
// MemoryTx through a coarse lock with snapshot rollback.
package storage

import (
	"context"
	"database/sql"
	"time"

	dErrors "inkwell/pkg/domain-errors"
	txcontext "inkwell/pkg/platform/tx"
)

const defaultTxTimeout = 5 * time.Second

// PostgresTx runs callbacks inside a serializable database transaction.
// The *sql.Tx is carried in the callback context; Postgres stores pick
// it up and write through it.
type PostgresTx struct {
	db      *sql.DB
	timeout time.Duration
}

func NewPostgresTx(db *sql.DB) *PostgresTx {
	return &PostgresTx{db: db}
}

func (t *PostgresTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction aborted: context cancelled")
	}

	timeout := t.timeout
	if timeout == 0 {
		timeout = defaultTxTimeout
	}
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	tx, err := t.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to begin transaction")
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(txcontext.WithTx(ctx, tx)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to commit transaction")
	}
	return nil
}

package storage

import (
	"context"
	"sync"
)

// Restorable is implemented by memory stores that can rewind to a
// captured state. Snapshot and Restore are only called while the
// MemoryTx lock is held.
type Restorable interface {
	Snapshot() any
	Restore(snapshot any)
}

// MemoryTx serializes mutating callbacks under one lock and rolls the
// participating stores back when the callback fails. It gives the memory
// backend the same no-partial-pair guarantee the database transaction
// gives Postgres.
type MemoryTx struct {
	mu     sync.Mutex
	stores []Restorable
}

func NewMemoryTx(stores ...Restorable) *MemoryTx {
	return &MemoryTx{stores: stores}
}

func (t *MemoryTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	snapshots := make([]any, len(t.stores))
	for i, s := range t.stores {
		snapshots[i] = s.Snapshot()
	}

	if err := fn(ctx); err != nil {
		for i, s := range t.stores {
			s.Restore(snapshots[i])
		}
		return err
	}
	return nil
}

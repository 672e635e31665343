package memory

import (
	"context"
	"sort"
	"sync"

	"inkwell/internal/translog"
	id "inkwell/pkg/domain"
)

// Store keeps log entries in memory. Used by unit tests and local
// development; the Postgres store is the production backend.
type Store struct {
	mu      sync.RWMutex
	entries []translog.Entry
}

func New() *Store {
	return &Store{}
}

// Append records an entry. Pure insert: no validation, no updates.
func (s *Store) Append(_ context.Context, entry translog.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, entry)
	return nil
}

// List returns every entry ordered by timestamp ascending.
func (s *Store) List(_ context.Context) ([]translog.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := append([]translog.Entry{}, s.entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}

// DetachUser nils the user reference on entries for a deleted user.
// Mirrors the ON DELETE SET NULL constraint in the Postgres schema.
func (s *Store) DetachUser(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].UserID != nil && *s.entries[i].UserID == userID {
			s.entries[i].UserID = nil
		}
	}
	return nil
}

// DetachPost nils the post reference on entries for a deleted post.
func (s *Store) DetachPost(_ context.Context, postID id.PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].PostID != nil && *s.entries[i].PostID == postID {
			s.entries[i].PostID = nil
		}
	}
	return nil
}

// Snapshot captures store state for coarse-lock transaction rollback.
func (s *Store) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]translog.Entry{}, s.entries...)
}

// Restore rewinds the store to a previous Snapshot.
func (s *Store) Restore(snapshot any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = snapshot.([]translog.Entry)
}

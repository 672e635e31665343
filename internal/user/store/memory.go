// Package store persists user accounts.
package store

import (
	"context"
	"sync"

	"inkwell/internal/user/models"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/sentinel"
)

// InMemory keeps users in maps guarded by a RWMutex. Username lookups
// are exact-match, like the unique column in the Postgres schema.
type InMemory struct {
	mu         sync.RWMutex
	users      map[id.UserID]*models.User
	byUsername map[string]id.UserID
}

func NewInMemory() *InMemory {
	return &InMemory{
		users:      make(map[id.UserID]*models.User),
		byUsername: make(map[string]id.UserID),
	}
}

func (s *InMemory) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byUsername[user.Username]; taken {
		return sentinel.ErrConflict
	}
	if _, exists := s.users[user.ID]; exists {
		return sentinel.ErrConflict
	}
	s.users[user.ID] = user.Clone()
	s.byUsername[user.Username] = user.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[userID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return u.Clone(), nil
}

func (s *InMemory) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	uid, ok := s.byUsername[username]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return s.users[uid].Clone(), nil
}

// ResolveUsername maps a username onto its user id for list filtering.
func (s *InMemory) ResolveUsername(ctx context.Context, username string) (id.UserID, error) {
	u, err := s.FindByUsername(ctx, username)
	if err != nil {
		return id.UserID{}, err
	}
	return u.ID, nil
}

func (s *InMemory) Delete(_ context.Context, userID id.UserID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[userID]
	if !ok {
		return sentinel.ErrNotFound
	}
	delete(s.byUsername, u.Username)
	delete(s.users, userID)
	return nil
}

// Snapshot captures store state for coarse-lock transaction rollback.
func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make(map[id.UserID]*models.User, len(s.users))
	for uid, u := range s.users {
		users[uid] = u.Clone()
	}
	byUsername := make(map[string]id.UserID, len(s.byUsername))
	for name, uid := range s.byUsername {
		byUsername[name] = uid
	}
	return [2]any{users, byUsername}
}

// Restore rewinds the store to a previous Snapshot.
func (s *InMemory) Restore(snapshot any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := snapshot.([2]any)
	s.users = snap[0].(map[id.UserID]*models.User)
	s.byUsername = snap[1].(map[string]id.UserID)
}

// Package store persists posts. The in-memory implementation backs unit
// tests and local development; PostgresStore is the production backend.
package store

import (
	"context"
	"sort"
	"sync"

	"inkwell/internal/post/models"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/sentinel"
)

// InMemory keeps posts in a map guarded by a RWMutex.
type InMemory struct {
	mu    sync.RWMutex
	posts map[id.PostID]*models.Post
}

func NewInMemory() *InMemory {
	return &InMemory{posts: make(map[id.PostID]*models.Post)}
}

func (s *InMemory) Create(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.posts[post.ID]; exists {
		return sentinel.ErrConflict
	}
	s.posts[post.ID] = post.Clone()
	return nil
}

func (s *InMemory) FindByID(_ context.Context, postID id.PostID) (*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.posts[postID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	return p.Clone(), nil
}

func (s *InMemory) Update(_ context.Context, post *models.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[post.ID]; !ok {
		return sentinel.ErrNotFound
	}
	s.posts[post.ID] = post.Clone()
	return nil
}

func (s *InMemory) Delete(_ context.Context, postID id.PostID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.posts[postID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.posts, postID)
	return nil
}

// DeleteByOwner removes every post owned by the user and returns the
// deleted ids. Used by the user-deletion cascade.
func (s *InMemory) DeleteByOwner(_ context.Context, ownerID id.UserID) ([]id.PostID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted []id.PostID
	for pid, p := range s.posts {
		if p.OwnerID == ownerID {
			deleted = append(deleted, pid)
			delete(s.posts, pid)
		}
	}
	return deleted, nil
}

// List returns posts matching the scope, ordered by creation time.
func (s *InMemory) List(_ context.Context, scope models.ListScope) ([]*models.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Post, 0)
	for _, p := range s.posts {
		if scope.OwnerID != nil && p.OwnerID != *scope.OwnerID {
			continue
		}
		if scope.Published && !p.Publish {
			continue
		}
		if scope.Category != nil && !scope.Category.Matches(p) {
			continue
		}
		out = append(out, p.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() < out[j].ID.String()
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Snapshot captures store state for coarse-lock transaction rollback.
func (s *InMemory) Snapshot() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := make(map[id.PostID]*models.Post, len(s.posts))
	for pid, p := range s.posts {
		snap[pid] = p.Clone()
	}
	return snap
}

// Restore rewinds the store to a previous Snapshot.
func (s *InMemory) Restore(snapshot any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.posts = snapshot.(map[id.PostID]*models.Post)
}

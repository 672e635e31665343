package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/user/models"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/sentinel"
)

func newUser(username string) *models.User {
	return &models.User{
		ID:        id.NewUserID(),
		Username:  username,
		Email:     username + "@example.com",
		CreatedAt: time.Now().UTC(),
	}
}

func TestInMemory_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("create then find", func(t *testing.T) {
		s := NewInMemory()
		u := newUser("ada")
		require.NoError(t, s.Create(ctx, u))

		byID, err := s.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, u, byID)

		byName, err := s.FindByUsername(ctx, "ada")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
	})

	t.Run("username must be unique", func(t *testing.T) {
		s := NewInMemory()
		require.NoError(t, s.Create(ctx, newUser("ada")))
		assert.ErrorIs(t, s.Create(ctx, newUser("ada")), sentinel.ErrConflict)
	})

	t.Run("missing user", func(t *testing.T) {
		s := NewInMemory()
		_, err := s.FindByID(ctx, id.NewUserID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
		_, err = s.FindByUsername(ctx, "ghost")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestInMemory_ResolveUsername(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	u := newUser("ada")
	require.NoError(t, s.Create(ctx, u))

	resolved, err := s.ResolveUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, resolved)

	_, err = s.ResolveUsername(ctx, "ghost")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

func TestInMemory_Delete(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	u := newUser("ada")
	require.NoError(t, s.Create(ctx, u))

	require.NoError(t, s.Delete(ctx, u.ID))
	_, err := s.FindByUsername(ctx, "ada")
	assert.ErrorIs(t, err, sentinel.ErrNotFound, "username index cleaned up")
	assert.ErrorIs(t, s.Delete(ctx, u.ID), sentinel.ErrNotFound)
}

func TestInMemory_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemory()
	u := newUser("ada")
	require.NoError(t, s.Create(ctx, u))

	snap := s.Snapshot()
	require.NoError(t, s.Delete(ctx, u.ID))
	s.Restore(snap)

	found, err := s.FindByUsername(ctx, "ada")
	require.NoError(t, err)
	assert.Equal(t, u.ID, found.ID)
}

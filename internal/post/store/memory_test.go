package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/post/models"
	id "inkwell/pkg/domain"
	"inkwell/pkg/platform/sentinel"
)

func newPost(t *testing.T, owner id.UserID, title string, createdAt time.Time) *models.Post {
	t.Helper()
	post, err := models.NewPost(id.NewPostID(), owner, title, "content", createdAt)
	require.NoError(t, err)
	return post
}

func TestInMemory_CRUD(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	owner := id.NewUserID()

	t.Run("create then find", func(t *testing.T) {
		s := NewInMemory()
		post := newPost(t, owner, "one", now)
		require.NoError(t, s.Create(ctx, post))

		found, err := s.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, post, found)
	})

	t.Run("create rejects duplicate id", func(t *testing.T) {
		s := NewInMemory()
		post := newPost(t, owner, "one", now)
		require.NoError(t, s.Create(ctx, post))
		assert.ErrorIs(t, s.Create(ctx, post), sentinel.ErrConflict)
	})

	t.Run("find missing", func(t *testing.T) {
		s := NewInMemory()
		_, err := s.FindByID(ctx, id.NewPostID())
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("stored post does not alias the caller's copy", func(t *testing.T) {
		s := NewInMemory()
		post := newPost(t, owner, "one", now)
		require.NoError(t, s.Create(ctx, post))
		post.Title = "mutated"

		found, err := s.FindByID(ctx, post.ID)
		require.NoError(t, err)
		assert.Equal(t, "one", found.Title)
	})

	t.Run("update missing", func(t *testing.T) {
		s := NewInMemory()
		assert.ErrorIs(t, s.Update(ctx, newPost(t, owner, "one", now)), sentinel.ErrNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		s := NewInMemory()
		post := newPost(t, owner, "one", now)
		require.NoError(t, s.Create(ctx, post))
		require.NoError(t, s.Delete(ctx, post.ID))
		assert.ErrorIs(t, s.Delete(ctx, post.ID), sentinel.ErrNotFound)
	})
}

func TestInMemory_DeleteByOwner(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	owner := id.NewUserID()
	other := id.NewUserID()

	s := NewInMemory()
	mine1 := newPost(t, owner, "mine 1", now)
	mine2 := newPost(t, owner, "mine 2", now)
	theirs := newPost(t, other, "theirs", now)
	for _, p := range []*models.Post{mine1, mine2, theirs} {
		require.NoError(t, s.Create(ctx, p))
	}

	deleted, err := s.DeleteByOwner(ctx, owner)
	require.NoError(t, err)
	assert.ElementsMatch(t, []id.PostID{mine1.ID, mine2.ID}, deleted)

	_, err = s.FindByID(ctx, mine1.ID)
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
	_, err = s.FindByID(ctx, theirs.ID)
	assert.NoError(t, err)
}

func TestInMemory_List(t *testing.T) {
	ctx := context.Background()
	base := time.Now().UTC()
	owner := id.NewUserID()
	other := id.NewUserID()

	s := NewInMemory()
	older := newPost(t, owner, "older", base.Add(-time.Hour))
	newer := newPost(t, owner, "newer", base)
	newer.Publish = true
	foreign := newPost(t, other, "foreign", base)
	foreign.Publish = true
	foreign.Archive = true
	for _, p := range []*models.Post{newer, older, foreign} {
		require.NoError(t, s.Create(ctx, p))
	}

	t.Run("orders by creation time", func(t *testing.T) {
		posts, err := s.List(ctx, models.ListScope{})
		require.NoError(t, err)
		require.Len(t, posts, 3)
		assert.Equal(t, "older", posts[0].Title)
	})

	t.Run("owner scope", func(t *testing.T) {
		posts, err := s.List(ctx, models.ListScope{OwnerID: &owner})
		require.NoError(t, err)
		require.Len(t, posts, 2)
		for _, p := range posts {
			assert.Equal(t, owner, p.OwnerID)
		}
	})

	t.Run("published scope", func(t *testing.T) {
		posts, err := s.List(ctx, models.ListScope{Published: true})
		require.NoError(t, err)
		assert.Len(t, posts, 2)
	})

	t.Run("category filter", func(t *testing.T) {
		archive := models.CategoryArchive
		posts, err := s.List(ctx, models.ListScope{Category: &archive})
		require.NoError(t, err)
		require.Len(t, posts, 1)
		assert.Equal(t, "foreign", posts[0].Title)
	})

	t.Run("scope and category compose", func(t *testing.T) {
		archive := models.CategoryArchive
		posts, err := s.List(ctx, models.ListScope{OwnerID: &owner, Category: &archive})
		require.NoError(t, err)
		assert.Empty(t, posts)
	})
}

func TestInMemory_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	now := time.Now().UTC()
	owner := id.NewUserID()

	s := NewInMemory()
	kept := newPost(t, owner, "kept", now)
	require.NoError(t, s.Create(ctx, kept))

	snap := s.Snapshot()
	require.NoError(t, s.Create(ctx, newPost(t, owner, "doomed", now)))
	require.NoError(t, s.Delete(ctx, kept.ID))

	s.Restore(snap)

	posts, err := s.List(ctx, models.ListScope{})
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "kept", posts[0].Title)
}

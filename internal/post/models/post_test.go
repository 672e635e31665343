package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "inkwell/pkg/domain"
	dErrors "inkwell/pkg/domain-errors"
)

func TestNewPost(t *testing.T) {
	now := time.Now().UTC()
	owner := id.NewUserID()

	t.Run("new posts start as unpublished drafts", func(t *testing.T) {
		post, err := NewPost(id.NewPostID(), owner, "First post", "hello", now)
		require.NoError(t, err)
		assert.True(t, post.Draft)
		assert.False(t, post.Publish)
		assert.False(t, post.Archive)
		assert.Equal(t, now, post.CreatedAt)
		assert.Equal(t, now, post.UpdatedAt)
	})

	t.Run("trims the title", func(t *testing.T) {
		post, err := NewPost(id.NewPostID(), owner, "  padded  ", "hello", now)
		require.NoError(t, err)
		assert.Equal(t, "padded", post.Title)
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := NewPost(id.NewPostID(), owner, "   ", "hello", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects overlong title", func(t *testing.T) {
		_, err := NewPost(id.NewPostID(), owner, strings.Repeat("x", MaxTitleLength+1), "hello", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts title at the limit", func(t *testing.T) {
		_, err := NewPost(id.NewPostID(), owner, strings.Repeat("x", MaxTitleLength), "hello", now)
		require.NoError(t, err)
	})

	t.Run("rejects empty content", func(t *testing.T) {
		_, err := NewPost(id.NewPostID(), owner, "title", " ", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects missing owner", func(t *testing.T) {
		_, err := NewPost(id.NewPostID(), id.UserID{}, "title", "hello", now)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestChangeSetApply(t *testing.T) {
	now := time.Now().UTC()
	later := now.Add(time.Minute)
	owner := id.NewUserID()

	newPost := func(t *testing.T) *Post {
		t.Helper()
		post, err := NewPost(id.NewPostID(), owner, "title", "content", now)
		require.NoError(t, err)
		return post
	}

	t.Run("nil fields leave the post untouched", func(t *testing.T) {
		post := newPost(t)
		require.NoError(t, ChangeSet{}.Apply(post, later))
		assert.Equal(t, "title", post.Title)
		assert.Equal(t, "content", post.Content)
		assert.True(t, post.Draft)
		assert.Equal(t, later, post.UpdatedAt)
		assert.Equal(t, now, post.CreatedAt)
	})

	t.Run("set fields overwrite", func(t *testing.T) {
		post := newPost(t)
		title := "new title"
		publish := true
		require.NoError(t, ChangeSet{Title: &title, Publish: &publish}.Apply(post, later))
		assert.Equal(t, "new title", post.Title)
		assert.True(t, post.Publish)
		assert.True(t, post.Draft, "untouched flag keeps its value")
	})

	t.Run("flags stay independent", func(t *testing.T) {
		post := newPost(t)
		tr := true
		require.NoError(t, ChangeSet{Publish: &tr, Archive: &tr, Draft: &tr}.Apply(post, later))
		assert.True(t, post.Publish)
		assert.True(t, post.Archive)
		assert.True(t, post.Draft)
	})

	t.Run("revalidates after applying", func(t *testing.T) {
		post := newPost(t)
		empty := ""
		err := ChangeSet{Title: &empty}.Apply(post, later)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})
}

func TestClone(t *testing.T) {
	post, err := NewPost(id.NewPostID(), id.NewUserID(), "title", "content", time.Now().UTC())
	require.NoError(t, err)

	clone := post.Clone()
	clone.Title = "mutated"
	assert.Equal(t, "title", post.Title)
}

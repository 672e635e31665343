package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/translog"
	id "inkwell/pkg/domain"
)

func TestStore_AppendAndList(t *testing.T) {
	ctx := context.Background()
	s := New()
	base := time.Now().UTC()

	second := translog.NewEntry(id.NewUserID(), id.NewPostID(), translog.ActionUpdate, base)
	first := translog.NewEntry(id.NewUserID(), id.NewPostID(), translog.ActionCreate, base.Add(-time.Minute))
	require.NoError(t, s.Append(ctx, second))
	require.NoError(t, s.Append(ctx, first))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, translog.ActionCreate, entries[0].Action, "oldest entry first")
	assert.Equal(t, translog.ActionUpdate, entries[1].Action)
}

func TestStore_Detach(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	userID := id.NewUserID()
	postID := id.NewPostID()
	entry := translog.NewEntry(userID, postID, translog.ActionCreate, now)
	unrelated := translog.NewEntry(id.NewUserID(), id.NewPostID(), translog.ActionCreate, now)
	require.NoError(t, s.Append(ctx, entry))
	require.NoError(t, s.Append(ctx, unrelated))

	t.Run("detach user nils only matching references", func(t *testing.T) {
		require.NoError(t, s.DetachUser(ctx, userID))

		entries, err := s.List(ctx)
		require.NoError(t, err)
		for _, e := range entries {
			if e.ID == entry.ID {
				assert.Nil(t, e.UserID)
				assert.NotNil(t, e.PostID, "post reference untouched")
			} else {
				assert.NotNil(t, e.UserID)
			}
		}
	})

	t.Run("detach post nils only matching references", func(t *testing.T) {
		require.NoError(t, s.DetachPost(ctx, postID))

		entries, err := s.List(ctx)
		require.NoError(t, err)
		for _, e := range entries {
			if e.ID == entry.ID {
				assert.Nil(t, e.PostID)
			} else {
				assert.NotNil(t, e.PostID)
			}
		}
	})

	t.Run("detached entries keep action and timestamp", func(t *testing.T) {
		entries, err := s.List(ctx)
		require.NoError(t, err)
		for _, e := range entries {
			if e.ID == entry.ID {
				assert.Equal(t, translog.ActionCreate, e.Action)
				assert.Equal(t, now, e.OccurredAt)
			}
		}
	})
}

func TestStore_SnapshotRestore(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now().UTC()

	require.NoError(t, s.Append(ctx, translog.NewEntry(id.NewUserID(), id.NewPostID(), translog.ActionCreate, now)))
	snap := s.Snapshot()

	require.NoError(t, s.Append(ctx, translog.NewEntry(id.NewUserID(), id.NewPostID(), translog.ActionDelete, now)))
	s.Restore(snap)

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, translog.ActionCreate, entries[0].Action)
}

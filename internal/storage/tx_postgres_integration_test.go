//go:build integration

package storage_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/post/models"
	poststore "inkwell/internal/post/store"
	"inkwell/internal/storage"
	"inkwell/internal/translog"
	translogpg "inkwell/internal/translog/store/postgres"
	usermodels "inkwell/internal/user/models"
	userstore "inkwell/internal/user/store"
	id "inkwell/pkg/domain"
	"inkwell/pkg/testutil/containers"
)

func TestPostgresTx_AtomicPair(t *testing.T) {
	pc := containers.NewPostgresContainer(t)
	ctx := context.Background()

	posts := poststore.NewPostgres(pc.DB)
	logs := translogpg.New(pc.DB)
	users := userstore.NewPostgres(pc.DB)
	tx := storage.NewPostgresTx(pc.DB)

	now := time.Now().UTC().Truncate(time.Microsecond)
	owner := &usermodels.User{
		ID:           id.NewUserID(),
		Username:     "ada",
		Email:        "ada@example.com",
		PasswordHash: "x",
		CreatedAt:    now,
	}
	require.NoError(t, users.Create(ctx, owner))

	t.Run("post and entry commit together", func(t *testing.T) {
		post, err := models.NewPost(id.NewPostID(), owner.ID, "title", "content", now)
		require.NoError(t, err)

		err = tx.RunInTx(ctx, func(txCtx context.Context) error {
			if err := posts.Create(txCtx, post); err != nil {
				return err
			}
			return logs.Append(txCtx, translog.NewEntry(owner.ID, post.ID, translog.ActionCreate, now))
		})
		require.NoError(t, err)

		_, err = posts.FindByID(ctx, post.ID)
		assert.NoError(t, err)
		entries, err := logs.List(ctx)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})

	t.Run("callback failure rolls both writes back", func(t *testing.T) {
		require.NoError(t, pc.Truncate(ctx))
		require.NoError(t, users.Create(ctx, owner))

		post, err := models.NewPost(id.NewPostID(), owner.ID, "doomed", "content", now)
		require.NoError(t, err)
		boom := errors.New("boom")

		err = tx.RunInTx(ctx, func(txCtx context.Context) error {
			if err := posts.Create(txCtx, post); err != nil {
				return err
			}
			if err := logs.Append(txCtx, translog.NewEntry(owner.ID, post.ID, translog.ActionCreate, now)); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		_, err = posts.FindByID(ctx, post.ID)
		assert.Error(t, err, "post insert rolled back")
		entries, err := logs.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries, "entry insert rolled back")
	})

	t.Run("delete detaches the trail inside the transaction", func(t *testing.T) {
		require.NoError(t, pc.Truncate(ctx))
		require.NoError(t, users.Create(ctx, owner))

		post, err := models.NewPost(id.NewPostID(), owner.ID, "title", "content", now)
		require.NoError(t, err)
		require.NoError(t, posts.Create(ctx, post))

		err = tx.RunInTx(ctx, func(txCtx context.Context) error {
			if err := logs.Append(txCtx, translog.NewEntry(owner.ID, post.ID, translog.ActionDelete, now)); err != nil {
				return err
			}
			if err := posts.Delete(txCtx, post.ID); err != nil {
				return err
			}
			return logs.DetachPost(txCtx, post.ID)
		})
		require.NoError(t, err)

		entries, err := logs.List(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, translog.ActionDelete, entries[0].Action)
		assert.Nil(t, entries[0].PostID)
		require.NotNil(t, entries[0].UserID)
		assert.Equal(t, owner.ID, *entries[0].UserID)
	})
}

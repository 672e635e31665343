package requestcontext

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	id "inkwell/pkg/domain"
)

func TestIdentity(t *testing.T) {
	ctx := context.Background()

	t.Run("unset context yields zero values", func(t *testing.T) {
		assert.True(t, UserID(ctx).IsNil())
		assert.Empty(t, Username(ctx))
		assert.False(t, Superuser(ctx))
		assert.Empty(t, RequestID(ctx))
	})

	t.Run("round-trips identity", func(t *testing.T) {
		userID := id.NewUserID()
		withIdentity := WithIdentity(ctx, userID, "ada", true)
		assert.Equal(t, userID, UserID(withIdentity))
		assert.Equal(t, "ada", Username(withIdentity))
		assert.True(t, Superuser(withIdentity))
	})

	t.Run("round-trips request id", func(t *testing.T) {
		assert.Equal(t, "req-1", RequestID(WithRequestID(ctx, "req-1")))
	})
}

func TestNow(t *testing.T) {
	t.Run("pinned clock wins", func(t *testing.T) {
		pinned := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
		assert.Equal(t, pinned, Now(WithTime(context.Background(), pinned)))
	})

	t.Run("falls back to the wall clock in UTC", func(t *testing.T) {
		now := Now(context.Background())
		assert.WithinDuration(t, time.Now().UTC(), now, time.Second)
		assert.Equal(t, time.UTC, now.Location())
	})
}

package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "inkwell/pkg/domain-errors"
)

func TestParseID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParsePostID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseEntryID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		raw := uuid.New()
		parsed, err := ParseUserID(raw.String())
		require.NoError(t, err)
		assert.Equal(t, UserID(raw), parsed)
	})

	t.Run("round-trips through String", func(t *testing.T) {
		postID := NewPostID()
		parsed, err := ParsePostID(postID.String())
		require.NoError(t, err)
		assert.Equal(t, postID, parsed)
	})
}

func TestID_IsNil(t *testing.T) {
	assert.True(t, UserID{}.IsNil())
	assert.True(t, PostID(uuid.Nil).IsNil())
	assert.False(t, NewEntryID().IsNil())
}

// TestTypeDistinction documents that the compiler keeps entity IDs
// apart. The commented assignments would not compile:
//
//	var _ UserID = NewPostID()
//	var _ PostID = NewUserID()
func TestTypeDistinction(t *testing.T) {
	userID := UserID(uuid.New())
	postID := PostID(uuid.New())
	assert.NotEqual(t, uuid.UUID(userID), uuid.UUID(postID))
}

package secrets

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	credential, err := Generate()
	require.NoError(t, err)
	assert.Len(t, credential, 15)
	for _, r := range credential {
		assert.Contains(t, alphabet, string(r))
	}

	other, err := Generate()
	require.NoError(t, err)
	assert.NotEqual(t, credential, other, "two credentials should not collide")
}

func TestHashAndVerify(t *testing.T) {
	credential, err := Generate()
	require.NoError(t, err)

	hash, err := Hash(credential)
	require.NoError(t, err)
	assert.NotEqual(t, credential, hash)

	assert.True(t, Verify(hash, credential))
	assert.False(t, Verify(hash, "wrong-credential"))
}

package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	t.Run("generates 64 character hex string", func(t *testing.T) {
		token, err := GenerateToken()
		require.NoError(t, err)
		assert.Len(t, token, 64)
	})

	t.Run("generates unique tokens", func(t *testing.T) {
		a, err := GenerateToken()
		require.NoError(t, err)
		b, err := GenerateToken()
		require.NoError(t, err)
		assert.NotEqual(t, a, b)
	})
}

func TestConstantTimeEqual(t *testing.T) {
	assert.True(t, ConstantTimeEqual("token", "token"))
	assert.False(t, ConstantTimeEqual("token", "other"))
	assert.False(t, ConstantTimeEqual("token", ""))
}

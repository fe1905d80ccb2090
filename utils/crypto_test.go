package utils

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordDeterministic(t *testing.T) {
	h1 := HashPassword("secret", "aabbcc")
	h2 := HashPassword("secret", "aabbcc")
	assert.Equal(t, h1, h2)

	// 64-byte derived key, hex-encoded.
	assert.Len(t, h1, 128)
	_, err := hex.DecodeString(h1)
	require.NoError(t, err)

	assert.NotEqual(t, h1, HashPassword("secret", "ddeeff"))
	assert.NotEqual(t, h1, HashPassword("other", "aabbcc"))
}

func TestVerifyPassword(t *testing.T) {
	salt, err := NewSalt()
	require.NoError(t, err)
	stored := HashPassword("secret", salt)

	assert.True(t, VerifyPassword("secret", salt, stored))
	assert.False(t, VerifyPassword("wrong", salt, stored))
	assert.False(t, VerifyPassword("secret", "othersalt", stored))
}

func TestNewSalt(t *testing.T) {
	s1, err := NewSalt()
	require.NoError(t, err)
	s2, err := NewSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 32) // 16 bytes hex
	assert.NotEqual(t, s1, s2)
}

func TestNewToken(t *testing.T) {
	t1, err := NewToken()
	require.NoError(t, err)
	t2, err := NewToken()
	require.NoError(t, err)

	assert.Len(t, t1, 64) // 32 bytes hex
	assert.NotEqual(t, t1, t2)
	_, err = hex.DecodeString(t1)
	require.NoError(t, err)
}

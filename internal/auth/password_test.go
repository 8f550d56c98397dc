package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)

	assert.True(t, VerifyPassword("correct horse battery staple", hash))
	assert.False(t, VerifyPassword("correct horse battery stapler", hash))
	assert.False(t, VerifyPassword("", hash))
}

func TestHashPasswordDistinctSalts(t *testing.T) {
	first, err := HashPassword("hunter22")
	require.NoError(t, err)
	second, err := HashPassword("hunter22")
	require.NoError(t, err)

	assert.NotEqual(t, first, second, "two hashes of the same password must use distinct salts")
	assert.True(t, VerifyPassword("hunter22", first))
	assert.True(t, VerifyPassword("hunter22", second))
}

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("some password")
	require.NoError(t, err)

	salt, derived, ok := strings.Cut(hash, ":")
	require.True(t, ok)
	assert.Len(t, salt, saltLen*2)   // hex encoded
	assert.Len(t, derived, keyLen*2) // hex encoded
}

func TestVerifyPasswordMalformedStored(t *testing.T) {
	cases := []string{
		"",
		"no-separator",
		"nothex:abcdef",
		"abcdef:nothex",
		":",
	}
	for _, stored := range cases {
		assert.False(t, VerifyPassword("anything", stored), "stored=%q", stored)
	}
}

func TestNewSessionToken(t *testing.T) {
	first, err := NewSessionToken()
	require.NoError(t, err)
	second, err := NewSessionToken()
	require.NoError(t, err)

	assert.Len(t, first, tokenLen*2) // hex encoded
	assert.NotEqual(t, first, second)
}

package auth

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	digest, err := HashPassword("correct horse battery staple", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotContains(t, digest, "correct horse")

	assert.True(t, VerifyPassword("correct horse battery staple", digest))
	assert.False(t, VerifyPassword("wrong password", digest))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	assert.False(t, VerifyPassword("anything", ""))
	assert.False(t, VerifyPassword("anything", "not-a-bcrypt-digest"))
}

// bcrypt truncates input at 72 bytes; the SHA-256 pre-hash keeps long
// passwords fully significant.
func TestLongPasswordsRemainSignificant(t *testing.T) {
	prefix := strings.Repeat("a", 80)
	digest, err := HashPassword(prefix+"tail-one", bcrypt.MinCost)
	require.NoError(t, err)

	assert.True(t, VerifyPassword(prefix+"tail-one", digest))
	assert.False(t, VerifyPassword(prefix+"tail-two", digest),
		"passwords differing beyond byte 72 must not collide")
}

func TestHashesAreSalted(t *testing.T) {
	first, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)
	second, err := HashPassword("same password", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

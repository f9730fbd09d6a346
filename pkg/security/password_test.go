package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCompare(t *testing.T) {
	hasher := NewBcryptHasher(4)

	hash, err := hasher.Hash("sup3r-s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "sup3r-s3cret", hash)

	assert.NoError(t, hasher.Compare(hash, "sup3r-s3cret"))
	assert.Error(t, hasher.Compare(hash, "wrong-password"))
}

func TestHashRejectsShortPassword(t *testing.T) {
	hasher := NewBcryptHasher(4)

	_, err := hasher.Hash("short")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
}

func TestHashesAreSalted(t *testing.T) {
	hasher := NewBcryptHasher(4)

	a, err := hasher.Hash("sup3r-s3cret")
	require.NoError(t, err)
	b, err := hasher.Hash("sup3r-s3cret")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

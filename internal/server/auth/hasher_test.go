package auth

import (
	"strings"
	"testing"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_HashAndVerify(t *testing.T) {
	h := NewBcryptHasher(MinCost)

	hash, err := h.Hash("Passw0rd1")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$2a$10$"))
	assert.NotContains(t, hash, "Passw0rd1")

	ok, err := h.Verify("Passw0rd1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("passw0rd1", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	h := NewBcryptHasher(MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestBcryptHasher_EmptyPassword(t *testing.T) {
	_, err := NewBcryptHasher(MinCost).Hash("")
	assert.ErrorIs(t, err, ErrEmptyPassword)
}

func TestBcryptHasher_MalformedHash(t *testing.T) {
	ok, err := NewBcryptHasher(MinCost).Verify("x", "not-a-bcrypt-hash")
	assert.False(t, ok)
	require.Error(t, err)

	oopsErr, isOops := oops.AsOops(err)
	require.True(t, isOops)
	assert.Equal(t, "AUTH_INVALID_HASH", oopsErr.Code())
}

func TestNewBcryptHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, MinCost, NewBcryptHasher(4).Cost())
	assert.Equal(t, 12, NewBcryptHasher(12).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewBcryptHasher(99).Cost())
}

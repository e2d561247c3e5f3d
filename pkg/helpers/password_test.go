package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	ok, err := h.Verify("secret1", hash)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = h.Verify("secret2", hash)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPasswordHasher_SaltDiffersPerHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	a, err := h.Hash("same-password")
	require.NoError(t, err)
	b, err := h.Hash("same-password")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	for _, hash := range []string{a, b} {
		ok, err := h.Verify("same-password", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestPasswordHasher_HashNeverContainsPlaintext(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, plain := range []string{"secret1", "hunter22", "correct horse battery staple"} {
		hash, err := h.Hash(plain)
		require.NoError(t, err)
		assert.NotEqual(t, plain, hash)
		assert.False(t, strings.Contains(hash, plain))
	}
}

func TestPasswordHasher_HashPrefixPasswordIsRejected(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, plain := range []string{"$2a$04$", "$2a$04", "2a$04$"} {
		hash, err := h.Hash(plain)
		assert.ErrorIs(t, err, ErrPlaintextInHash, "password %q", plain)
		assert.Empty(t, hash)
	}
}

func TestPasswordHasher_ResaltsWhenHashContainsPlaintext(t *testing.T) {
	calls := 0
	h := NewPasswordHasher(bcrypt.MinCost)
	h.generate = func(password []byte, cost int) ([]byte, error) {
		calls++
		if calls == 1 {
			return []byte("$2a$04$abcSECRET1xyz"), nil
		}
		return bcrypt.GenerateFromPassword(password, cost)
	}

	hash, err := h.Hash("SECRET1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)
	assert.NotContains(t, hash, "SECRET1")

	ok, err := h.Verify("SECRET1", hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestPasswordHasher_EmbedsCost(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost + 1)

	hash, err := h.Hash("secret1")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost+1, cost)
}

func TestPasswordHasher_InvalidCostFallsBackToDefault(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(0).Cost)
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(bcrypt.MaxCost+1).Cost)
}

func TestPasswordHasher_VerifyMalformedHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost)

	for _, bad := range []string{"", "not-a-hash", "$2a$10$short"} {
		ok, err := h.Verify("secret1", bad)
		assert.False(t, ok)
		assert.ErrorIs(t, err, ErrMalformedHash, "hash %q", bad)
	}
}

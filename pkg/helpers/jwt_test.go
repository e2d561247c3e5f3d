package helpers

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTManager_IssueAndParse(t *testing.T) {
	m := NewJWTManager("secret", 0)
	require.Equal(t, DefaultTokenTTL, m.TTL())

	before := time.Now()
	tok, exp, err := m.Issue("acc-1")
	require.NoError(t, err)
	require.NotEmpty(t, tok)
	assert.WithinDuration(t, before.Add(DefaultTokenTTL), exp, 2*time.Second)

	claims, err := m.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "acc-1", claims.User.ID)
	assert.True(t, claims.ExpiresAt.Time.After(time.Now()))
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	tok, _, err := m.Issue("acc-1")
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_ExpiresAfterConfiguredLifetime(t *testing.T) {
	issuedAt := time.Now()
	m := NewJWTManager("secret", 100*time.Hour)
	m.now = func() time.Time { return issuedAt }

	tok, _, err := m.Issue("acc-1")
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(99 * time.Hour) }
	_, err = m.Parse(tok)
	require.NoError(t, err)

	m.now = func() time.Time { return issuedAt.Add(101 * time.Hour) }
	_, err = m.Parse(tok)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestJWTManager_WrongSecret(t *testing.T) {
	tok, _, err := NewJWTManager("secret", time.Hour).Issue("acc-1")
	require.NoError(t, err)

	_, err = NewJWTManager("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_Tampered(t *testing.T) {
	m := NewJWTManager("secret", time.Hour)
	tok, _, err := m.Issue("acc-1")
	require.NoError(t, err)

	_, err = m.Parse(tok + "x")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestJWTManager_MissingSecret(t *testing.T) {
	m := NewJWTManager("", time.Hour)

	_, _, err := m.Issue("acc-1")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)

	_, err = m.Parse("anything")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)
}

func TestJWTManager_NilManager(t *testing.T) {
	var m *JWTManager

	_, _, err := m.Issue("acc-1")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)

	_, err = m.Parse("anything")
	assert.ErrorIs(t, err, ErrSigningKeyMissing)
}

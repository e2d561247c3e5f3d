package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-ddd-registration/internal/application"
)

func TestSeedCmd_DryRun(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "seed-secret")
	t.Setenv("BCRYPT_COST", "4")

	var out bytes.Buffer
	cmd := NewSeedCmd()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--dry-run", "--email", "seed@example.com"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "seeded account: email=seed@example.com")
}

func TestSeedCmd_InvalidInput(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "seed-secret")
	t.Setenv("BCRYPT_COST", "4")

	cmd := NewSeedCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dry-run", "--password", "123"})

	err := cmd.Execute()
	assert.ErrorIs(t, err, application.ErrValidationFailed)
}

func TestSeedCmd_RequiresSecretOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cmd := NewSeedCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"--dry-run"})

	assert.Error(t, cmd.Execute())
}

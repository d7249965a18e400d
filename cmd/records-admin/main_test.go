package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd := rootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	require.NoError(t, cmd.Execute(), out.String())
	return out.String()
}

func TestAdminCommands(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	t.Setenv("ENVIRONMENT", "test")
	t.Setenv("DEBUG_SQL", "false")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "admin.db"))

	assert.Contains(t, run(t, "migrate"), "Schema is up to date")

	out := run(t, "create-user", "--name", "Root", "--email", "root@example.com", "--password", "root-password")
	assert.Contains(t, out, "root@example.com, admin")

	// The stored password is already a bcrypt hash, so nothing is rewritten.
	assert.NotContains(t, run(t, "hash-passwords"), "Hashed password")

	out = run(t, "pending")
	assert.Contains(t, out, "TYPE")
	assert.Regexp(t, `aadhar\s+0\s+0`, out)
}

package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigCheck(t *testing.T) {
	t.Setenv("RELAY_PRIMARY__ENV", "test")
	t.Setenv("RELAY_SERVER__PORT", "8099")
	t.Setenv("RELAY_RATE_LIMIT__ENABLED", "false")

	var out bytes.Buffer
	cmd := newRootCommand()
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"config", "check"})

	require.NoError(t, cmd.Execute())

	assert.Contains(t, out.String(), "configuration OK")
	assert.Contains(t, out.String(), "8099")
	assert.Contains(t, out.String(), "rate limit:   disabled")
}

func TestConfigCheckRejectsInvalidEnv(t *testing.T) {
	t.Setenv("RELAY_PRIMARY__ENV", "qa")

	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"config", "check"})

	assert.Error(t, cmd.Execute())
}

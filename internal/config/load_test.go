package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequiredEnv sets the minimum environment for Load to succeed.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TASKMAN_DATABASE_URL", "postgres://localhost:5432/taskman")
	t.Setenv("TASKMAN_AUTH_JWT_SECRET", strings.Repeat("s", 32))
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Server.LogLevel)
	assert.Equal(t, 60, cfg.Auth.TokenLifetimeMinutes)

	assert.Empty(t, cfg.Ntfy.ServerURL)
	assert.Equal(t, 10, cfg.Ntfy.TimeoutSeconds)
	assert.True(t, cfg.Ntfy.RequireAccessToken)

	assert.Equal(t, 30, cfg.Reminder.MinutesBeforeDue)
	assert.Equal(t, 60000, cfg.Reminder.PollIntervalMS)
	assert.Empty(t, cfg.Reminder.ClickBaseURL)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TASKMAN_SERVER_PORT", "9090")
	t.Setenv("TASKMAN_SERVER_LOG_LEVEL", "debug")
	t.Setenv("TASKMAN_NTFY_SERVER_URL", "https://ntfy.example.com")
	t.Setenv("TASKMAN_NTFY_ACCESS_TOKEN", "tk_secret")
	t.Setenv("TASKMAN_REMINDER_MINUTES_BEFORE_DUE", "15")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.LogLevel)
	assert.Equal(t, "https://ntfy.example.com", cfg.Ntfy.ServerURL)
	assert.Equal(t, "tk_secret", cfg.Ntfy.AccessToken)
	assert.Equal(t, 15, cfg.Reminder.MinutesBeforeDue)
}

func TestLoadValidation(t *testing.T) {
	t.Run("requires a database URL", func(t *testing.T) {
		t.Setenv("TASKMAN_AUTH_JWT_SECRET", strings.Repeat("s", 32))

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("requires a JWT secret of at least 32 characters", func(t *testing.T) {
		t.Setenv("TASKMAN_DATABASE_URL", "postgres://localhost:5432/taskman")
		t.Setenv("TASKMAN_AUTH_JWT_SECRET", "too-short")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects an unknown log level", func(t *testing.T) {
		setRequiredEnv(t)
		t.Setenv("TASKMAN_SERVER_LOG_LEVEL", "verbose")

		_, err := Load()
		require.Error(t, err)
	})
}

package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rentdesk/rentdesk/internal/config"
)

func TestDefaults(t *testing.T) {
	t.Setenv("RENTDESK_API_URL", "")
	t.Setenv("RENTDESK_LOG_LEVEL", "")
	t.Setenv("RENTDESK_LOGIN_TIMEOUT", "")
	t.Setenv("RENTDESK_REQUEST_TIMEOUT", "")
	t.Setenv("APP_NAME", "")

	cfg := config.New()
	require.Equal(t, "http://localhost:8000/api", cfg.GetAPIBaseURL())
	require.Equal(t, "info", cfg.GetLogLevel())
	require.Equal(t, "RentDesk", cfg.GetAppName())
	require.Equal(t, 10*time.Second, cfg.GetLoginTimeout())
	require.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
}

func TestEnvironmentOverrides(t *testing.T) {
	t.Setenv("RENTDESK_API_URL", "https://rentals.example.com/api")
	t.Setenv("RENTDESK_CREDENTIALS_FILE", "/tmp/rentdesk-test/session.json")
	t.Setenv("RENTDESK_LOG_LEVEL", "debug")

	cfg := config.New()
	require.Equal(t, "https://rentals.example.com/api", cfg.GetAPIBaseURL())
	require.Equal(t, "/tmp/rentdesk-test/session.json", cfg.GetCredentialsFile())
	require.Equal(t, "debug", cfg.GetLogLevel())
}

func TestDurationAcceptsGoSyntaxAndBareSeconds(t *testing.T) {
	t.Setenv("RENTDESK_LOGIN_TIMEOUT", "5s")
	t.Setenv("RENTDESK_REQUEST_TIMEOUT", "45")

	cfg := config.New()
	require.Equal(t, 5*time.Second, cfg.GetLoginTimeout())
	require.Equal(t, 45*time.Second, cfg.GetRequestTimeout())
}

func TestDurationRejectsGarbage(t *testing.T) {
	t.Setenv("RENTDESK_LOGIN_TIMEOUT", "soon")
	t.Setenv("RENTDESK_REQUEST_TIMEOUT", "-5")

	cfg := config.New()
	require.Equal(t, 10*time.Second, cfg.GetLoginTimeout())
	require.Equal(t, 30*time.Second, cfg.GetRequestTimeout())
}

func TestLoadMissingFileIsNotAnError(t *testing.T) {
	require.NoError(t, config.Load("does-not-exist.env"))
}

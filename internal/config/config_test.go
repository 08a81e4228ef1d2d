package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, key := range []string{
		"WORKLOG_CONFIG_PATH", "WORKLOG_SERVER_HOST", "WORKLOG_SERVER_PORT",
		"WORKLOG_DB_PATH", "WORKLOG_LOG_LEVEL", "WORKLOG_LOG_PATH",
		"WORKLOG_TRANSPORT", "WORKLOG_AUTH_ENABLED", "WORKLOG_DEFAULT_USER",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	require.Equal(t, "worklog.db", cfg.DB.Path)
	require.Equal(t, "http", cfg.Transport.Mode)
	require.True(t, cfg.Auth.Enabled)
	require.Equal(t, "高", cfg.Labels.Priority["high"])
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "worklog.yaml")
	data := []byte(`
server:
  port: 9090
db:
  path: /var/lib/worklog.db
log:
  level: debug
auth:
  enabled: false
  default_user: alice
labels:
  priority:
    high: High
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	t.Setenv("WORKLOG_CONFIG_PATH", path)
	t.Setenv("WORKLOG_SERVER_PORT", "7070")
	t.Setenv("WORKLOG_TRANSPORT", "stdio")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, 7070, cfg.Server.Port)
	require.Equal(t, "0.0.0.0", cfg.Server.Host)
	require.Equal(t, "/var/lib/worklog.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "stdio", cfg.Transport.Mode)
	require.False(t, cfg.Auth.Enabled)
	require.Equal(t, "alice", cfg.Auth.DefaultUser)
	require.Equal(t, "High", cfg.Labels.Priority["high"])
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)

	t.Setenv("WORKLOG_SERVER_PORT", "eighty")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("WORKLOG_SERVER_PORT", "")
	t.Setenv("WORKLOG_TRANSPORT", "grpc")
	_, err = Load()
	require.Error(t, err)

	t.Setenv("WORKLOG_TRANSPORT", "stdio")
	_, err = Load()
	require.ErrorContains(t, err, "default_user")

	t.Setenv("WORKLOG_TRANSPORT", "")
	t.Setenv("WORKLOG_AUTH_ENABLED", "false")
	_, err = Load()
	require.ErrorContains(t, err, "default_user")
}

func TestLoadFile_Missing(t *testing.T) {
	clearEnv(t)
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "read config file")
}

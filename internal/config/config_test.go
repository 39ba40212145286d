package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"CONFIG_PATH", "SERVER_HOST", "SERVER_PORT", "DB_PATH", "LOG_LEVEL", "LOG_PATH", "TRANSPORT"} {
		t.Setenv(envPrefix+key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	require.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
}

func TestLoad_FileThenEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
db:
  path: /var/lib/scopetrack/data.db
log:
  level: debug
transport:
  mode: http
`), 0o600))

	t.Setenv("SCOPETRACK_CONFIG_PATH", path)
	t.Setenv("SCOPETRACK_SERVER_PORT", "9100")
	t.Setenv("SCOPETRACK_TRANSPORT", "HTTP")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1", cfg.Server.Host)
	require.Equal(t, 9100, cfg.Server.Port)
	require.Equal(t, "/var/lib/scopetrack/data.db", cfg.DB.Path)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, TransportHTTP, cfg.Transport.Mode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		want string
	}{
		{"port not a number", "SERVER_PORT", "eighty", "invalid SCOPETRACK_SERVER_PORT"},
		{"port out of range", "SERVER_PORT", "70000", "invalid server port 70000"},
		{"unknown transport", "TRANSPORT", "grpc", `invalid transport mode "grpc"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(envPrefix+tt.key, tt.val)

			_, err := Load()
			require.ErrorContains(t, err, tt.want)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("SCOPETRACK_CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.ErrorContains(t, err, "read config file")
}

func TestLogConfig_SlogLevel(t *testing.T) {
	require.Equal(t, slog.LevelDebug, LogConfig{Level: "DEBUG"}.SlogLevel())
	require.Equal(t, slog.LevelWarn, LogConfig{Level: "warning"}.SlogLevel())
	require.Equal(t, slog.LevelError, LogConfig{Level: "error"}.SlogLevel())
	require.Equal(t, slog.LevelInfo, LogConfig{Level: "verbose"}.SlogLevel())
}

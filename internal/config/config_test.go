package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoad_Defaults(t *testing.T) {
	isolateEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8084", cfg.Address())
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "data/presets.csv", cfg.Advisor.PresetsCSV)
	assert.Equal(t, 10, cfg.Advisor.MaxWorkers)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.True(t, cfg.Security.EnableRateLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	isolateEnv(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("BATCH_MAX_WORKERS", "3")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test, http://b.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, 3, cfg.Advisor.MaxWorkers)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
}

func TestLoad_DotEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SERVER_PORT=7070\nLOG_FORMAT=text\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	// godotenv sets these without t.Setenv, restore them afterwards.
	t.Cleanup(func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"zero workers", "BATCH_MAX_WORKERS", "0"},
		{"zero rps", "SECURITY_RATE_LIMIT_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}

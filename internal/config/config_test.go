package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "missing database url",
			env:     map[string]string{"GOODREADS_API": "key"},
			wantErr: "DATABASE_URL is not set",
		},
		{
			name:    "missing goodreads key",
			env:     map[string]string{"DATABASE_URL": "sqlite://books.db"},
			wantErr: "GOODREADS_API is not set",
		},
		{
			name: "bad session ttl",
			env: map[string]string{
				"DATABASE_URL":  "sqlite://books.db",
				"GOODREADS_API": "key",
				"SESSION_TTL":   "forever",
			},
			wantErr: "invalid SESSION_TTL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "sqlite://books.db")
	t.Setenv("GOODREADS_API", "key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, defaultGoodreadsURL, cfg.GoodreadsURL)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "book-review", cfg.ServiceName)
	assert.Empty(t, cfg.RedisAddr)
	assert.False(t, cfg.TelemetryEnabled())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("DATABASE_URL", "postgres://u:p@localhost/books")
	t.Setenv("GOODREADS_API", "key")
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("REDIS_CONNSTRING", "redis:6379")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel-collector:4317")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "redis:6379", cfg.RedisAddr)
	assert.True(t, cfg.TelemetryEnabled())
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "DATABASE_URL", "GOODREADS_API", "GOODREADS_URL", "REDIS_CONNSTRING",
		"SESSION_SECRET", "SESSION_TTL", "LOG_LEVEL", "OTEL_EXPORTER_OTLP_ENDPOINT", "SERVICE_NAME",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDatabase(t *testing.T) {
	clearEnv(t)
	_, err := LoadDatabase()
	assert.EqualError(t, err, "DATABASE_URL is not set")

	t.Setenv("DATABASE_URL", "sqlite://books.db")
	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "sqlite://books.db", cfg.DatabaseURL)
	assert.Empty(t, cfg.GoodreadsKey)
}

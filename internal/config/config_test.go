package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_DefaultValues(t *testing.T) {
	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 10, cfg.BcryptCost)
	assert.Equal(t, ":4000", cfg.HTTP.Addr)
	assert.Equal(t, 5*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, time.Duration(0), cfg.HTTP.WriteTimeout)
	assert.Equal(t, "devsecret", cfg.JWT.Secret)
	assert.Equal(t, 168*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "notesync.db", cfg.SQLite.Path)
	assert.Equal(t, "ws://localhost:8000", cfg.Surreal.URL)
	assert.Equal(t, "notesync", cfg.Surreal.Namespace)
}

func TestNewConfig_EnvironmentOverrides(t *testing.T) {
	tests := []struct {
		name     string
		envVars  map[string]string
		expected func(*Config)
	}{
		{
			name:    "log level override",
			envVars: map[string]string{"NOTESYNC_LOG_LEVEL": "debug"},
			expected: func(cfg *Config) {
				assert.Equal(t, "debug", cfg.LogLevel)
			},
		},
		{
			name: "http override",
			envVars: map[string]string{
				"NOTESYNC_HTTP_ADDR":          ":8080",
				"NOTESYNC_HTTP_READ_TIMEOUT":  "1s",
				"NOTESYNC_HTTP_IDLE_TIMEOUT":  "30s",
				"NOTESYNC_HTTP_WRITE_TIMEOUT": "2m",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, ":8080", cfg.HTTP.Addr)
				assert.Equal(t, time.Second, cfg.HTTP.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.HTTP.IdleTimeout)
				assert.Equal(t, 2*time.Minute, cfg.HTTP.WriteTimeout)
			},
		},
		{
			name: "jwt override",
			envVars: map[string]string{
				"NOTESYNC_JWT_SECRET": "s3cret",
				"NOTESYNC_JWT_TTL":    "15m",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, "s3cret", cfg.JWT.Secret)
				assert.Equal(t, 15*time.Minute, cfg.JWT.TTL)
			},
		},
		{
			name: "surrealdb store",
			envVars: map[string]string{
				"NOTESYNC_STORE_DRIVER":     "surrealdb",
				"NOTESYNC_SURREAL_URL":      "ws://db:8000",
				"NOTESYNC_SURREAL_DATABASE": "prod",
			},
			expected: func(cfg *Config) {
				assert.Equal(t, DriverSurrealDB, cfg.Store.Driver)
				assert.Equal(t, "ws://db:8000", cfg.Surreal.URL)
				assert.Equal(t, "prod", cfg.Surreal.Database)
			},
		},
		{
			name:    "unprefixed variables are ignored",
			envVars: map[string]string{"LOG_LEVEL": "error"},
			expected: func(cfg *Config) {
				assert.Equal(t, "info", cfg.LogLevel)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			cfg, err := NewConfig()
			require.NoError(t, err)
			tt.expected(cfg)
		})
	}
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
	}{
		{"unknown driver", map[string]string{"NOTESYNC_STORE_DRIVER": "mongo"}},
		{"zero ttl", map[string]string{"NOTESYNC_JWT_TTL": "0s"}},
		{"bcrypt too low", map[string]string{"NOTESYNC_BCRYPT_COST": "2"}},
		{"bad duration", map[string]string{"NOTESYNC_HTTP_READ_TIMEOUT": "soon"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}

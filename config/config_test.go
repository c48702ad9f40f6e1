package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig(t *testing.T) *Config {
	t.Helper()
	cfg := Default()
	require.NoError(t, cfg.GenerateSecret())
	return cfg
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	require.NotNil(t, cfg)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
	assert.Equal(t, "json", cfg.Log.Encoding)
	assert.Empty(t, cfg.Auth.Secret)

	// Only the secret is missing.
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "auth.secret")

	require.NoError(t, cfg.GenerateSecret())
	assert.Len(t, cfg.Auth.Secret, 64)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(*Config) {},
			wantErr: false,
		},
		{
			name:    "missing addr",
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
			errMsg:  "server.addr is required",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Server.ReadTimeout = -time.Second },
			wantErr: true,
			errMsg:  "server timeouts must not be negative",
		},
		{
			name:    "missing database path",
			mutate:  func(c *Config) { c.Database.Path = "" },
			wantErr: true,
			errMsg:  "database.path is required",
		},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.Auth.Secret = "too-short" },
			wantErr: true,
			errMsg:  "auth.secret must be at least 32 characters",
		},
		{
			name:    "zero session ttl",
			mutate:  func(c *Config) { c.Auth.SessionTTL = 0 },
			wantErr: true,
			errMsg:  "auth.session_ttl must be positive",
		},
		{
			name:    "bcrypt cost out of range",
			mutate:  func(c *Config) { c.Auth.BcryptCost = 2 },
			wantErr: true,
			errMsg:  "auth.bcrypt_cost must be between 4 and 31",
		},
		{
			name:    "unknown log encoding",
			mutate:  func(c *Config) { c.Log.Encoding = "xml" },
			wantErr: true,
			errMsg:  "log.encoding must be 'json' or 'console'",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := validConfig(t)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	for _, ext := range []string{".yaml", ".json"} {
		ext := ext
		t.Run(ext, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "config"+ext)
			cfg := validConfig(t)
			cfg.Server.Addr = "127.0.0.1:9090"
			cfg.Log.Encoding = "console"

			require.NoError(t, cfg.SaveToFile(path))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadFromFilePartialKeepsDefaults(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9999\"\nauth:\n  session_ttl: 2h\n"), 0600))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", cfg.Server.Addr)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, Default().Database.Path, cfg.Database.Path)
	assert.Equal(t, 10, cfg.Auth.BcryptCost)
}

func TestLoadInvalidFile(t *testing.T) {
	t.Parallel()

	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unterminated"), 0600))
	_, err = LoadFromFile(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), "parse config"))
}

func TestLoadEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("database:\n  path: /from/file.sqlite\nlog:\n  level: debug\n"), 0600))

	t.Setenv("TJ_DATABASE_PATH", "/from/env.sqlite")
	t.Setenv("TJ_AUTH_SESSION_TTL", "30m")
	t.Setenv("TJ_SERVER_METRICS", "false")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env.sqlite", cfg.Database.Path)
	assert.Equal(t, 30*time.Minute, cfg.Auth.SessionTTL)
	assert.False(t, cfg.Server.Metrics)
	// Not overridden, so the file value stands.
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadWithoutFile(t *testing.T) {
	t.Setenv("TJ_SERVER_ADDR", ":7070")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
}

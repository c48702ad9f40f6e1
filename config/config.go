package config

import (
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. TJ_SERVER_ADDR.
const EnvPrefix = "TJ"

// Config is the complete application configuration. Environment variables
// are named after the field path, e.g. TJ_AUTH_SESSION_TTL.
type Config struct {
	Server   ServerConfig   `json:"server" yaml:"server"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Auth     AuthConfig     `json:"auth" yaml:"auth"`
	Log      LogConfig      `json:"log" yaml:"log"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Addr            string        `json:"addr" yaml:"addr"`
	ReadTimeout     time.Duration `json:"read_timeout" yaml:"read_timeout" split_words:"true"`
	WriteTimeout    time.Duration `json:"write_timeout" yaml:"write_timeout" split_words:"true"`
	IdleTimeout     time.Duration `json:"idle_timeout" yaml:"idle_timeout" split_words:"true"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" split_words:"true"`
	Metrics         bool          `json:"metrics" yaml:"metrics"`
}

// DatabaseConfig points at the SQLite journal.
type DatabaseConfig struct {
	Path string `json:"path" yaml:"path"`
}

// AuthConfig contains session and password settings.
type AuthConfig struct {
	Secret       string        `json:"secret" yaml:"secret"`
	SessionTTL   time.Duration `json:"session_ttl" yaml:"session_ttl" split_words:"true"`
	CookieSecure bool          `json:"cookie_secure" yaml:"cookie_secure" split_words:"true"`
	BcryptCost   int           `json:"bcrypt_cost" yaml:"bcrypt_cost" split_words:"true"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "json" or "console"
	Development bool   `json:"development" yaml:"development"`
}

const minSecretLen = 32

// Default returns a configuration with sensible defaults. The auth secret is
// left empty; GenerateSecret fills one in.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			IdleTimeout:     60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Metrics:         true,
		},
		Database: DatabaseConfig{
			Path: "./tradejournal.sqlite",
		},
		Auth: AuthConfig{
			SessionTTL: 24 * time.Hour,
			BcryptCost: 10,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
		},
	}
}

// Load builds the configuration in layers: defaults, then the file at path
// (skipped when path is empty), then TJ_* environment variables. A .env file
// in the working directory is read into the environment first if present.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	if err := envconfig.Process(EnvPrefix, cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}
	return cfg, nil
}

// LoadFromFile loads configuration from a file over the defaults, without
// consulting the environment.
func LoadFromFile(path string) (*Config, error) {
	cfg := Default()
	if err := cfg.mergeFile(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		err = json.Unmarshal(data, c)
	} else {
		err = yaml.Unmarshal(data, c)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// SaveToFile writes the configuration as YAML, or JSON for a .json path.
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.EqualFold(filepath.Ext(path), ".json") {
		data, err = json.MarshalIndent(c, "", "  ")
	} else {
		data, err = yaml.Marshal(c)
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// The file holds the session secret.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// GenerateSecret sets a random 256-bit auth secret.
func (c *Config) GenerateSecret() error {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Errorf("generate secret: %w", err)
	}
	c.Auth.Secret = hex.EncodeToString(buf)
	return nil
}

// Validate checks if the configuration is usable for serving.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	if c.Server.ReadTimeout < 0 || c.Server.WriteTimeout < 0 || c.Server.IdleTimeout < 0 {
		errs = append(errs, errors.New("server timeouts must not be negative"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if len(c.Auth.Secret) < minSecretLen {
		errs = append(errs, fmt.Errorf("auth.secret must be at least %d characters", minSecretLen))
	}
	if c.Auth.SessionTTL <= 0 {
		errs = append(errs, errors.New("auth.session_ttl must be positive"))
	}
	if c.Auth.BcryptCost < 4 || c.Auth.BcryptCost > 31 {
		errs = append(errs, errors.New("auth.bcrypt_cost must be between 4 and 31"))
	}
	switch c.Log.Encoding {
	case "json", "console":
	default:
		errs = append(errs, errors.New("log.encoding must be 'json' or 'console'"))
	}
	return errors.Join(errs...)
}

// Package config resolves runtime settings from defaults, an optional YAML
// file, and the environment, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the settings shared by the terminal and web shells.
type Config struct {
	// Addr is the listen address of the web shell.
	Addr string `yaml:"addr" env:"CONNECTTHREE_ADDR"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level" env:"CONNECTTHREE_LOG_LEVEL"`
	// LogFormat is text or json.
	LogFormat string `yaml:"log_format" env:"CONNECTTHREE_LOG_FORMAT"`
	// LogFile receives logs in terminal mode, where stdout belongs to the UI.
	LogFile string `yaml:"log_file" env:"CONNECTTHREE_LOG_FILE"`
	// Heartbeat is the SSE keep-alive interval of the web shell.
	Heartbeat time.Duration `yaml:"heartbeat_interval" env:"CONNECTTHREE_HEARTBEAT_INTERVAL"`
	// ShutdownTimeout bounds graceful shutdown of the web shell.
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"CONNECTTHREE_SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            ":8080",
		LogLevel:        "info",
		LogFormat:       "text",
		Heartbeat:       15 * time.Second,
		ShutdownTimeout: 30 * time.Second,
	}
}

// LoadDotEnv loads a .env file into the process environment.
// A missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: load %s: %w", path, err)
	}
	return nil
}

// Load starts from Default, applies the YAML file at path when path is
// non-empty, then applies any environment variables that are set.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // path is caller-provided configuration
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("config: addr is required")
	}
	if c.Heartbeat <= 0 {
		return fmt.Errorf("config: heartbeat_interval must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config: shutdown_timeout must be positive")
	}
	return nil
}

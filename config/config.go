// Package config resolves server configuration from an optional YAML file
// and the OPENSVM_* environment variables. Resolution happens once at
// startup; the resulting Config is injected and read-only afterwards.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Environment variables recognized at startup. Environment always wins
// over file values.
const (
	EnvBaseURL  = "OPENSVM_BASE_URL"
	EnvAPIKey   = "OPENSVM_API_KEY"
	EnvJWTToken = "OPENSVM_JWT_TOKEN"
)

// DefaultBaseURL is the backend API root used when nothing else is set.
const DefaultBaseURL = "https://osvm.ai/api"

// DefaultTimeoutSeconds bounds backend round-trips.
const DefaultTimeoutSeconds = 30

const (
	projectConfigName = "osvm-mcp.yaml"
	homeConfigDir     = ".osvm-mcp"
	homeConfigName    = "config.yaml"
)

// Config is the resolved server configuration.
type Config struct {
	BaseURL        string `yaml:"base_url"`
	APIKey         string `yaml:"api_key"`
	JWTToken       string `yaml:"jwt_token"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
	}
}

// Timeout returns the backend timeout as a duration.
func (c Config) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return DefaultTimeoutSeconds * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// Load resolves configuration: defaults, then the discovered YAML file (if
// any), then environment overrides.
func Load(explicitPath string) (Config, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve working directory: %w", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("config: resolve user home: %w", err)
	}
	return LoadFrom(explicitPath, cwd, home)
}

// LoadFrom is a testable variant of Load with explicit search roots.
func LoadFrom(explicitPath, cwd, home string) (Config, error) {
	cfg := Default()

	path, found, err := discoverPath(explicitPath, cwd, home)
	if err != nil {
		return Config{}, err
	}
	if found {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
		if strings.TrimSpace(cfg.BaseURL) == "" {
			cfg.BaseURL = DefaultBaseURL
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// discoverPath resolves the config file with first-match semantics:
// explicit path (must exist), then ./osvm-mcp.yaml, then
// ~/.osvm-mcp/config.yaml.
func discoverPath(explicitPath, cwd, home string) (string, bool, error) {
	if clean := strings.TrimSpace(explicitPath); clean != "" {
		path := filepath.Clean(clean)
		info, err := os.Stat(path)
		if err != nil {
			return "", false, fmt.Errorf("config: stat %s: %w", path, err)
		}
		if info.IsDir() {
			return "", false, fmt.Errorf("config: %s is a directory", path)
		}
		return path, true, nil
	}

	candidates := []string{
		filepath.Join(cwd, projectConfigName),
		filepath.Join(home, homeConfigDir, homeConfigName),
	}
	for _, candidate := range candidates {
		info, err := os.Stat(candidate)
		if err == nil && !info.IsDir() {
			return candidate, true, nil
		}
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("config: stat %s: %w", candidate, err)
		}
	}
	return "", false, nil
}

func (c *Config) applyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvJWTToken)); v != "" {
		c.JWTToken = v
	}
}

// Package config handles CLI configuration loading and management.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"gopkg.in/yaml.v3"
)

// EnvConfigPath overrides the default configuration file location.
const EnvConfigPath = "LATCHLM_CONFIG"

// Config represents the CLI configuration.
type Config struct {
	DefaultProvider string                    `yaml:"default_provider"`
	DefaultModel    string                    `yaml:"default_model"`
	Providers       map[string]ProviderConfig `yaml:"providers"`
}

// ProviderConfig holds configuration for a specific provider.
type ProviderConfig struct {
	// APIKeyEnv names the environment variable holding the API key.
	// Empty means the provider's own default (e.g. GEMINI_API_KEY).
	APIKeyEnv string `yaml:"api_key_env,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	// Model overrides default_model for this provider.
	Model string `yaml:"model,omitempty"`
}

// HomeDir returns the per-user LatchLM directory.
// - macOS/Linux: ~/.latchlm
// - Windows: %USERPROFILE%\.latchlm
// It falls back to the current directory when no home is set.
func HomeDir() string {
	var homeDir string

	if runtime.GOOS == "windows" {
		homeDir = os.Getenv("USERPROFILE")
	} else {
		homeDir = os.Getenv("HOME")
	}

	if homeDir == "" {
		return "."
	}
	return filepath.Join(homeDir, ".latchlm")
}

// DefaultConfigPath returns the configuration file path, honoring LATCHLM_CONFIG.
func DefaultConfigPath() string {
	if p := os.Getenv(EnvConfigPath); p != "" {
		return p
	}
	return filepath.Join(HomeDir(), "config.yaml")
}

// LoadConfig loads configuration from the specified path.
// A missing file yields an empty config without error.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Providers: make(map[string]ProviderConfig),
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if cfg.Providers == nil {
		cfg.Providers = make(map[string]ProviderConfig)
	}

	return cfg, nil
}

// Save writes the configuration to path, creating its directory.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// GetProvider returns the provider config for the given name.
// Returns nil if the provider is not configured.
func (c *Config) GetProvider(name string) *ProviderConfig {
	if c == nil || c.Providers == nil {
		return nil
	}
	if pc, ok := c.Providers[name]; ok {
		return &pc
	}
	return nil
}

// ModelFor returns the model configured for provider, falling back to
// default_model.
func (c *Config) ModelFor(provider string) string {
	if c == nil {
		return ""
	}
	if pc := c.GetProvider(provider); pc != nil && pc.Model != "" {
		return pc.Model
	}
	return c.DefaultModel
}

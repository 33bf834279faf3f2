package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	// Repositories are additional package indexes consulted after the
	// ones declared by the project's build scripts.
	Repositories []RepoConfig `yaml:"repositories,omitempty"`
	HTTP         HTTPConfig   `yaml:"http"`
	Updates      UpdateConfig `yaml:"updates"`
	Git          GitConfig    `yaml:"git"`
}

// RepoConfig holds configuration for one extra repository
type RepoConfig struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
	// GroupFilters restrict the repository to matching dependency groups
	GroupFilters []string `yaml:"group_filters,omitempty"`
}

// HTTPConfig tunes metadata fetching
type HTTPConfig struct {
	MaxRetries     int `yaml:"max_retries"`
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// UpdateConfig holds default update behavior, overridable per run by flags
type UpdateConfig struct {
	StableOnly  bool `yaml:"stable_only"`
	Interactive bool `yaml:"interactive"`
}

// GitConfig holds git workflow settings
type GitConfig struct {
	// Disabled turns off branch-and-commit handling entirely
	Disabled bool `yaml:"disabled"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	return &Config{
		HTTP: HTTPConfig{
			MaxRetries:     3,
			TimeoutSeconds: 30,
		},
	}
}

// ConfigPaths returns all possible config file paths in priority order
// 1. ~/.config/gvc/config.yaml (XDG standard - priority)
// 2. ~/.gvc/config.yaml (legacy fallback)
func ConfigPaths() ([]string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	// Check XDG_CONFIG_HOME first, fallback to ~/.config
	xdgConfig := os.Getenv("XDG_CONFIG_HOME")
	if xdgConfig == "" {
		xdgConfig = filepath.Join(home, ".config")
	}

	return []string{
		filepath.Join(xdgConfig, "gvc", "config.yaml"),
		filepath.Join(home, ".gvc", "config.yaml"),
	}, nil
}

// DefaultConfigPath returns the default config file path (XDG standard)
func DefaultConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}
	return paths[0], nil
}

// FindConfigPath returns the first existing config file path
// Returns the default path if no config file exists yet
func FindConfigPath() (string, error) {
	paths, err := ConfigPaths()
	if err != nil {
		return "", err
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	// No config exists, return default (XDG) path for creation
	return paths[0], nil
}

// Load reads configuration from the first available config file
// Priority: ~/.config/gvc/config.yaml > ~/.gvc/config.yaml
func Load() (*Config, error) {
	configPath, err := FindConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(configPath)
}

// LoadFrom reads configuration from a specific file path, falling back to
// defaults when the file does not exist.
func LoadFrom(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes configuration to the default config file
func (c *Config) Save() error {
	configPath, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(configPath)
}

// SaveTo writes configuration to a specific file path
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

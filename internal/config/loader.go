package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (DECLGEN_*)
// 2. Config file (.declgen/config.yml or .declgen/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	configDir := filepath.Join(l.rootDir, ".declgen")
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	v.SetEnvPrefix("DECLGEN")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., DECLGEN_STORE_BACKEND)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.BindEnv("store.backend")
	v.BindEnv("store.path")
	v.BindEnv("store.cache_size")
	v.BindEnv("export.output")
	v.BindEnv("export.split_depth")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.path", defaults.Store.Path)
	v.SetDefault("store.cache_size", defaults.Store.CacheSize)

	v.SetDefault("export.output", defaults.Export.Output)
	v.SetDefault("export.split_depth", defaults.Export.SplitDepth)
	v.SetDefault("export.sources", defaults.Export.Sources)
}

// LoadFromCwd is a convenience function that loads config from the current
// working directory.
func LoadFromCwd() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadFromDir loads configuration from a specific directory.
func LoadFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}

package config

import (
	"github.com/prooflib/declgen/internal/batch"
	"github.com/prooflib/declgen/internal/export"
	"github.com/prooflib/declgen/internal/store/sqlitestore"
)

// Config represents the complete declgen configuration.
// It can be loaded from .declgen/config.yml with environment variable
// overrides.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Export ExportConfig `yaml:"export" mapstructure:"export"`
}

// StoreConfig selects and locates the symbol store backend.
type StoreConfig struct {
	Backend   string `yaml:"backend" mapstructure:"backend"`       // "json" or "sqlite"
	Path      string `yaml:"path" mapstructure:"path"`             // dump file or database path
	CacheSize int    `yaml:"cache_size" mapstructure:"cache_size"` // sqlite decl read cache entries
}

// ExportConfig controls the extraction run and the output document.
type ExportConfig struct {
	Output     string   `yaml:"output" mapstructure:"output"`           // output file path
	SplitDepth int      `yaml:"split_depth" mapstructure:"split_depth"` // 2^depth partitions
	Sources    []string `yaml:"sources" mapstructure:"sources"`         // glob patterns of files to retain; empty = all
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:   "json",
			Path:      "library_export.json",
			CacheSize: sqlitestore.DefaultCacheSize,
		},
		Export: ExportConfig{
			Output:     export.DefaultOutputFile,
			SplitDepth: batch.DefaultSplitDepth,
			Sources:    []string{},
		},
	}
}

package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

var (
	// ErrInvalidBackend indicates an unsupported store backend
	ErrInvalidBackend = errors.New("invalid store backend")

	// ErrEmptyStorePath indicates a missing store path
	ErrEmptyStorePath = errors.New("empty store path")

	// ErrEmptyOutput indicates a missing output path
	ErrEmptyOutput = errors.New("empty output path")

	// ErrInvalidSplitDepth indicates a negative split depth
	ErrInvalidSplitDepth = errors.New("invalid split depth")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	switch cfg.Store.Backend {
	case "json", "sqlite":
	default:
		errs = append(errs, fmt.Errorf("%w: %q (expected json or sqlite)",
			ErrInvalidBackend, cfg.Store.Backend))
	}
	if strings.TrimSpace(cfg.Store.Path) == "" {
		errs = append(errs, ErrEmptyStorePath)
	}

	if strings.TrimSpace(cfg.Export.Output) == "" {
		errs = append(errs, ErrEmptyOutput)
	}
	if cfg.Export.SplitDepth < 0 {
		errs = append(errs, fmt.Errorf("%w: %d", ErrInvalidSplitDepth, cfg.Export.SplitDepth))
	}
	for _, pattern := range cfg.Export.Sources {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("invalid source pattern %q: %w", pattern, err))
		}
	}

	return errors.Join(errs...)
}

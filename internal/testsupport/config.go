package testsupport

import (
	"path/filepath"
	"testing"

	"boardmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*config.Config)

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.DataDir = filepath.Join(base, "data")
	cfg.Paths.LogDir = filepath.Join(base, "logs")

	for _, opt := range opts {
		opt(&cfg)
	}

	return &cfg
}

// WithRecordLimit caps how many records a matching run processes.
func WithRecordLimit(limit int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.RecordLimit = limit
	}
}

// WithSimilarityThreshold overrides the fuzzy title threshold.
func WithSimilarityThreshold(threshold int) ConfigOption {
	return func(cfg *config.Config) {
		cfg.Matching.SimilarityThreshold = threshold
	}
}

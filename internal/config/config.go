package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Library contains configuration for the library catalog API.
type Library struct {
	BaseURL  string `toml:"base_url"`
	Building string `toml:"building"`
	Format   string `toml:"format"`
	PageSize int    `toml:"page_size"`
}

// GameDB contains configuration for the external game database API.
type GameDB struct {
	BaseURL        string `toml:"base_url"`
	LinkedItemsURL string `toml:"linked_items_url"`
}

// Matching contains configuration for the matching engine and its provider
// call pacing.
type Matching struct {
	SimilarityThreshold    int `toml:"similarity_threshold"`
	MaxAuthors             int `toml:"max_authors"`
	YearWindow             int `toml:"year_window"`
	MaxAttempts            int `toml:"max_attempts"`
	BaseDelaySeconds       int `toml:"base_delay_seconds"`
	ProcessingDelaySeconds int `toml:"processing_delay_seconds"`
	PacingDelaySeconds     int `toml:"pacing_delay_seconds"`
	RecordLimit            int `toml:"record_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config encapsulates all configuration values for boardmatch.
//
// Configuration sections by subsystem:
//   - Paths: data and log directories
//   - Library: library catalog API connection and search filters
//   - GameDB: game database API endpoints
//   - Matching: strategy thresholds, retry policy, pacing, record limit
//   - Logging: log format and level
type Config struct {
	Paths    Paths    `toml:"paths"`
	Library  Library  `toml:"library"`
	GameDB   GameDB   `toml:"gamedb"`
	Matching Matching `toml:"matching"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/boardmatch/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("boardmatch.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the data and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// LibraryCSVPath is where the fetched catalog records land.
func (c *Config) LibraryCSVPath() string {
	return filepath.Join(c.Paths.DataDir, "library_games.csv")
}

// RelationsCSVPath is the append-only match relation log.
func (c *Config) RelationsCSVPath() string {
	return filepath.Join(c.Paths.DataDir, "relations.csv")
}

// GamesCSVPath is where fetched game details land.
func (c *Config) GamesCSVPath() string {
	return filepath.Join(c.Paths.DataDir, "games.csv")
}

// AvailabilityCSVPath is where per-record availability lands.
func (c *Config) AvailabilityCSVPath() string {
	return filepath.Join(c.Paths.DataDir, "availability.csv")
}

// DatabasePath is the analytical SQLite database built by the load step.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "boardmatch.db")
}

// LockPath guards the data directory against concurrent runs.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, ".boardmatch.lock")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

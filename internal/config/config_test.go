package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.normalize(); err != nil {
		t.Fatalf("normalize: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if cfg.Matching.SimilarityThreshold != 75 {
		t.Fatalf("similarity threshold = %d, want 75", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Library.PageSize != 100 {
		t.Fatalf("page size = %d, want 100", cfg.Library.PageSize)
	}
}

func TestLoadAppliesOverridesAndDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + filepath.Join(dir, "data") + `"

[matching]
similarity_threshold = 80
record_limit = 5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("config file not detected")
	}
	if cfg.Matching.SimilarityThreshold != 80 {
		t.Fatalf("similarity threshold = %d, want 80", cfg.Matching.SimilarityThreshold)
	}
	if cfg.Matching.RecordLimit != 5 {
		t.Fatalf("record limit = %d, want 5", cfg.Matching.RecordLimit)
	}
	if cfg.Matching.MaxAttempts != 3 {
		t.Fatalf("max attempts = %d, want default 3", cfg.Matching.MaxAttempts)
	}
	if cfg.Paths.DataDir != filepath.Join(dir, "data") {
		t.Fatalf("data dir = %q", cfg.Paths.DataDir)
	}
	if cfg.Paths.LogDir == "" || strings.HasPrefix(cfg.Paths.LogDir, "~") {
		t.Fatalf("log dir not expanded: %q", cfg.Paths.LogDir)
	}
}

func TestLoadRejectsInvalidLogging(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[logging]
format = "xml"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for unsupported log format")
	}
}

func TestLoadRejectsOversizedPageSize(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[library]
page_size = 500
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, _, err := Load(path); err == nil {
		t.Fatal("expected error for page_size above the API cap")
	}
}

func TestCreateSampleParsesAndValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample not detected")
	}
	if cfg.Matching.SimilarityThreshold != 75 {
		t.Fatalf("sample threshold = %d", cfg.Matching.SimilarityThreshold)
	}
}

func TestDataFilePaths(t *testing.T) {
	cfg := Default()
	cfg.Paths.DataDir = "/tmp/bm-data"

	if got := cfg.RelationsCSVPath(); got != filepath.Join("/tmp/bm-data", "relations.csv") {
		t.Fatalf("relations path = %q", got)
	}
	if got := cfg.DatabasePath(); got != filepath.Join("/tmp/bm-data", "boardmatch.db") {
		t.Fatalf("database path = %q", got)
	}
}

func TestExpandPathHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}
	got, err := ExpandPath("~/x")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if got != filepath.Join(home, "x") {
		t.Fatalf("ExpandPath = %q", got)
	}
}

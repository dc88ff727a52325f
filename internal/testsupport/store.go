package testsupport

import (
	"testing"

	"boardmatch/internal/config"
	"boardmatch/internal/gamedb"
	"boardmatch/internal/relations"
)

// MustOpenRelations opens an append-only CSV store for tests and registers
// cleanup.
func MustOpenRelations(t testing.TB, path string, header []string) *relations.Store {
	t.Helper()

	store, err := relations.Open(path, header)
	if err != nil {
		t.Fatalf("relations.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

// MustOpenGameDB opens the analytical database for tests and registers
// cleanup.
func MustOpenGameDB(t testing.TB, cfg *config.Config) *gamedb.Store {
	t.Helper()

	store, err := gamedb.Open(cfg.DatabasePath())
	if err != nil {
		t.Fatalf("gamedb.Open: %v", err)
	}
	t.Cleanup(func() {
		store.Close()
	})
	return store
}

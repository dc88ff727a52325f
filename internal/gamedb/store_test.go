package gamedb

import (
	"context"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"boardmatch/internal/bgg"
	"boardmatch/internal/library"
	"boardmatch/internal/relations"
)

func intPtr(v int) *int { return &v }

func writeCSV(t *testing.T, path string, header []string, rows ...[]string) {
	t.Helper()
	file, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer file.Close()
	writer := csv.NewWriter(file)
	writer.Write(header)
	for _, row := range rows {
		writer.Write(row)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func seedSources(t *testing.T, dir string) Sources {
	t.Helper()

	records := []library.Record{
		{ID: "keski.1", Title: "Arkham Horror", Year: intPtr(2005),
			Authors: library.AuthorGroups{Primary: map[string]library.AuthorDetail{"Launius, Richard": {}}}},
		{ID: "keski.2", Title: "Ra", Year: intPtr(1999)},
		{ID: "keski.3", Title: "Mystery Game"},
	}
	libraryCSV := filepath.Join(dir, "library_games.csv")
	if err := library.WriteRecords(libraryCSV, records); err != nil {
		t.Fatalf("write library csv: %v", err)
	}

	relationsCSV := filepath.Join(dir, "relations.csv")
	writeCSV(t, relationsCSV, relations.Header,
		[]string{"keski.1", "15987", "exact"},
		[]string{"keski.2", "12345", "author_fuzzy_title"},
		[]string{"keski.3", "", "none"},
	)

	game1 := bgg.GameDetails{
		ID: "15987", PrimaryName: "Arkham Horror",
		Names: []string{"Arkham Horror"}, Year: intPtr(2005),
		Categories: []string{"Horror", "Fantasy"},
		Mechanics:  []string{"Cooperative Game"},
		Designers:  []string{"Richard Launius"},
	}
	game2 := bgg.GameDetails{
		ID: "12345", PrimaryName: "Ra",
		Names: []string{"Ra"}, Year: intPtr(1999),
		Categories: []string{"Ancient", "Fantasy"},
		Mechanics:  []string{"Auction/Bidding"},
		Designers:  []string{"Reiner Knizia"},
	}
	gamesCSV := filepath.Join(dir, "games.csv")
	writeCSV(t, gamesCSV, bgg.DetailsHeader, game1.ToRow(), game2.ToRow())

	availability := library.Availability{
		ID: "keski.1", Title: "Arkham Horror",
		Buildings: []library.Building{{Value: "0/Keski/", Name: "Keski-kirjasto"}},
		Locations: []string{"Keski-kirjasto"}, Organizations: []string{"Keski"},
	}
	row, err := availability.ToRow()
	if err != nil {
		t.Fatalf("availability row: %v", err)
	}
	availabilityCSV := filepath.Join(dir, "availability.csv")
	writeCSV(t, availabilityCSV, library.AvailabilityHeader, row)

	return Sources{
		LibraryCSV:      libraryCSV,
		RelationsCSV:    relationsCSV,
		GamesCSV:        gamesCSV,
		AvailabilityCSV: availabilityCSV,
	}
}

func TestLoadAllRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := seedSources(t, dir)

	store, err := Open(filepath.Join(dir, "boardmatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	counts, err := store.LoadAll(context.Background(), src)
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if counts.LibraryRecords != 3 || counts.Relations != 3 || counts.Games != 2 || counts.Availability != 1 {
		t.Fatalf("counts = %+v", counts)
	}

	var categories int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM categories`).Scan(&categories); err != nil {
		t.Fatalf("count categories: %v", err)
	}
	// Horror, Fantasy, Ancient; Fantasy shared between the two games.
	if categories != 3 {
		t.Fatalf("categories = %d, want 3", categories)
	}

	var fantasyGames int
	if err := store.db.QueryRow(`
		SELECT COUNT(*) FROM game_categories gc
		JOIN categories c ON c.category_id = gc.category_id
		WHERE c.category = 'Fantasy'`).Scan(&fantasyGames); err != nil {
		t.Fatalf("count fantasy links: %v", err)
	}
	if fantasyGames != 2 {
		t.Fatalf("fantasy links = %d, want 2", fantasyGames)
	}
}

func TestLoadAllIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	src := seedSources(t, dir)

	store, err := Open(filepath.Join(dir, "boardmatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	if _, err := store.LoadAll(context.Background(), src); err != nil {
		t.Fatalf("first load: %v", err)
	}
	counts, err := store.LoadAll(context.Background(), src)
	if err != nil {
		t.Fatalf("second load: %v", err)
	}
	if counts.LibraryRecords != 3 {
		t.Fatalf("second load counts = %+v", counts)
	}

	var rows int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM library_records`).Scan(&rows); err != nil {
		t.Fatalf("count: %v", err)
	}
	if rows != 3 {
		t.Fatalf("library rows after reload = %d, want 3", rows)
	}
}

func TestMatchMethodStats(t *testing.T) {
	dir := t.TempDir()
	src := seedSources(t, dir)

	store, err := Open(filepath.Join(dir, "boardmatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.LoadAll(context.Background(), src); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	stats, err := store.MatchMethodStats(context.Background())
	if err != nil {
		t.Fatalf("MatchMethodStats: %v", err)
	}
	if len(stats) != 3 {
		t.Fatalf("expected 3 kinds, got %d", len(stats))
	}
	var totalPercent float64
	for _, stat := range stats {
		if stat.Count != 1 {
			t.Fatalf("kind %s count = %d, want 1", stat.Kind, stat.Count)
		}
		totalPercent += stat.Percent
	}
	if totalPercent < 99.9 || totalPercent > 100.1 {
		t.Fatalf("percentages sum to %f", totalPercent)
	}
}

func TestExamplesJoinTitles(t *testing.T) {
	dir := t.TempDir()
	src := seedSources(t, dir)

	store, err := Open(filepath.Join(dir, "boardmatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()
	if _, err := store.LoadAll(context.Background(), src); err != nil {
		t.Fatalf("LoadAll: %v", err)
	}

	examples, err := store.Examples(context.Background(), "exact", 5)
	if err != nil {
		t.Fatalf("Examples: %v", err)
	}
	if len(examples) != 1 {
		t.Fatalf("expected 1 example, got %d", len(examples))
	}
	example := examples[0]
	if example.SourceID != "keski.1" || example.Title != "Arkham Horror" {
		t.Fatalf("unexpected example %+v", example)
	}
	if example.TargetID != "15987" || example.GameName != "Arkham Horror" {
		t.Fatalf("unexpected join %+v", example)
	}
}

func TestLoadAllMissingOptionalFiles(t *testing.T) {
	dir := t.TempDir()
	libraryCSV := filepath.Join(dir, "library_games.csv")
	if err := library.WriteRecords(libraryCSV, []library.Record{{ID: "keski.1", Title: "Ra"}}); err != nil {
		t.Fatalf("write library csv: %v", err)
	}

	store, err := Open(filepath.Join(dir, "boardmatch.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	counts, err := store.LoadAll(context.Background(), Sources{
		LibraryCSV:      libraryCSV,
		RelationsCSV:    filepath.Join(dir, "missing-relations.csv"),
		GamesCSV:        filepath.Join(dir, "missing-games.csv"),
		AvailabilityCSV: filepath.Join(dir, "missing-availability.csv"),
	})
	if err != nil {
		t.Fatalf("LoadAll: %v", err)
	}
	if counts.LibraryRecords != 1 || counts.Relations != 0 || counts.Games != 0 {
		t.Fatalf("counts = %+v", counts)
	}
}

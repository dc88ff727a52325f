package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"boardmatch/internal/bgg"
	"boardmatch/internal/library"
	"boardmatch/internal/match"
	"boardmatch/internal/relations"
)

// catalogStub answers title searches from a fixed map and knows no
// designers, so only the exact strategy can succeed.
type catalogStub struct {
	games map[string][]bgg.Game
}

func (s *catalogStub) SearchTitle(_ context.Context, title string) ([]bgg.Game, error) {
	return s.games[title], nil
}

func (s *catalogStub) SearchDesigner(context.Context, string) (string, error) {
	return "", nil
}

func (s *catalogStub) DesignerGames(context.Context, string) ([]bgg.Game, error) {
	return nil, nil
}

func (s *catalogStub) GameDetails(context.Context, string) (bgg.GameDetails, error) {
	return bgg.GameDetails{}, errors.New("no details")
}

func newStubMatcher(games map[string][]bgg.Game) *match.Matcher {
	policy := match.FetchPolicy{
		MaxAttempts:     1,
		Delay:           time.Millisecond,
		ProcessingDelay: time.Millisecond,
	}
	fetcher := match.NewFetcher(&catalogStub{games: games}, policy, nil)
	return match.NewMatcher(fetcher, nil, match.Options{})
}

func openStore(t *testing.T, path string) *relations.Store {
	t.Helper()
	store, err := relations.Open(path, relations.Header)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func testRecords() []library.Record {
	return []library.Record{
		{ID: "keski.1", Title: "Arkham Horror"},
		{ID: "keski.2", Title: "Unknown Game"},
		{ID: "keski.3", Title: "Ra"},
	}
}

func testGames() map[string][]bgg.Game {
	return map[string][]bgg.Game{
		"Arkham Horror": {{ID: "15987", Names: []string{"Arkham Horror"}}},
		"Ra":            {{ID: "12", Names: []string{"Ra"}}},
	}
}

func TestRunMatchAppendsOneRowPerRecord(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	store := openStore(t, path)
	matcher := newStubMatcher(testGames())

	summary, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 0)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if summary.Input != 3 || summary.Processed != 3 || summary.Matched != 2 || summary.Skipped != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	rows, err := readRows(path)
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 relation rows, got %d", len(rows))
	}
	if rows[0][0] != "keski.1" || rows[0][1] != "15987" || rows[0][2] != "exact" {
		t.Fatalf("unexpected first row %v", rows[0])
	}
	if rows[1][0] != "keski.2" || rows[1][1] != "" || rows[1][2] != "none" {
		t.Fatalf("unexpected unmatched row %v", rows[1])
	}
}

func TestRunMatchSkipsProcessedRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	matcher := newStubMatcher(testGames())

	store := openStore(t, path)
	if _, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 0); err != nil {
		t.Fatalf("first run: %v", err)
	}
	store.Close()

	// A second run over the same input does no new work.
	store = openStore(t, path)
	summary, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 0)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Skipped != 3 || summary.Processed != 0 {
		t.Fatalf("summary = %+v", summary)
	}

	rows, err := readRows(path)
	if err != nil {
		t.Fatalf("readRows: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows after second run, got %d", len(rows))
	}
}

func TestRunMatchRecordLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	store := openStore(t, path)
	matcher := newStubMatcher(testGames())

	summary, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 2)
	if err != nil {
		t.Fatalf("RunMatch: %v", err)
	}
	if summary.Processed != 2 {
		t.Fatalf("processed = %d, want 2", summary.Processed)
	}
	if store.Count() != 2 {
		t.Fatalf("store count = %d, want 2", store.Count())
	}
}

func TestRunMatchLimitCountsOnlyNewWork(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	matcher := newStubMatcher(testGames())

	store := openStore(t, path)
	if _, err := RunMatch(context.Background(), nil, matcher, testRecords()[:2], store, 0); err != nil {
		t.Fatalf("first run: %v", err)
	}
	store.Close()

	store = openStore(t, path)
	summary, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 1)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if summary.Skipped != 2 || summary.Processed != 1 {
		t.Fatalf("summary = %+v", summary)
	}
	if !store.Has("keski.3") {
		t.Fatal("expected keski.3 to be processed")
	}
}

func TestRunMatchRecoversFromTruncatedStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	matcher := newStubMatcher(testGames())

	store := openStore(t, path)
	if _, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 0); err != nil {
		t.Fatalf("first run: %v", err)
	}
	store.Close()

	// Chop the final newline and part of the last row, as a crash
	// mid-write would.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if err := os.WriteFile(path, data[:len(data)-8], 0o644); err != nil {
		t.Fatalf("truncate csv: %v", err)
	}

	store = openStore(t, path)
	summary, err := RunMatch(context.Background(), nil, matcher, testRecords(), store, 0)
	if err != nil {
		t.Fatalf("recovery run: %v", err)
	}
	if summary.Processed != 1 {
		t.Fatalf("expected the damaged record to be reprocessed, summary = %+v", summary)
	}
	if !store.Has("keski.3") {
		t.Fatal("expected keski.3 back in the store")
	}
}

func TestRunMatchHonorsContextCancel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "relations.csv")
	store := openStore(t, path)
	matcher := newStubMatcher(testGames())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := RunMatch(ctx, nil, matcher, testRecords(), store, 0); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

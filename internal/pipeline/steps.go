package pipeline

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"boardmatch/internal/bgg"
	"boardmatch/internal/config"
	"boardmatch/internal/gamedb"
	"boardmatch/internal/library"
	"boardmatch/internal/logging"
	"boardmatch/internal/match"
	"boardmatch/internal/relations"
)

// LibraryFetcher is the catalog client surface the fetch steps consume.
type LibraryFetcher interface {
	FetchRecords(ctx context.Context) ([]library.Record, error)
	FetchAvailability(ctx context.Context, id string) (library.Availability, error)
}

// DetailsFetcher fetches full game attributes for one id.
type DetailsFetcher interface {
	GameDetails(ctx context.Context, id string) (bgg.GameDetails, error)
}

// FetchLibraryStep downloads the full catalog record set and rewrites the
// library CSV. This step is not incremental; the catalog is the source of
// truth and refetches replace the previous snapshot.
func FetchLibraryStep(cfg *config.Config, client LibraryFetcher, logger *slog.Logger) Step {
	return Step{
		Name: "fetch-library",
		Run: func(ctx context.Context) error {
			records, err := client.FetchRecords(ctx)
			if err != nil {
				return err
			}
			if len(records) == 0 {
				return errors.New("catalog returned no records")
			}
			if err := library.WriteRecords(cfg.LibraryCSVPath(), records); err != nil {
				return err
			}
			logger.Info("library records fetched", logging.Int("records", len(records)))
			return nil
		},
	}
}

// MatchStep resolves unprocessed library records against the game database
// and appends relation rows.
func MatchStep(cfg *config.Config, matcher *match.Matcher, logger *slog.Logger) Step {
	return Step{
		Name: "match",
		Run: func(ctx context.Context) error {
			records, err := library.ReadRecords(cfg.LibraryCSVPath())
			if err != nil {
				return fmt.Errorf("load library records: %w", err)
			}
			store, err := relations.Open(cfg.RelationsCSVPath(), relations.Header)
			if err != nil {
				return err
			}
			defer store.Close()

			_, err = RunMatch(ctx, logger, matcher, records, store, cfg.Matching.RecordLimit)
			return err
		},
	}
}

// DetailsStep fetches full attributes for every matched game id that is
// not already in the games CSV. Failed fetches are logged and left for the
// next run.
func DetailsStep(cfg *config.Config, fetcher DetailsFetcher, logger *slog.Logger) Step {
	return Step{
		Name: "fetch-details",
		Run: func(ctx context.Context) error {
			rows, err := readRows(cfg.RelationsCSVPath())
			if err != nil {
				return fmt.Errorf("load relations: %w", err)
			}
			store, err := relations.Open(cfg.GamesCSVPath(), bgg.DetailsHeader)
			if err != nil {
				return err
			}
			defer store.Close()

			var fetched, failed int
			seen := make(map[string]struct{})
			for _, row := range rows {
				if err := ctx.Err(); err != nil {
					return err
				}
				if len(row) < 2 || row[1] == "" {
					continue
				}
				targetID := row[1]
				if _, dup := seen[targetID]; dup {
					continue
				}
				seen[targetID] = struct{}{}
				if store.Has(targetID) {
					continue
				}
				details, err := fetcher.GameDetails(ctx, targetID)
				if err != nil {
					failed++
					logger.Warn("game detail fetch failed",
						logging.String("id", targetID),
						logging.Error(err))
					continue
				}
				if err := store.Append(details.ToRow()); err != nil {
					return err
				}
				fetched++
			}
			logger.Info("game details fetched",
				logging.Int("fetched", fetched),
				logging.Int("failed", failed))
			return nil
		},
	}
}

// AvailabilityStep fetches holding locations for every library record not
// yet in the availability CSV. A failed lookup persists an empty row so
// the record is not retried forever.
func AvailabilityStep(cfg *config.Config, client LibraryFetcher, logger *slog.Logger) Step {
	return Step{
		Name: "fetch-availability",
		Run: func(ctx context.Context) error {
			records, err := library.ReadRecords(cfg.LibraryCSVPath())
			if err != nil {
				return fmt.Errorf("load library records: %w", err)
			}
			store, err := relations.Open(cfg.AvailabilityCSVPath(), library.AvailabilityHeader)
			if err != nil {
				return err
			}
			defer store.Close()

			var fetched, failed int
			for _, record := range records {
				if err := ctx.Err(); err != nil {
					return err
				}
				if store.Has(record.ID) {
					continue
				}
				availability, err := client.FetchAvailability(ctx, record.ID)
				if err != nil {
					failed++
					logger.Warn("availability fetch failed",
						logging.String("id", record.ID),
						logging.Error(err))
					availability = library.Availability{ID: record.ID, Title: record.Title}
				} else {
					fetched++
				}
				row, err := availability.ToRow()
				if err != nil {
					return err
				}
				if err := store.Append(row); err != nil {
					return err
				}
			}
			logger.Info("availability fetched",
				logging.Int("fetched", fetched),
				logging.Int("failed", failed))
			return nil
		},
	}
}

// LoadStep rebuilds the analytical database from the data directory CSVs.
func LoadStep(cfg *config.Config, logger *slog.Logger) Step {
	return Step{
		Name: "load",
		Run: func(ctx context.Context) error {
			db, err := gamedb.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer db.Close()

			counts, err := db.LoadAll(ctx, gamedb.Sources{
				LibraryCSV:      cfg.LibraryCSVPath(),
				RelationsCSV:    cfg.RelationsCSVPath(),
				GamesCSV:        cfg.GamesCSVPath(),
				AvailabilityCSV: cfg.AvailabilityCSVPath(),
			})
			if err != nil {
				return err
			}
			logger.Info("database loaded",
				logging.Int("library_records", counts.LibraryRecords),
				logging.Int("relations", counts.Relations),
				logging.Int("games", counts.Games),
				logging.Int("availability", counts.Availability))
			return nil
		},
	}
}

// readRows loads a CSV file and returns its data rows, header skipped. A
// missing file yields no rows.
func readRows(path string) ([][]string, error) {
	file, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

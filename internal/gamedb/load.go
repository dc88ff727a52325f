package gamedb

import (
	"context"
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"strings"

	"boardmatch/internal/bgg"
	"boardmatch/internal/library"
)

// Sources names the CSV files one load consumes. Only the library CSV is
// required; the others load empty when missing.
type Sources struct {
	LibraryCSV      string
	RelationsCSV    string
	GamesCSV        string
	AvailabilityCSV string
}

// Counts reports how many rows one load inserted per table.
type Counts struct {
	LibraryRecords int
	Relations      int
	Games          int
	Availability   int
}

// LoadAll replaces the database contents with the CSV snapshots. The whole
// load runs in one transaction; a failure leaves the previous contents
// intact.
func (s *Store) LoadAll(ctx context.Context, src Sources) (Counts, error) {
	var counts Counts

	records, err := library.ReadRecords(src.LibraryCSV)
	if err != nil {
		return counts, wrapf(err, "read library csv")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return counts, wrapf(err, "begin load")
	}
	defer tx.Rollback()

	for _, table := range []string{
		"game_categories", "game_mechanics", "categories", "mechanics",
		"library_records", "relations", "games", "availability",
	} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return counts, wrapf(err, "clear "+table)
		}
	}

	if counts.LibraryRecords, err = loadLibraryRecords(ctx, tx, records); err != nil {
		return counts, err
	}
	if counts.Relations, err = loadRelations(ctx, tx, src.RelationsCSV); err != nil {
		return counts, err
	}
	if counts.Games, err = loadGames(ctx, tx, src.GamesCSV); err != nil {
		return counts, err
	}
	if counts.Availability, err = loadAvailability(ctx, tx, src.AvailabilityCSV); err != nil {
		return counts, err
	}

	if err := tx.Commit(); err != nil {
		return counts, wrapf(err, "commit load")
	}
	return counts, nil
}

func loadLibraryRecords(ctx context.Context, tx *sql.Tx, records []library.Record) (int, error) {
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO library_records (
		id, title, alternative_titles, year, languages, authors,
		publishers, summary, genres, subjects, playing_times
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, wrapf(err, "prepare library insert")
	}
	defer stmt.Close()

	for _, record := range records {
		_, err := stmt.ExecContext(ctx,
			record.ID,
			record.Title,
			joinList(record.AlternativeTitles),
			nullableYear(record.Year),
			joinList(record.Languages),
			joinList(record.AllAuthors()),
			joinList(record.Publishers),
			joinList(record.Summary),
			joinList(record.Genres),
			joinList(record.Subjects),
			joinList(record.PlayingTimes),
		)
		if err != nil {
			return 0, wrapf(err, fmt.Sprintf("insert library record %s", record.ID))
		}
	}
	return len(records), nil
}

func loadRelations(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, wrapf(err, "read relations csv")
	}
	count := 0
	for _, row := range rows {
		if len(row) < 3 || row[0] == "" {
			continue
		}
		_, err := tx.ExecContext(ctx,
			`INSERT OR REPLACE INTO relations (source_id, target_id, match_kind) VALUES (?, ?, ?)`,
			row[0], row[1], row[2])
		if err != nil {
			return count, wrapf(err, fmt.Sprintf("insert relation %s", row[0]))
		}
		count++
	}
	return count, nil
}

func loadGames(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, wrapf(err, "read games csv")
	}
	count := 0
	for _, row := range rows {
		details, err := bgg.DetailsFromRow(row)
		if err != nil {
			return count, wrapf(err, "parse games csv")
		}
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO games (
			id, primary_name, all_names, year, description,
			min_players, max_players, playing_time, min_age,
			designers, artists, publishers,
			rank, average_rating, bayes_average, users_rated, weight, owned
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			details.ID,
			details.PrimaryName,
			joinList(details.Names),
			nullableYear(details.Year),
			details.Description,
			details.MinPlayers,
			details.MaxPlayers,
			details.PlayingTime,
			details.MinAge,
			joinList(details.Designers),
			joinList(details.Artists),
			joinList(details.Publishers),
			details.Rank,
			details.AverageRating,
			details.BayesAverage,
			details.UsersRated,
			details.Weight,
			details.Owned,
		)
		if err != nil {
			return count, wrapf(err, fmt.Sprintf("insert game %s", details.ID))
		}
		if err := linkTerms(ctx, tx, details.ID, details.Categories, "categories", "category", "game_categories", "category_id"); err != nil {
			return count, err
		}
		if err := linkTerms(ctx, tx, details.ID, details.Mechanics, "mechanics", "mechanic", "game_mechanics", "mechanic_id"); err != nil {
			return count, err
		}
		count++
	}
	return count, nil
}

// linkTerms normalizes a term list into its dimension table and junction
// rows.
func linkTerms(ctx context.Context, tx *sql.Tx, gameID string, terms []string, table, column, joinTable, idColumn string) error {
	for _, term := range terms {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT OR IGNORE INTO %s (%s) VALUES (?)", table, column), term); err != nil {
			return wrapf(err, "insert "+column)
		}
		var termID int64
		if err := tx.QueryRowContext(ctx,
			fmt.Sprintf("SELECT %s FROM %s WHERE %s = ?", idColumn, table, column), term).Scan(&termID); err != nil {
			return wrapf(err, "lookup "+column)
		}
		if _, err := tx.ExecContext(ctx,
			fmt.Sprintf("INSERT OR IGNORE INTO %s (game_id, %s) VALUES (?, ?)", joinTable, idColumn),
			gameID, termID); err != nil {
			return wrapf(err, "link "+column)
		}
	}
	return nil
}

func loadAvailability(ctx context.Context, tx *sql.Tx, path string) (int, error) {
	rows, err := readRows(path)
	if err != nil {
		return 0, wrapf(err, "read availability csv")
	}
	count := 0
	for _, row := range rows {
		availability, err := library.AvailabilityFromRow(row)
		if err != nil {
			return count, wrapf(err, "parse availability csv")
		}
		_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO availability (
			record_id, title, num_locations, locations, organizations, buildings_json
		) VALUES (?, ?, ?, ?, ?, ?)`,
			availability.ID,
			availability.Title,
			len(availability.Buildings),
			joinList(availability.Locations),
			joinList(availability.Organizations),
			row[5],
		)
		if err != nil {
			return count, wrapf(err, fmt.Sprintf("insert availability %s", availability.ID))
		}
		count++
	}
	return count, nil
}

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

func joinList(values []string) string {
	return strings.Join(values, "; ")
}

func nullableYear(year *int) any {
	if year == nil {
		return nil
	}
	return *year
}

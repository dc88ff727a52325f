package gamedb

import (
	"context"
	"database/sql"
)

// MethodStat is one match-kind bucket in the report.
type MethodStat struct {
	Kind    string
	Count   int
	Percent float64
}

// MatchMethodStats returns per-kind relation counts with percentages of
// the total, ordered by count descending.
func (s *Store) MatchMethodStats(ctx context.Context) ([]MethodStat, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM relations`).Scan(&total); err != nil {
		return nil, wrapf(err, "count relations")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT match_kind, COUNT(*) AS n
		FROM relations
		GROUP BY match_kind
		ORDER BY n DESC, match_kind`)
	if err != nil {
		return nil, wrapf(err, "query match methods")
	}
	defer rows.Close()

	var stats []MethodStat
	for rows.Next() {
		var stat MethodStat
		if err := rows.Scan(&stat.Kind, &stat.Count); err != nil {
			return nil, wrapf(err, "scan match method")
		}
		if total > 0 {
			stat.Percent = float64(stat.Count) / float64(total) * 100
		}
		stats = append(stats, stat)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf(err, "iterate match methods")
	}
	return stats, nil
}

// Example is one matched pair shown in the report.
type Example struct {
	SourceID string
	Title    string
	TargetID string
	GameName string
}

// Examples returns up to n matched pairs for one match kind, joined with
// the library title and the game's primary name where loaded.
func (s *Store) Examples(ctx context.Context, kind string, n int) ([]Example, error) {
	if n <= 0 {
		n = 5
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.source_id,
		       COALESCE(l.title, ''),
		       r.target_id,
		       COALESCE(g.primary_name, '')
		FROM relations r
		LEFT JOIN library_records l ON l.id = r.source_id
		LEFT JOIN games g ON g.id = r.target_id
		WHERE r.match_kind = ?
		ORDER BY r.source_id
		LIMIT ?`, kind, n)
	if err != nil {
		return nil, wrapf(err, "query examples")
	}
	defer rows.Close()

	var examples []Example
	for rows.Next() {
		var example Example
		var targetID sql.NullString
		if err := rows.Scan(&example.SourceID, &example.Title, &targetID, &example.GameName); err != nil {
			return nil, wrapf(err, "scan example")
		}
		example.TargetID = targetID.String
		examples = append(examples, example)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapf(err, "iterate examples")
	}
	return examples, nil
}

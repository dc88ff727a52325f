package pipeline

import (
	"context"
	"log/slog"

	"boardmatch/internal/library"
	"boardmatch/internal/logging"
	"boardmatch/internal/match"
	"boardmatch/internal/relations"
)

// Summary reports what one matching run did.
type Summary struct {
	Input     int
	Skipped   int
	Processed int
	Matched   int
}

// RunMatch resolves every unprocessed record through the matcher and
// appends one relation row per record, in input order, flushing as it
// goes. Records whose ids are already in the store are skipped; limit
// caps the number of newly processed records (0 means no limit).
func RunMatch(ctx context.Context, logger *slog.Logger, matcher *match.Matcher, records []library.Record, store *relations.Store, limit int) (Summary, error) {
	if logger == nil {
		logger = logging.NewNop()
	}
	summary := Summary{Input: len(records)}

	for _, record := range records {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		if store.Has(record.ID) {
			summary.Skipped++
			continue
		}
		if limit > 0 && summary.Processed >= limit {
			break
		}

		src := match.Source{
			ID:        record.ID,
			Title:     record.Title,
			AltTitles: record.AlternativeTitles,
			Year:      record.Year,
			Authors:   record.PrimaryAuthors(),
		}
		best, kind := matcher.FindBestMatch(ctx, src)
		targetID := ""
		if best != nil {
			targetID = best.ID
			summary.Matched++
		}
		if err := store.Append([]string{record.ID, targetID, string(kind)}); err != nil {
			return summary, err
		}
		summary.Processed++
	}

	logger.Info("matching complete",
		logging.Int("input", summary.Input),
		logging.Int("skipped", summary.Skipped),
		logging.Int("processed", summary.Processed),
		logging.Int("matched", summary.Matched))
	return summary, nil
}

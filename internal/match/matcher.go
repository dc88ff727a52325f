package match

import (
	"context"
	"log/slog"

	"boardmatch/internal/logging"
)

const (
	defaultThreshold  = 75
	defaultMaxAuthors = 2
	defaultYearWindow = 1
)

// Matcher runs the strategy chain over one source record at a time.
type Matcher struct {
	fetcher    *Fetcher
	logger     *slog.Logger
	threshold  int
	maxAuthors int
	yearWindow int
}

// Options tunes the matcher. Zero values fall back to the defaults.
type Options struct {
	SimilarityThreshold int
	MaxAuthors          int
	YearWindow          int
}

// NewMatcher builds a Matcher over the fetcher. A nil logger discards.
func NewMatcher(fetcher *Fetcher, logger *slog.Logger, opts Options) *Matcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	threshold := opts.SimilarityThreshold
	if threshold <= 0 {
		threshold = defaultThreshold
	}
	maxAuthors := opts.MaxAuthors
	if maxAuthors <= 0 {
		maxAuthors = defaultMaxAuthors
	}
	yearWindow := opts.YearWindow
	if yearWindow <= 0 {
		yearWindow = defaultYearWindow
	}
	return &Matcher{
		fetcher:    fetcher,
		logger:     logger,
		threshold:  threshold,
		maxAuthors: maxAuthors,
		yearWindow: yearWindow,
	}
}

type strategy struct {
	name string
	run  func(context.Context, Source) []Scored
}

func (m *Matcher) strategies() []strategy {
	return []strategy{
		{name: "exact", run: m.exactMatches},
		{name: "substring", run: m.substringMatches},
		{name: "author_fuzzy_title", run: m.authorFuzzyTitleMatches},
		{name: "author_year", run: m.authorYearMatches},
	}
}

// Candidates runs the strategies in priority order and returns the first
// non-empty result set. Later strategies are never consulted once one
// fires.
func (m *Matcher) Candidates(ctx context.Context, src Source) []Scored {
	for _, strat := range m.strategies() {
		results := strat.run(ctx, src)
		if len(results) == 0 {
			continue
		}
		m.logger.Debug("strategy produced candidates",
			logging.String("source_id", src.ID),
			logging.String("strategy", strat.name),
			logging.Int("candidates", len(results)))
		return results
	}
	return nil
}

// SelectBest reduces a candidate set to one winner, or nil when the set is
// empty. Duplicated target ids collapse to their first occurrence; kind
// priority orders the rest; a known source year prefers candidates
// published within a year of it.
func SelectBest(candidates []Scored, src Source) *Scored {
	return selectBest(candidates, src, defaultYearWindow)
}

func selectBest(candidates []Scored, src Source, yearWindow int) *Scored {
	if len(candidates) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(candidates))
	unique := make([]Scored, 0, len(candidates))
	for _, candidate := range candidates {
		if _, dup := seen[candidate.ID]; dup {
			continue
		}
		seen[candidate.ID] = struct{}{}
		unique = append(unique, candidate)
	}
	if len(unique) == 1 {
		return &unique[0]
	}

	// Stable sort by kind priority; order within a kind is preserved.
	ordered := make([]Scored, len(unique))
	copy(ordered, unique)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Kind.Priority() < ordered[j-1].Kind.Priority(); j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	if src.Year != nil {
		for _, candidate := range ordered {
			if candidate.Year != nil && abs(*candidate.Year-*src.Year) <= yearWindow {
				match := candidate
				return &match
			}
		}
	}
	return &ordered[0]
}

// FindBestMatch composes the strategy chain and the disambiguator. The
// second return is the winning kind, or KindNone when nothing resolved.
func (m *Matcher) FindBestMatch(ctx context.Context, src Source) (*Scored, Kind) {
	best := selectBest(m.Candidates(ctx, src), src, m.yearWindow)
	if best == nil {
		m.logger.Info("no match",
			logging.String("source_id", src.ID),
			logging.String("title", src.Title))
		return nil, KindNone
	}
	m.logger.Info("matched",
		logging.String("source_id", src.ID),
		logging.String("title", src.Title),
		logging.String("target_id", best.ID),
		logging.String("kind", string(best.Kind)),
		logging.Int("score", best.Score))
	return best, best.Kind
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

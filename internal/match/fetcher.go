package match

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"boardmatch/internal/bgg"
	"boardmatch/internal/logging"
	"boardmatch/internal/retry"
)

// FetchPolicy bounds provider calls: retry attempts, the delays between
// them, and the pacing delay applied after each successful call.
type FetchPolicy struct {
	MaxAttempts     int
	Delay           time.Duration
	ProcessingDelay time.Duration
	PacingDelay     time.Duration
}

// DefaultFetchPolicy mirrors the provider's informal rate expectations.
func DefaultFetchPolicy() FetchPolicy {
	return FetchPolicy{
		MaxAttempts:     3,
		Delay:           time.Second,
		ProcessingDelay: 2 * time.Second,
		PacingDelay:     time.Second,
	}
}

func (p FetchPolicy) withDefaults() FetchPolicy {
	defaults := DefaultFetchPolicy()
	if p.MaxAttempts <= 0 {
		p.MaxAttempts = defaults.MaxAttempts
	}
	if p.Delay <= 0 {
		p.Delay = defaults.Delay
	}
	if p.ProcessingDelay <= 0 {
		p.ProcessingDelay = defaults.ProcessingDelay
	}
	return p
}

// Fetcher adapts a Provider for the strategy chain. Every operation retries
// transient failures per the policy and degrades exhausted retries to empty
// results; the strategies never see an error.
type Fetcher struct {
	provider Provider
	policy   FetchPolicy
	retry    retry.Policy
	logger   *slog.Logger
}

// NewFetcher wraps provider with the supplied policy. A nil logger
// discards.
func NewFetcher(provider Provider, policy FetchPolicy, logger *slog.Logger) *Fetcher {
	if logger == nil {
		logger = logging.NewNop()
	}
	policy = policy.withDefaults()
	return &Fetcher{
		provider: provider,
		policy:   policy,
		retry: retry.Policy{
			MaxAttempts:     policy.MaxAttempts,
			Delay:           policy.Delay,
			ProcessingDelay: policy.ProcessingDelay,
			Retryable: func(err error) bool {
				return errors.Is(err, bgg.ErrStillProcessing) || retry.IsTransient(err)
			},
			Processing: func(err error) bool {
				return errors.Is(err, bgg.ErrStillProcessing)
			},
		},
		logger: logger,
	}
}

// SearchByTitle queries the title search provider. Failures log a warning
// and return no candidates.
func (f *Fetcher) SearchByTitle(ctx context.Context, title string) []Candidate {
	var games []bgg.Game
	err := retry.Do(ctx, f.retry, func(ctx context.Context) error {
		var err error
		games, err = f.provider.SearchTitle(ctx, title)
		return err
	})
	if err != nil {
		f.logger.Warn("title search failed",
			logging.String("title", title),
			logging.Error(err))
		return nil
	}
	f.pace(ctx)
	candidates := make([]Candidate, 0, len(games))
	for _, game := range games {
		candidates = append(candidates, Candidate{
			ID:    game.ID,
			Names: game.Names,
			Year:  game.Year,
		})
	}
	return candidates
}

// SearchByAuthor resolves an author name to the ids of their games. The
// two-step lookup (name to designer id, designer id to works) retries each
// step independently; a name that resolves to no designer is a valid empty
// outcome.
func (f *Fetcher) SearchByAuthor(ctx context.Context, name string) []string {
	var designerID string
	err := retry.Do(ctx, f.retry, func(ctx context.Context) error {
		var err error
		designerID, err = f.provider.SearchDesigner(ctx, name)
		return err
	})
	if err != nil {
		f.logger.Warn("designer search failed",
			logging.String("author", name),
			logging.Error(err))
		return nil
	}
	f.pace(ctx)
	if designerID == "" {
		return nil
	}

	var games []bgg.Game
	err = retry.Do(ctx, f.retry, func(ctx context.Context) error {
		var err error
		games, err = f.provider.DesignerGames(ctx, designerID)
		return err
	})
	if err != nil {
		f.logger.Warn("designer works lookup failed",
			logging.String("author", name),
			logging.String("designer_id", designerID),
			logging.Error(err))
		return nil
	}
	f.pace(ctx)
	ids := make([]string, 0, len(games))
	for _, game := range games {
		ids = append(ids, game.ID)
	}
	return ids
}

// Details fetches full attributes for one candidate id, designers included.
// Returns nil when the fetch fails or the id is unknown.
func (f *Fetcher) Details(ctx context.Context, id string) *Candidate {
	var details bgg.GameDetails
	err := retry.Do(ctx, f.retry, func(ctx context.Context) error {
		var err error
		details, err = f.provider.GameDetails(ctx, id)
		return err
	})
	if err != nil {
		f.logger.Warn("detail fetch failed",
			logging.String("id", id),
			logging.Error(err))
		return nil
	}
	f.pace(ctx)

	names := details.Names
	if details.PrimaryName != "" && (len(names) == 0 || names[0] != details.PrimaryName) {
		reordered := make([]string, 0, len(names)+1)
		reordered = append(reordered, details.PrimaryName)
		for _, name := range names {
			if name != details.PrimaryName {
				reordered = append(reordered, name)
			}
		}
		names = reordered
	}
	return &Candidate{
		ID:        details.ID,
		Names:     names,
		Year:      details.Year,
		Designers: details.Designers,
	}
}

func (f *Fetcher) pace(ctx context.Context) {
	if f.policy.PacingDelay > 0 {
		retry.Sleep(ctx, f.policy.PacingDelay)
	}
}

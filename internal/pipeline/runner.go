package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"boardmatch/internal/config"
	"boardmatch/internal/logging"
)

// Step is one unit of pipeline work.
type Step struct {
	Name string
	Run  func(ctx context.Context) error
}

// Runner executes steps sequentially under the data directory lock.
type Runner struct {
	cfg    *config.Config
	logger *slog.Logger
}

// NewRunner builds a Runner. A nil logger discards.
func NewRunner(cfg *config.Config, logger *slog.Logger) (*Runner, error) {
	if cfg == nil {
		return nil, errors.New("pipeline: config is required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Runner{cfg: cfg, logger: logger}, nil
}

// Run acquires the lock, executes the steps in order, and releases the
// lock. The first step error aborts the run.
func (r *Runner) Run(ctx context.Context, steps ...Step) error {
	if err := r.cfg.EnsureDirectories(); err != nil {
		return err
	}

	lock := flock.New(r.cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("pipeline: acquire lock: %w", err)
	}
	if !ok {
		return errors.New("pipeline: another run is already in progress")
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			r.logger.Warn("failed to release run lock", logging.Error(err))
		}
	}()

	runID := uuid.NewString()
	logger := r.logger.With(logging.String("run_id", runID))
	logger.Info("run started", logging.Int("steps", len(steps)))

	started := time.Now()
	for _, step := range steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		stepStart := time.Now()
		logger.Info("step started", logging.String("step", step.Name))
		if err := step.Run(ctx); err != nil {
			logger.Error("step failed",
				logging.String("step", step.Name),
				logging.Duration("elapsed", time.Since(stepStart)),
				logging.Error(err))
			return fmt.Errorf("pipeline: step %s: %w", step.Name, err)
		}
		logger.Info("step finished",
			logging.String("step", step.Name),
			logging.Duration("elapsed", time.Since(stepStart)))
	}

	logger.Info("run finished", logging.Duration("elapsed", time.Since(started)))
	return nil
}

package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"boardmatch/internal/config"
	"boardmatch/internal/pipeline"
)

type stepDeps struct {
	cfg    *config.Config
	logger *slog.Logger
}

// runSteps builds the requested steps and executes them under the data
// directory lock.
func runSteps(ctx *commandContext, cmd *cobra.Command, builders ...func(stepDeps) pipeline.Step) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.ensureLogger()
	if err != nil {
		return err
	}

	deps := stepDeps{cfg: cfg, logger: logger}
	steps := make([]pipeline.Step, 0, len(builders))
	for _, build := range builders {
		steps = append(steps, build(deps))
	}

	runner, err := pipeline.NewRunner(cfg, logger)
	if err != nil {
		return err
	}
	return runner.Run(cmd.Context(), steps...)
}

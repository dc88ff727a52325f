package main

import (
	"github.com/spf13/cobra"

	"boardmatch/internal/pipeline"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Match unprocessed catalog records against the game database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("limit") {
				cfg.Matching.RecordLimit = limit
			}
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}
			matcher, err := ctx.matcher(logger)
			if err != nil {
				return err
			}
			return runSteps(ctx, cmd, func(deps stepDeps) pipeline.Step {
				return pipeline.MatchStep(deps.cfg, matcher, deps.logger)
			})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of newly matched records (0 matches everything)")
	return cmd
}

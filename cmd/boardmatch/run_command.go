package main

import (
	"github.com/spf13/cobra"

	"boardmatch/internal/pipeline"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var skipFetch bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the full pipeline: fetch, match, enrich, load",
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
			catalog, err := ctx.libraryClient()
			if err != nil {
				return err
			}
			matcher, err := ctx.matcher(logger)
			if err != nil {
				return err
			}
			games, err := ctx.gameClient()
			if err != nil {
				return err
			}

			steps := make([]pipeline.Step, 0, 5)
			if !skipFetch {
				steps = append(steps, pipeline.FetchLibraryStep(cfg, catalog, logger))
			}
			steps = append(steps,
				pipeline.MatchStep(cfg, matcher, logger),
				pipeline.DetailsStep(cfg, games, logger),
				pipeline.AvailabilityStep(cfg, catalog, logger),
				pipeline.LoadStep(cfg, logger),
			)

			runner, err := pipeline.NewRunner(cfg, logger)
			if err != nil {
				return err
			}
			return runner.Run(cmd.Context(), steps...)
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Cap the number of newly matched records (0 matches everything)")
	cmd.Flags().BoolVar(&skipFetch, "skip-fetch", false, "Reuse the existing catalog snapshot instead of refetching")
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"boardmatch/internal/pipeline"
)

func newFetchCommand(ctx *commandContext) *cobra.Command {
	fetchCmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch data from the catalog and game database APIs",
	}

	fetchCmd.AddCommand(newFetchLibraryCommand(ctx))
	fetchCmd.AddCommand(newFetchDetailsCommand(ctx))
	fetchCmd.AddCommand(newFetchAvailabilityCommand(ctx))

	return fetchCmd
}

func newFetchLibraryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "library",
		Short: "Download the catalog's board game records",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.libraryClient()
			if err != nil {
				return err
			}
			return runSteps(ctx, cmd, func(deps stepDeps) pipeline.Step {
				return pipeline.FetchLibraryStep(deps.cfg, client, deps.logger)
			})
		},
	}
}

func newFetchDetailsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "details",
		Short: "Download full attributes for every matched game",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.gameClient()
			if err != nil {
				return err
			}
			return runSteps(ctx, cmd, func(deps stepDeps) pipeline.Step {
				return pipeline.DetailsStep(deps.cfg, client, deps.logger)
			})
		},
	}
}

func newFetchAvailabilityCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "availability",
		Short: "Download holding locations for every catalog record",
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := ctx.libraryClient()
			if err != nil {
				return err
			}
			return runSteps(ctx, cmd, func(deps stepDeps) pipeline.Step {
				return pipeline.AvailabilityStep(deps.cfg, client, deps.logger)
			})
		},
	}
}

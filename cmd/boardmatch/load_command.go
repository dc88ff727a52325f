package main

import (
	"github.com/spf13/cobra"

	"boardmatch/internal/pipeline"
)

func newLoadCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Rebuild the analytical database from the data directory CSVs",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSteps(ctx, cmd, func(deps stepDeps) pipeline.Step {
				return pipeline.LoadStep(deps.cfg, deps.logger)
			})
		},
	}
}

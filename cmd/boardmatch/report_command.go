package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"boardmatch/internal/gamedb"
)

func newReportCommand(ctx *commandContext) *cobra.Command {
	var examples int
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show match method statistics from the analytical database",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			db, err := gamedb.Open(cfg.DatabasePath())
			if err != nil {
				return err
			}
			defer db.Close()

			stats, err := db.MatchMethodStats(cmd.Context())
			if err != nil {
				return err
			}
			if asJSON {
				return writeReportJSON(cmd, db, stats, examples)
			}
			return printReport(cmd, db, stats, examples)
		},
	}

	cmd.Flags().IntVar(&examples, "examples", 0, "Show up to N example matches per method")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Emit the report as JSON")
	return cmd
}

func printReport(cmd *cobra.Command, db *gamedb.Store, stats []gamedb.MethodStat, examples int) error {
	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No match relations loaded; run the pipeline first")
		return nil
	}

	fmt.Fprintln(out, heading(out, "Match methods"))
	rows := make([][]string, 0, len(stats))
	for _, stat := range stats {
		rows = append(rows, []string{
			stat.Kind,
			strconv.Itoa(stat.Count),
			fmt.Sprintf("%.1f%%", stat.Percent),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Method", "Count", "Share"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight},
	))

	if examples <= 0 {
		return nil
	}
	for _, stat := range stats {
		items, err := db.Examples(cmd.Context(), stat.Kind, examples)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, heading(out, fmt.Sprintf("Examples: %s", stat.Kind)))
		exampleRows := make([][]string, 0, len(items))
		for _, item := range items {
			exampleRows = append(exampleRows, []string{
				item.SourceID, item.Title, item.TargetID, item.GameName,
			})
		}
		fmt.Fprintln(out, renderTable(
			[]string{"Record", "Title", "Game ID", "Game"},
			exampleRows,
			nil,
		))
	}
	return nil
}

func writeReportJSON(cmd *cobra.Command, db *gamedb.Store, stats []gamedb.MethodStat, examples int) error {
	type jsonExample struct {
		SourceID string `json:"source_id"`
		Title    string `json:"title"`
		TargetID string `json:"target_id"`
		GameName string `json:"game_name"`
	}
	type jsonMethod struct {
		Method   string        `json:"method"`
		Count    int           `json:"count"`
		Percent  float64       `json:"percent"`
		Examples []jsonExample `json:"examples,omitempty"`
	}

	methods := make([]jsonMethod, 0, len(stats))
	for _, stat := range stats {
		method := jsonMethod{
			Method:  stat.Kind,
			Count:   stat.Count,
			Percent: stat.Percent,
		}
		if examples > 0 {
			items, err := db.Examples(cmd.Context(), stat.Kind, examples)
			if err != nil {
				return err
			}
			for _, item := range items {
				method.Examples = append(method.Examples, jsonExample{
					SourceID: item.SourceID,
					Title:    item.Title,
					TargetID: item.TargetID,
					GameName: item.GameName,
				})
			}
		}
		methods = append(methods, method)
	}
	return writeJSON(cmd, map[string]any{"methods": methods})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/formatforge/internal/history"
	"github.com/pdiddy/formatforge/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export finished conversion jobs",
	Long: `History lists recent jobs from the local ledger, newest first. Filter by
--status or --source. Use --export yaml|json to write matching jobs to a
file in the history directory; --limit caps the export, which otherwise
includes every match.`,
	RunE: runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(viper.GetViper())
	if !cfg.History.Enabled {
		return fmt.Errorf("job history is disabled (history.enabled=false)")
	}
	store, err := openHistory(cfg.History)
	if err != nil {
		return err
	}
	defer store.Close()

	status, _ := cmd.Flags().GetString("status")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")
	opts := history.ListOptions{
		Status:     types.JobStatus(status),
		Source:     types.SourceType(source),
		MaxResults: limit,
	}
	ctx := context.Background()

	if format, _ := cmd.Flags().GetString("export"); format != "" {
		var path string
		switch strings.ToLower(format) {
		case "yaml", "yml":
			path, err = store.ExportYAML(ctx, opts)
		case "json":
			path, err = store.ExportJSON(ctx, opts)
		default:
			return fmt.Errorf("unknown export format %q (want yaml or json)", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "Exported to %s\n", path)
		return nil
	}

	records, err := store.List(ctx, opts)
	if err != nil {
		return err
	}
	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatHistory(os.Stdout, records, jsonOutput)
}

func formatHistory(w io.Writer, records []types.Record, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(records)
	}

	if len(records) == 0 {
		fmt.Fprintln(w, "No jobs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-6s  %-5s  %s\n", "Finished", "Status", "Source", "To", "Input")
	fmt.Fprintln(w, strings.Repeat("-", 80))
	for _, r := range records {
		fmt.Fprintf(w, "%-20s  %-9s  %-6s  %-5s  %s\n",
			r.FinishedAt.Local().Format("2006-01-02 15:04:05"),
			r.Status, r.Job.Source, r.Job.Target, r.Job.InputPath)
		if r.Status == types.JobFailed {
			fmt.Fprintf(w, "%22s%s\n", "", r.Message)
		}
	}
	return nil
}

func init() {
	historyCmd.Flags().String("status", "", "filter by status: succeeded or failed")
	historyCmd.Flags().String("source", "", "filter by source type")
	historyCmd.Flags().Int("limit", 0, "maximum jobs to list or export (default: history.max_results when listing, all when exporting)")
	historyCmd.Flags().String("export", "", "export listed jobs to a file: yaml or json")
	historyCmd.Flags().Bool("json", false, "print JSON instead of a table")

	rootCmd.AddCommand(historyCmd)
}

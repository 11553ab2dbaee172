// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/formatforge/internal/compat"
	"github.com/pdiddy/formatforge/internal/detect"
	"github.com/pdiddy/formatforge/pkg/types"
)

var detectCmd = &cobra.Command{
	Use:   "detect <file>",
	Short: "Show a file's detected source type and its targets",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := detect.Inspect(args[0])
		if err != nil {
			return err
		}
		targets, _ := compat.TargetsFor(res.Type)

		mime := "unknown, fallback to extension"
		if res.ByMagic {
			mime = res.MIME
		}
		fmt.Fprintf(os.Stdout, "MIME:    %s\n", mime)
		fmt.Fprintf(os.Stdout, "Type:    %s\n", res.Type)
		fmt.Fprintf(os.Stdout, "Targets: %s\n", joinTargets(targets))
		return nil
	},
}

var targetsCmd = &cobra.Command{
	Use:   "targets [source]",
	Short: "List supported target formats per source type",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sources := types.SourceTypes
		if len(args) == 1 {
			st, err := types.ParseSourceType(args[0])
			if err != nil {
				return err
			}
			sources = []types.SourceType{st}
		}
		for _, st := range sources {
			targets, err := compat.TargetsFor(st)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "%-6s %s\n", st, joinTargets(targets))
		}
		return nil
	},
}

func joinTargets(targets []types.TargetFormat) string {
	parts := make([]string, len(targets))
	for i, t := range targets {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

func init() {
	rootCmd.AddCommand(detectCmd)
	rootCmd.AddCommand(targetsCmd)
}

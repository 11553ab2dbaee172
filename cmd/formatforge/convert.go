// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/formatforge/internal/detect"
	"github.com/pdiddy/formatforge/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <file>",
	Short: "Convert a file to another format",
	Long: `Convert detects the file's source type, checks that the requested target
is supported for it, and runs the matching conversion. Outputs are written
next to the input unless --output-dir or conversion.output_dir is set.

Multi-page PDFs converted to images produce a single zip archive with one
image per page.`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	input := args[0]
	to, _ := cmd.Flags().GetString("to")
	sourceFlag, _ := cmd.Flags().GetString("source")
	outFlag, _ := cmd.Flags().GetString("output-dir")

	cfg := loadConfig(viper.GetViper())

	job := types.ConversionJob{
		InputPath: input,
		OutputDir: resolveOutputDir(outFlag, cfg.Conversion.OutputDir, input),
		Target:    types.NormalizeTarget(to),
	}

	if sourceFlag != "" {
		st, err := types.ParseSourceType(sourceFlag)
		if err != nil {
			return err
		}
		job.Source = st
	} else {
		st, err := detect.Detect(input)
		if err != nil {
			if errors.Is(err, types.ErrDetection) {
				return fmt.Errorf("%w\nselect the type manually with --source (one of %v)", err, types.SourceTypes)
			}
			return err
		}
		job.Source = st
	}

	eng, err := newEngine(cfg)
	if err != nil {
		return err
	}
	defer eng.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Fprintf(os.Stderr, "Converting %s (%s) to %s\n", input, job.Source, job.Target)
	return relayOutcomes(eng.dispatcher.Submit(ctx, job), os.Stdout, os.Stderr)
}

// relayOutcomes prints progress to errw and the terminal outcome to w. It
// returns the failure's error, if any.
func relayOutcomes(outcomes <-chan types.Outcome, w, errw io.Writer) error {
	var failure error
	for o := range outcomes {
		switch o.Kind {
		case types.OutcomeProgress:
			fmt.Fprintf(errw, "  %3d%%\n", o.Percent)
		case types.OutcomeSuccess:
			fmt.Fprintln(w, o.Message)
			for _, out := range o.Outputs {
				fmt.Fprintf(w, "  %s\n", out)
			}
		case types.OutcomeFailure:
			failure = o.Err
			if failure == nil {
				failure = errors.New(o.Message)
			}
		}
	}
	return failure
}

func init() {
	convertCmd.Flags().StringP("to", "t", "", "target format, e.g. txt, png, docx, pdf")
	convertCmd.Flags().StringP("source", "s", "", "override the detected source type: pdf, image, docx, txt, md, html, code")
	convertCmd.Flags().StringP("output-dir", "o", "", "directory for produced files (default: the input's directory)")
	_ = convertCmd.MarkFlagRequired("to")

	rootCmd.AddCommand(convertCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert implements the per-format conversion pipelines and the
// resolver that maps a (source type, target format) pair to exactly one of
// them. Every pipeline reads one input file, writes its artifacts into an
// existing output directory, and reports progress through a callback.
package convert

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/formatforge/internal/compat"
	"github.com/pdiddy/formatforge/internal/render"
	"github.com/pdiddy/formatforge/pkg/types"
)

const defaultJPEGQuality = 95

// Request is the input to a single pipeline run.
type Request struct {
	InputPath string
	OutputDir string
	Source    types.SourceType
	Target    types.TargetFormat
}

// Result lists the files a pipeline produced and its summary message.
type Result struct {
	Outputs []string
	Message string
}

// ProgressFunc receives percentages in 0-100, non-decreasing within a run.
type ProgressFunc func(percent int)

// Pipeline is one conversion routine.
type Pipeline func(ctx context.Context, req Request, progress ProgressFunc) (Result, error)

// Options configures a Converter.
type Options struct {
	// Renderer turns HTML into PDF. Without one, PDF targets fail with
	// types.ErrRender.
	Renderer render.Renderer

	// JPEGQuality is used for jpg/jpeg outputs (default 95).
	JPEGQuality int

	Logger *slog.Logger
}

// Converter owns the pipelines and their shared settings. It holds no
// per-job state, so pipelines may be called directly.
type Converter struct {
	renderer    render.Renderer
	jpegQuality int
	logger      *slog.Logger
}

// New creates a Converter.
func New(opts Options) *Converter {
	q := opts.JPEGQuality
	if q <= 0 || q > 100 {
		q = defaultJPEGQuality
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{renderer: opts.Renderer, jpegQuality: q, logger: logger}
}

// Resolve returns the pipeline for (source, target). Pairs absent from the
// compatibility matrix wrap types.ErrInvalidPair.
func (c *Converter) Resolve(source types.SourceType, target types.TargetFormat) (Pipeline, error) {
	if !compat.Supports(source, target) {
		return nil, invalidPair(source, target)
	}

	switch source {
	case types.SourcePDF:
		if target == "txt" {
			return c.PDFText, nil
		}
		return c.PDFImages, nil
	case types.SourceImage:
		return c.ImageConvert, nil
	case types.SourceDOCX:
		return c.DOCXText, nil
	case types.SourceTXT, types.SourceMD, types.SourceHTML, types.SourceCode:
		switch {
		case target == "docx":
			return c.TextToDOCX, nil
		case source == types.SourceMD && target == "html":
			return c.MarkdownToHTML, nil
		case target == "pdf":
			return c.MarkupToPDF, nil
		default:
			return c.Passthrough, nil
		}
	default:
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownSourceType, source)
	}
}

func invalidPair(source types.SourceType, target types.TargetFormat) error {
	return fmt.Errorf("%w: %s to %s", types.ErrInvalidPair, source, target)
}

// prepare checks the request's files before any work starts: the input
// must be a readable regular file and the output directory must exist.
// The directory is never created.
func prepare(req Request) error {
	info, err := os.Stat(req.InputPath)
	if err != nil {
		return fmt.Errorf("%w: input %s: %v", types.ErrIO, req.InputPath, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: input %s is a directory", types.ErrIO, req.InputPath)
	}

	info, err = os.Stat(req.OutputDir)
	if err != nil {
		return fmt.Errorf("%w: output directory %s: %v", types.ErrIO, req.OutputDir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: output path %s is not a directory", types.ErrIO, req.OutputDir)
	}
	return nil
}

// baseName returns the input's file name without its extension.
func baseName(path string) string {
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}

// outputPath joins the output directory with base and suffix.
func outputPath(req Request, suffix string) string {
	return filepath.Join(req.OutputDir, baseName(req.InputPath)+suffix)
}

// writeOutput creates path, overwriting any existing file, and lets fn
// stream into it. fn's error is returned as-is; file errors wrap ErrIO.
func writeOutput(path string, fn func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: creating %s: %v", types.ErrIO, path, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if err := fn(bw); err != nil {
		return err
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("%w: writing %s: %v", types.ErrIO, path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("%w: closing %s: %v", types.ErrIO, path, err)
	}
	return nil
}

// readInput reads the whole input file.
func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrIO, path, err)
	}
	return data, nil
}

// percentOf returns round(done/total*100).
func percentOf(done, total int) int {
	if total <= 0 {
		return 100
	}
	return int(math.Round(float64(done) / float64(total) * 100))
}

func report(progress ProgressFunc, percent int) {
	if progress != nil {
		progress(percent)
	}
}

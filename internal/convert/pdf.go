// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/gen2brain/go-fitz"

	"github.com/pdiddy/formatforge/internal/archive"
	"github.com/pdiddy/formatforge/pkg/types"
)

// renderDPI is the fixed resolution for rasterized PDF pages.
const renderDPI = 300

func openPDF(path string) (*fitz.Document, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening PDF %s: %v", types.ErrDecode, path, err)
	}
	return doc, nil
}

// PDFText extracts page text in page order into <base>.txt. It reports
// round(done/total*100) after every page.
func (c *Converter) PDFText(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if req.Target != "txt" {
		return Result{}, invalidPair(types.SourcePDF, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	doc, err := openPDF(req.InputPath)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	total := doc.NumPage()
	var b strings.Builder
	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		text, err := doc.Text(i)
		if err != nil {
			return Result{}, fmt.Errorf("%w: extracting text from page %d: %v", types.ErrDecode, i+1, err)
		}
		b.WriteString(text)
		report(progress, percentOf(i+1, total))
	}

	out := outputPath(req, ".txt")
	if err := writeOutput(out, func(w io.Writer) error {
		_, err := io.WriteString(w, b.String())
		return err
	}); err != nil {
		return Result{}, err
	}

	c.logger.Debug("extracted PDF text", "input", req.InputPath, "pages", total)
	return Result{Outputs: []string{out}, Message: "PDF text successfully extracted!"}, nil
}

// PDFImages rasterizes every page at 300 DPI. A single page is written as
// <base>.<ext>; several pages go into <base>_images.zip as
// <base>_page_<n>.<ext>, encoded straight into the archive one at a time.
func (c *Converter) PDFImages(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	switch req.Target {
	case "png", "jpg", "jpeg":
	default:
		return Result{}, invalidPair(types.SourcePDF, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	doc, err := openPDF(req.InputPath)
	if err != nil {
		return Result{}, err
	}
	defer doc.Close()

	total := doc.NumPage()
	if total == 0 {
		return Result{}, fmt.Errorf("%w: %s has no pages", types.ErrDecode, req.InputPath)
	}

	ext := string(req.Target)
	if total == 1 {
		img, err := doc.ImageDPI(0, renderDPI)
		if err != nil {
			return Result{}, fmt.Errorf("%w: rendering page 1: %v", types.ErrDecode, err)
		}
		out := outputPath(req, "."+ext)
		if err := writeOutput(out, func(w io.Writer) error {
			return encodeImage(w, img, req.Target, c.jpegQuality)
		}); err != nil {
			return Result{}, err
		}
		report(progress, 100)
		return Result{Outputs: []string{out}, Message: "PDF successfully converted to image!"}, nil
	}

	base := baseName(req.InputPath)
	aw, err := archive.Create(outputPath(req, "_images.zip"))
	if err != nil {
		return Result{}, err
	}
	defer aw.Close()

	for i := 0; i < total; i++ {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		img, err := doc.ImageDPI(i, renderDPI)
		if err != nil {
			return Result{}, fmt.Errorf("%w: rendering page %d: %v", types.ErrDecode, i+1, err)
		}
		name := fmt.Sprintf("%s_page_%d.%s", base, i+1, ext)
		if err := aw.AddFunc(name, func(w io.Writer) error {
			return encodeImage(w, img, req.Target, c.jpegQuality)
		}); err != nil {
			return Result{}, err
		}
		report(progress, percentOf(i+1, total))
	}

	if err := aw.Close(); err != nil {
		return Result{}, err
	}

	c.logger.Debug("rendered PDF pages", "input", req.InputPath, "pages", total, "archive", aw.Path())
	return Result{Outputs: []string{aw.Path()}, Message: "PDF successfully converted to images!"}, nil
}

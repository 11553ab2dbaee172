// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"bytes"
	"context"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pdiddy/formatforge/pkg/types"
)

var markdown = goldmark.New(goldmark.WithExtensions(extension.GFM))

// MarkdownToHTML renders Markdown to an HTML fragment in <base>.html.
func (c *Converter) MarkdownToHTML(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if req.Source != types.SourceMD || req.Target != "html" {
		return Result{}, invalidPair(req.Source, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	src, err := readInput(req.InputPath)
	if err != nil {
		return Result{}, err
	}
	body, err := renderMarkdown(src)
	if err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := outputPath(req, ".html")
	if err := writeOutput(out, func(w io.Writer) error {
		_, err := w.Write(body)
		return err
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	return Result{Outputs: []string{out}, Message: "Markdown successfully rendered to HTML!"}, nil
}

// MarkupToPDF renders Markdown (through HTML) or HTML to <base>.pdf with the
// configured renderer. Renderer failures wrap types.ErrRender and keep the
// renderer's message. Nothing is written unless rendering succeeds.
func (c *Converter) MarkupToPDF(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if req.Target != "pdf" || (req.Source != types.SourceMD && req.Source != types.SourceHTML) {
		return Result{}, invalidPair(req.Source, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}
	if c.renderer == nil {
		return Result{}, fmt.Errorf("%w: no PDF renderer configured", types.ErrRender)
	}

	src, err := readInput(req.InputPath)
	if err != nil {
		return Result{}, err
	}

	page := string(src)
	if req.Source == types.SourceMD {
		body, err := renderMarkdown(src)
		if err != nil {
			return Result{}, err
		}
		page = wrapDocument(baseName(req.InputPath), body)
	}

	var pdf bytes.Buffer
	if err := c.renderer.RenderPDF(ctx, page, &pdf); err != nil {
		return Result{}, fmt.Errorf("%w: %v", types.ErrRender, err)
	}

	out := outputPath(req, ".pdf")
	if err := writeOutput(out, func(w io.Writer) error {
		_, err := pdf.WriteTo(w)
		return err
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	c.logger.Debug("rendered PDF", "input", req.InputPath, "bytes", pdf.Len())
	return Result{Outputs: []string{out}, Message: "PDF successfully created!"}, nil
}

func renderMarkdown(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(src, &buf); err != nil {
		return nil, fmt.Errorf("%w: markdown: %v", types.ErrRender, err)
	}
	return buf.Bytes(), nil
}

// wrapDocument turns an HTML fragment into a standalone UTF-8 page.
func wrapDocument(title string, body []byte) string {
	var b bytes.Buffer
	b.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", html.EscapeString(title))
	b.WriteString("</head>\n<body>\n")
	b.Write(body)
	b.WriteString("</body>\n</html>\n")
	return b.String()
}

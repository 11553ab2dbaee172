// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"baliance.com/gooxml/document"

	"github.com/pdiddy/formatforge/pkg/types"
)

// DOCXText writes the document's paragraph text, newline-separated, to
// <base>.<ext>. Line breaks inside a paragraph become newlines and tabs stay
// tabs. Markdown output is the same raw text.
func (c *Converter) DOCXText(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if req.Target != "txt" && req.Target != "md" {
		return Result{}, invalidPair(types.SourceDOCX, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	doc, err := document.Open(req.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: opening DOCX %s: %v", types.ErrDecode, req.InputPath, err)
	}

	paras := doc.Paragraphs()
	lines := make([]string, 0, len(paras))
	for _, p := range paras {
		var b strings.Builder
		for _, r := range p.Runs() {
			writeRunText(&b, r)
		}
		lines = append(lines, b.String())
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	out := outputPath(req, "."+string(req.Target))
	if err := writeOutput(out, func(w io.Writer) error {
		_, err := io.WriteString(w, strings.Join(lines, "\n"))
		return err
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	c.logger.Debug("extracted DOCX text", "input", req.InputPath, "paragraphs", len(lines))
	return Result{Outputs: []string{out}, Message: "Document text successfully extracted!"}, nil
}

// writeRunText appends a run's text, mapping breaks to '\n' and tabs to '\t'.
func writeRunText(b *strings.Builder, r document.Run) {
	for _, ic := range r.X().EG_RunInnerContent {
		switch {
		case ic.T != nil:
			b.WriteString(ic.T.Content)
		case ic.Br != nil, ic.Cr != nil:
			b.WriteByte('\n')
		case ic.Tab != nil:
			b.WriteByte('\t')
		}
	}
}

// TextToDOCX wraps the whole UTF-8 input in a single paragraph of a new
// document saved as <base>.docx. Newlines become line breaks and tabs
// become tab characters so the text keeps its layout.
func (c *Converter) TextToDOCX(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if req.Target != "docx" {
		return Result{}, invalidPair(req.Source, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	data, err := readInput(req.InputPath)
	if err != nil {
		return Result{}, err
	}
	if !utf8.Valid(data) {
		return Result{}, fmt.Errorf("%w: %s is not valid UTF-8", types.ErrDecode, req.InputPath)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	doc := document.New()
	addText(doc.AddParagraph().AddRun(), string(data))

	out := outputPath(req, ".docx")
	if err := writeOutput(out, func(w io.Writer) error {
		if err := doc.Save(w); err != nil {
			return fmt.Errorf("%w: saving DOCX: %v", types.ErrIO, err)
		}
		return nil
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	return Result{Outputs: []string{out}, Message: "Document successfully created!"}, nil
}

// addText fills run with text, emitting a break per newline and a tab per
// tab character. CRLF line endings are read as newlines.
func addText(run document.Run, text string) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if i > 0 {
			run.AddBreak()
		}
		for j, part := range strings.Split(line, "\t") {
			if j > 0 {
				run.AddTab()
			}
			if part != "" {
				run.AddText(part)
			}
		}
	}
}

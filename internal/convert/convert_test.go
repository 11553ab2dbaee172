// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formatforge/internal/compat"
	"github.com/pdiddy/formatforge/pkg/types"
)

func TestResolve_EveryMatrixPairHasPipeline(t *testing.T) {
	c := New(Options{})
	for _, st := range types.SourceTypes {
		targets, err := compat.TargetsFor(st)
		require.NoError(t, err)
		for _, target := range targets {
			p, err := c.Resolve(st, target)
			assert.NoError(t, err, "%s -> %s", st, target)
			assert.NotNil(t, p, "%s -> %s", st, target)
		}
	}
}

func TestResolve_RejectsPairsOutsideMatrix(t *testing.T) {
	c := New(Options{})
	tests := []struct {
		source types.SourceType
		target types.TargetFormat
	}{
		{types.SourcePDF, "docx"},
		{types.SourceImage, "pdf"},
		{types.SourceCode, "html"},
		{types.SourceTXT, "pdf"},
		{types.SourceDOCX, "docx"},
		{"video", "mp4"},
	}
	for _, tt := range tests {
		_, err := c.Resolve(tt.source, tt.target)
		assert.ErrorIs(t, err, types.ErrInvalidPair, "%s -> %s", tt.source, tt.target)
	}
}

func TestPipelines_FailFastOnInvalidTarget(t *testing.T) {
	c := New(Options{})
	in := writeInput(t, "a.txt", []byte("x"))
	out := t.TempDir()

	pipelines := map[string]Pipeline{
		"PDFText":        c.PDFText,
		"PDFImages":      c.PDFImages,
		"ImageConvert":   c.ImageConvert,
		"DOCXText":       c.DOCXText,
		"TextToDOCX":     c.TextToDOCX,
		"MarkdownToHTML": c.MarkdownToHTML,
		"MarkupToPDF":    c.MarkupToPDF,
		"Passthrough":    c.Passthrough,
	}
	for name, p := range pipelines {
		t.Run(name, func(t *testing.T) {
			_, err := p(context.Background(), request(in, out, types.SourceTXT, "tiff"), nil)
			assert.ErrorIs(t, err, types.ErrInvalidPair)
		})
	}

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Empty(t, entries, "no output may be written for an invalid pair")
}

func TestPrepare(t *testing.T) {
	in := writeInput(t, "a.txt", []byte("x"))
	dir := t.TempDir()

	tests := []struct {
		name string
		req  Request
	}{
		{"missing input", request(filepath.Join(dir, "nope.txt"), dir, types.SourceTXT, "md")},
		{"input is a directory", request(dir, dir, types.SourceTXT, "md")},
		{"missing output directory", request(in, filepath.Join(dir, "missing", "nested"), types.SourceTXT, "md")},
		{"output is a file", request(in, in, types.SourceTXT, "md")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := prepare(tt.req)
			assert.ErrorIs(t, err, types.ErrIO)
		})
	}

	_, err := os.Stat(filepath.Join(dir, "missing"))
	assert.True(t, os.IsNotExist(err), "output directory must not be created")
}

func TestPercentOf(t *testing.T) {
	assert.Equal(t, 33, percentOf(1, 3))
	assert.Equal(t, 67, percentOf(2, 3))
	assert.Equal(t, 100, percentOf(3, 3))
	assert.Equal(t, 100, percentOf(0, 0))
}

func TestBaseName(t *testing.T) {
	assert.Equal(t, "report.final", baseName("/tmp/report.final.pdf"))
	assert.Equal(t, "Makefile", baseName("Makefile"))
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formatforge/pkg/types"
)

func TestPDFText(t *testing.T) {
	in := writeInput(t, "paper.pdf", buildPDF(t, 3))
	out := t.TempDir()
	var progress progressLog

	res, err := New(Options{}).PDFText(context.Background(), request(in, out, types.SourcePDF, "txt"), progress.record)
	require.NoError(t, err)

	assert.Equal(t, []int{33, 67, 100}, progress.values)
	require.Equal(t, []string{filepath.Join(out, "paper.txt")}, res.Outputs)

	data, err := os.ReadFile(res.Outputs[0])
	require.NoError(t, err)
	text := string(data)
	p1 := strings.Index(text, "Page 1")
	p2 := strings.Index(text, "Page 2")
	p3 := strings.Index(text, "Page 3")
	require.True(t, p1 >= 0 && p2 >= 0 && p3 >= 0, "text %q should contain every page", text)
	assert.True(t, p1 < p2 && p2 < p3, "pages must appear in order")
}

func TestPDFText_SinglePage(t *testing.T) {
	in := writeInput(t, "one.pdf", buildPDF(t, 1))
	var progress progressLog

	_, err := New(Options{}).PDFText(context.Background(), request(in, t.TempDir(), types.SourcePDF, "txt"), progress.record)
	require.NoError(t, err)
	assert.Equal(t, []int{100}, progress.values)
}

func TestPDFText_Malformed(t *testing.T) {
	in := writeInput(t, "broken.pdf", []byte("this is not a pdf at all"))

	_, err := New(Options{}).PDFText(context.Background(), request(in, t.TempDir(), types.SourcePDF, "txt"), nil)
	assert.ErrorIs(t, err, types.ErrDecode)
}

func TestPDFImages_SinglePage(t *testing.T) {
	in := writeInput(t, "flyer.pdf", buildPDF(t, 1))
	out := t.TempDir()
	var progress progressLog

	res, err := New(Options{}).PDFImages(context.Background(), request(in, out, types.SourcePDF, "png"), progress.record)
	require.NoError(t, err)

	assert.Equal(t, []int{100}, progress.values)
	require.Equal(t, []string{filepath.Join(out, "flyer.png")}, res.Outputs)
	_, err = os.Stat(filepath.Join(out, "flyer_images.zip"))
	assert.True(t, os.IsNotExist(err), "single page must not be archived")

	f, err := os.Open(res.Outputs[0])
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.InDelta(t, 300, cfg.Width, 2, "one inch at 300 DPI")
}

func TestPDFImages_MultiPage(t *testing.T) {
	in := writeInput(t, "deck.pdf", buildPDF(t, 3))
	out := t.TempDir()
	var progress progressLog

	res, err := New(Options{}).PDFImages(context.Background(), request(in, out, types.SourcePDF, "png"), progress.record)
	require.NoError(t, err)

	assert.Equal(t, []int{33, 67, 100}, progress.values)
	require.Equal(t, []string{filepath.Join(out, "deck_images.zip")}, res.Outputs)

	r, err := zip.OpenReader(res.Outputs[0])
	require.NoError(t, err)
	defer r.Close()

	var names []string
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"deck_page_1.png", "deck_page_2.png", "deck_page_3.png"}, names)

	rc, err := r.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	_, err = png.DecodeConfig(rc)
	assert.NoError(t, err, "archive entries must be valid PNGs")
}

func TestPDFImages_JPEGEntryNames(t *testing.T) {
	in := writeInput(t, "deck.pdf", buildPDF(t, 2))
	out := t.TempDir()

	res, err := New(Options{}).PDFImages(context.Background(), request(in, out, types.SourcePDF, "jpeg"), nil)
	require.NoError(t, err)

	r, err := zip.OpenReader(res.Outputs[0])
	require.NoError(t, err)
	defer r.Close()
	require.Len(t, r.File, 2)
	assert.Equal(t, "deck_page_2.jpeg", r.File[1].Name)
}

func TestPDFImages_Cancelled(t *testing.T) {
	in := writeInput(t, "deck.pdf", buildPDF(t, 3))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(Options{}).PDFImages(ctx, request(in, t.TempDir(), types.SourcePDF, "png"), nil)
	assert.ErrorIs(t, err, context.Canceled)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package detect

import (
	"bytes"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formatforge/pkg/types"
)

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func TestDetect(t *testing.T) {
	pdfHeader := []byte("%PDF-1.4\n%\xe2\xe3\xcf\xd3\n1 0 obj\n<<>>\nendobj\n")

	tests := []struct {
		name    string
		file    string
		data    []byte
		want    types.SourceType
		byMagic bool
	}{
		{name: "pdf by signature", file: "report.bin", data: pdfHeader, want: types.SourcePDF, byMagic: true},
		{name: "png by signature despite txt extension", file: "notes.txt", data: nil, want: types.SourceImage, byMagic: true},
		{name: "jpg with corrupted magic falls back to extension", file: "photo.jpg", data: []byte("not really a jpeg"), want: types.SourceImage},
		{name: "pdf extension without signature", file: "broken.pdf", data: []byte("garbage"), want: types.SourcePDF},
		{name: "docx extension", file: "letter.docx", data: []byte("plain bytes"), want: types.SourceDOCX},
		{name: "markdown", file: "README.md", data: []byte("# Title\n"), want: types.SourceMD},
		{name: "html wins over code set", file: "index.html", data: []byte("<html></html>"), want: types.SourceHTML},
		{name: "htm", file: "page.HTM", data: []byte("<p>x</p>"), want: types.SourceHTML},
		{name: "plain text", file: "a.txt", data: []byte("hello"), want: types.SourceTXT},
		{name: "python is code", file: "main.py", data: []byte("print(1)\n"), want: types.SourceCode},
		{name: "json is code", file: "data.json", data: []byte(`{"a":1}`), want: types.SourceCode},
		{name: "empty file uses extension", file: "empty.css", data: []byte{}, want: types.SourceCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := tt.data
			if data == nil {
				data = pngBytes(t)
			}
			path := writeFile(t, t.TempDir(), tt.file, data)

			got, err := Detect(path)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			res, err := Inspect(path)
			require.NoError(t, err)
			assert.Equal(t, tt.byMagic, res.ByMagic)
		})
	}
}

func TestDetect_Unknown(t *testing.T) {
	path := writeFile(t, t.TempDir(), "archive.xyz", []byte("opaque"))

	_, err := Detect(path)
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrDetection)
}

func TestDetect_MissingFile(t *testing.T) {
	_, err := Detect(filepath.Join(t.TempDir(), "nope.pdf"))
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrIO)
	assert.NotErrorIs(t, err, types.ErrDetection)
}

func TestInspect_ReportsMIME(t *testing.T) {
	path := writeFile(t, t.TempDir(), "pic", pngBytes(t))

	res, err := Inspect(path)
	require.NoError(t, err)
	assert.Equal(t, "image/png", res.MIME)
	assert.Equal(t, types.SourceImage, res.Type)
}

func TestFromExtension(t *testing.T) {
	st, ok := FromExtension("/tmp/x.CPP")
	assert.True(t, ok)
	assert.Equal(t, types.SourceCode, st)

	_, ok = FromExtension("/tmp/Makefile")
	assert.False(t, ok)
}

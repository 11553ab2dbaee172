// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package detect resolves an input file to a SourceType. Magic-number
// sniffing runs first; the file extension is the fallback.
package detect

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"

	"github.com/pdiddy/formatforge/pkg/types"
)

// headerSize is the prefix filetype needs to match every known signature.
const headerSize = 261

// Result is the outcome of inspecting a file.
type Result struct {
	// Type is the resolved source type.
	Type types.SourceType

	// MIME is the sniffed MIME type, empty when sniffing matched nothing.
	MIME string

	// ByMagic reports whether Type came from the byte signature rather than
	// the extension.
	ByMagic bool
}

// extensionTypes is checked before the code set so .html resolves to HTML.
var extensionTypes = map[string]types.SourceType{
	".pdf":  types.SourcePDF,
	".png":  types.SourceImage,
	".jpg":  types.SourceImage,
	".jpeg": types.SourceImage,
	".webp": types.SourceImage,
	".bmp":  types.SourceImage,
	".gif":  types.SourceImage,
	".docx": types.SourceDOCX,
	".md":   types.SourceMD,
	".htm":  types.SourceHTML,
	".html": types.SourceHTML,
	".txt":  types.SourceTXT,
}

// Detect returns the SourceType of the file at path. It wraps
// types.ErrDetection when neither the signature nor the extension resolves.
func Detect(path string) (types.SourceType, error) {
	res, err := Inspect(path)
	if err != nil {
		return "", err
	}
	return res.Type, nil
}

// Inspect sniffs the file at path and reports how its type was resolved.
// A missing or unreadable file is an I/O failure, not a detection failure.
func Inspect(path string) (Result, error) {
	head, err := readHeader(path)
	if err != nil {
		return Result{}, err
	}

	var res Result
	if kind, err := filetype.Match(head); err == nil && kind != filetype.Unknown {
		res.MIME = kind.MIME.Value
		switch {
		case kind.MIME.Subtype == "pdf":
			res.Type, res.ByMagic = types.SourcePDF, true
			return res, nil
		case kind.MIME.Type == "image":
			res.Type, res.ByMagic = types.SourceImage, true
			return res, nil
		}
	}

	if st, ok := FromExtension(path); ok {
		res.Type = st
		return res, nil
	}
	return res, fmt.Errorf("%w: %s", types.ErrDetection, filepath.Base(path))
}

// FromExtension maps path's extension to a SourceType using the fixed
// extension table, then the code-extension set.
func FromExtension(path string) (types.SourceType, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	if st, ok := extensionTypes[ext]; ok {
		return st, true
	}
	if ext != "" && types.IsCodeExtension(types.TargetFormat(ext[1:])) {
		return types.SourceCode, true
	}
	return "", false
}

func readHeader(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrIO, path, err)
	}
	defer f.Close()

	head := make([]byte, headerSize)
	n, err := io.ReadFull(f, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: reading %s: %v", types.ErrIO, path, err)
	}
	return head[:n], nil
}

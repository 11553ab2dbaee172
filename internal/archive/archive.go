// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive bundles multi-artifact conversion output into a single
// compressed zip file. Entries are streamed one at a time so memory use is
// bounded by whatever the caller holds for the current entry.
package archive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/klauspost/compress/zip"

	"github.com/pdiddy/formatforge/pkg/types"
)

// Writer appends named entries, in order, to a zip archive on disk.
type Writer struct {
	path  string
	file  *os.File
	buf   *bufio.Writer
	zw    *zip.Writer
	names []string
}

// Create opens dest for writing, truncating any existing file.
func Create(dest string) (*Writer, error) {
	f, err := os.Create(dest)
	if err != nil {
		return nil, fmt.Errorf("%w: creating archive %s: %v", types.ErrIO, dest, err)
	}
	buf := bufio.NewWriter(f)
	return &Writer{
		path: dest,
		file: f,
		buf:  buf,
		zw:   zip.NewWriter(buf),
	}, nil
}

// AddFunc creates an entry called name and lets fn stream its bytes.
func (w *Writer) AddFunc(name string, fn func(io.Writer) error) error {
	hdr := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: time.Now(),
	}
	ew, err := w.zw.CreateHeader(hdr)
	if err != nil {
		return fmt.Errorf("%w: adding %s to %s: %v", types.ErrIO, name, w.path, err)
	}
	if err := fn(ew); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	w.names = append(w.names, name)
	return nil
}

// Add stores data as an entry called name.
func (w *Writer) Add(name string, data []byte) error {
	return w.AddFunc(name, func(ew io.Writer) error {
		_, err := ew.Write(data)
		return err
	})
}

// Names returns the entry names written so far, in order.
func (w *Writer) Names() []string {
	return append([]string(nil), w.names...)
}

// Path returns the archive's destination path.
func (w *Writer) Path() string { return w.path }

// Close finalizes the central directory and releases the file. It is safe
// to call on every exit path; the first error wins.
func (w *Writer) Close() error {
	if w.file == nil {
		return nil
	}
	zerr := w.zw.Close()
	ferr := w.buf.Flush()
	cerr := w.file.Close()
	w.file = nil

	for _, err := range []error{zerr, ferr, cerr} {
		if err != nil {
			return fmt.Errorf("%w: closing archive %s: %v", types.ErrIO, w.path, err)
		}
	}
	return nil
}

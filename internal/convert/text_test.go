// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formatforge/pkg/types"
)

func TestPassthrough_RoundTrip(t *testing.T) {
	const content = "Plain ASCII notes.\nLine two\ttabbed.\n\nTrailing line without newline"
	in := writeInput(t, "notes.txt", []byte(content))
	c := New(Options{})

	mdDir := t.TempDir()
	res, err := c.Passthrough(context.Background(), request(in, mdDir, types.SourceTXT, "md"), nil)
	require.NoError(t, err)
	require.Equal(t, []string{filepath.Join(mdDir, "notes.md")}, res.Outputs)

	txtDir := t.TempDir()
	res, err = c.Passthrough(context.Background(), request(res.Outputs[0], txtDir, types.SourceMD, "txt"), nil)
	require.NoError(t, err)

	got, err := os.ReadFile(res.Outputs[0])
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
}

func TestPassthrough_CodeTargets(t *testing.T) {
	in := writeInput(t, "snippet.txt", []byte("print('hi')\n"))
	out := t.TempDir()
	var progress progressLog

	res, err := New(Options{}).Passthrough(context.Background(), request(in, out, types.SourceTXT, "py"), progress.record)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(out, "snippet.py"), res.Outputs[0])
	assert.Equal(t, []int{100}, progress.values)
}

func TestPassthrough_RefusesToOverwriteInput(t *testing.T) {
	in := writeInput(t, "script.js", []byte("let x = 1\n"))

	_, err := New(Options{}).Passthrough(context.Background(), request(in, filepath.Dir(in), types.SourceCode, "js"), nil)
	assert.ErrorIs(t, err, types.ErrIO)
}

func TestPassthrough_OverwritesExistingOutput(t *testing.T) {
	in := writeInput(t, "a.txt", []byte("new"))
	out := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(out, "a.md"), []byte("old content"), 0o644))

	_, err := New(Options{}).Passthrough(context.Background(), request(in, out, types.SourceTXT, "md"), nil)
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(out, "a.md"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
}

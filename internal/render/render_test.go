// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/formatforge/pkg/types"
)

// fakeRuntime implements container.Runtime without a container engine.
type fakeRuntime struct {
	images  map[string]bool
	runErr  error
	gotArgs []string
	gotHTML string
}

func (f *fakeRuntime) Name() string    { return "docker" }
func (f *fakeRuntime) Available() bool { return true }

func (f *fakeRuntime) ImageExists(image string) error {
	if f.images[image] {
		return nil
	}
	return errors.New("no such image: " + image)
}

func (f *fakeRuntime) Run(_ context.Context, _ string, args []string, stdin io.Reader, stdout io.Writer) error {
	f.gotArgs = args
	data, _ := io.ReadAll(stdin)
	f.gotHTML = string(data)
	if f.runErr != nil {
		return f.runErr
	}
	_, err := stdout.Write([]byte("%PDF-1.7 fake"))
	return err
}

func TestNewContainer_RequiresImage(t *testing.T) {
	_, err := NewContainer(&fakeRuntime{}, "", 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), DefaultContainerImage)
}

func TestContainer_RenderPDF(t *testing.T) {
	rt := &fakeRuntime{images: map[string]bool{DefaultContainerImage: true}}
	r, err := NewContainer(rt, "", 0)
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, r.RenderPDF(context.Background(), "<h1>Hi</h1>", &out))
	assert.Equal(t, "%PDF-1.7 fake", out.String())
	assert.Equal(t, "<h1>Hi</h1>", rt.gotHTML)
	assert.Equal(t, []string{"-q", "--encoding", "utf-8", "-", "-"}, rt.gotArgs)
}

func TestContainer_RenderPDFFailure(t *testing.T) {
	rt := &fakeRuntime{
		images: map[string]bool{"custom:1": true},
		runErr: errors.New("exit status 1: Failed loading page"),
	}
	r, err := NewContainer(rt, "custom:1", 0)
	require.NoError(t, err)

	err = r.RenderPDF(context.Background(), "<p/>", io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Failed loading page")
}

func TestNew(t *testing.T) {
	r, err := New(types.RenderConfig{})
	require.NoError(t, err)
	assert.IsType(t, &Chrome{}, r)

	_, err = New(types.RenderConfig{Backend: "prince"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown render backend")
}

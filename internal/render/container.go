// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/pdiddy/formatforge/internal/container"
)

// Container renders by piping HTML through a wkhtmltopdf tool container.
type Container struct {
	runtime container.Runtime
	image   string
	timeout time.Duration
}

// NewContainer verifies that image exists in rt before returning. An empty
// image selects DefaultContainerImage.
func NewContainer(rt container.Runtime, image string, timeout time.Duration) (*Container, error) {
	if image == "" {
		image = DefaultContainerImage
	}
	if err := rt.ImageExists(image); err != nil {
		return nil, fmt.Errorf("renderer image not available in %s: %w", rt.Name(), err)
	}
	return &Container{runtime: rt, image: image, timeout: timeout}, nil
}

// RenderPDF runs the container with HTML on stdin and copies the PDF from
// its stdout to w.
func (c *Container) RenderPDF(ctx context.Context, html string, w io.Writer) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	args := []string{"-q", "--encoding", "utf-8", "-", "-"}
	if err := c.runtime.Run(ctx, c.image, args, strings.NewReader(html), w); err != nil {
		return fmt.Errorf("wkhtmltopdf: %w", err)
	}
	return nil
}

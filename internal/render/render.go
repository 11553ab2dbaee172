// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render turns an HTML document into PDF bytes. Two backends exist:
// headless Chrome driven through the DevTools protocol, and a wkhtmltopdf
// tool container run through docker or podman.
package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/formatforge/internal/container"
	"github.com/pdiddy/formatforge/pkg/types"
)

const (
	defaultTimeout = 60 * time.Second

	// DefaultContainerImage reads HTML on stdin and writes PDF to stdout
	// when run with "-q - -".
	DefaultContainerImage = "surnet/alpine-wkhtmltopdf:3.20.2-0.12.6-small"
)

// Renderer renders a complete HTML document to PDF, writing the PDF to w.
type Renderer interface {
	RenderPDF(ctx context.Context, html string, w io.Writer) error
}

// New builds the renderer selected by cfg.Backend. The container backend
// requires a working docker or podman and the configured image.
func New(cfg types.RenderConfig) (Renderer, error) {
	switch cfg.Backend {
	case "", types.RenderChrome:
		return NewChrome(cfg), nil
	case types.RenderContainer:
		rt, err := container.DetectRuntime()
		if err != nil {
			return nil, err
		}
		return NewContainer(rt, cfg.ContainerImage, cfg.Timeout)
	default:
		return nil, fmt.Errorf("unknown render backend %q (want %s or %s)",
			cfg.Backend, types.RenderChrome, types.RenderContainer)
	}
}

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		d = defaultTimeout
	}
	return context.WithTimeout(ctx, d)
}

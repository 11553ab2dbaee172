// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"

	"github.com/pdiddy/formatforge/pkg/types"
)

// Chrome renders through a headless Chrome launched per call. A fresh
// browser per job keeps no state between conversions.
type Chrome struct {
	bin     string
	timeout time.Duration
}

// NewChrome creates a Chrome renderer. An empty cfg.BrowserBin lets the
// launcher locate, or download, a browser.
func NewChrome(cfg types.RenderConfig) *Chrome {
	return &Chrome{bin: cfg.BrowserBin, timeout: cfg.Timeout}
}

// RenderPDF loads html into a blank page and prints it to PDF.
func (c *Chrome) RenderPDF(ctx context.Context, html string, w io.Writer) error {
	ctx, cancel := withTimeout(ctx, c.timeout)
	defer cancel()

	l := launcher.New().Context(ctx).Headless(true)
	if c.bin != "" {
		l = l.Bin(c.bin)
	}

	u, err := l.Launch()
	if err != nil {
		return fmt.Errorf("launching browser: %w", err)
	}
	defer func() {
		l.Kill()
		l.Cleanup()
	}()

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		return fmt.Errorf("connecting to browser: %w", err)
	}
	defer browser.Close()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return fmt.Errorf("opening page: %w", err)
	}
	if err := page.SetDocumentContent(html); err != nil {
		return fmt.Errorf("loading HTML: %w", err)
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("waiting for page load: %w", err)
	}

	r, err := page.PDF(&proto.PagePrintToPDF{PrintBackground: true})
	if err != nil {
		return fmt.Errorf("printing to PDF: %w", err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return fmt.Errorf("reading PDF stream: %w", err)
	}
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/pdiddy/formatforge/internal/convert"
	"github.com/pdiddy/formatforge/internal/dispatch"
	"github.com/pdiddy/formatforge/internal/history"
	"github.com/pdiddy/formatforge/internal/render"
	"github.com/pdiddy/formatforge/pkg/types"
)

// engine bundles the dispatcher and the ledger it records into.
type engine struct {
	dispatcher *dispatch.Dispatcher
	history    *history.Store
}

// newEngine wires the renderer, converter, ledger, and dispatcher for cfg.
// A renderer that cannot be built is logged and left nil; only PDF targets
// from markup need it, and those fail with a render error.
func newEngine(cfg types.Config) (*engine, error) {
	renderer, err := render.New(cfg.Render)
	if err != nil {
		logger.Warn("renderer unavailable", "backend", cfg.Render.Backend, "err", err)
	}

	conv := convert.New(convert.Options{
		Renderer:    renderer,
		JPEGQuality: cfg.Conversion.JPEGQuality,
		Logger:      logger,
	})

	store, err := openHistory(cfg.History)
	if err != nil {
		return nil, err
	}

	opts := dispatch.Options{Logger: logger}
	if store != nil {
		opts.Recorder = store
	}
	return &engine{
		dispatcher: dispatch.New(conv, opts),
		history:    store,
	}, nil
}

func (e *engine) Close() error {
	if e.history == nil {
		return nil
	}
	return e.history.Close()
}

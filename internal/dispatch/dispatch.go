// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dispatch runs one conversion job at a time on a background
// goroutine and relays its progress and terminal outcome over a channel.
//
// A job moves Idle -> Running -> Succeeded | Failed. Pairs missing from the
// compatibility matrix fail before Running and never reach a pipeline.
// Nothing is retried; callers resubmit.
package dispatch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/formatforge/internal/compat"
	"github.com/pdiddy/formatforge/internal/convert"
	"github.com/pdiddy/formatforge/pkg/types"
)

// outcomeBuffer lets a pipeline run ahead of a slow consumer for a while.
const outcomeBuffer = 16

// State is the dispatcher's lifecycle state for its most recent job.
type State string

const (
	StateIdle      State = "idle"
	StateRunning   State = "running"
	StateSucceeded State = "succeeded"
	StateFailed    State = "failed"
)

// Resolver maps a (source, target) pair to its pipeline.
type Resolver interface {
	Resolve(source types.SourceType, target types.TargetFormat) (convert.Pipeline, error)
}

// Recorder persists terminal job records. Recording errors are logged and
// never change a job's outcome.
type Recorder interface {
	Record(ctx context.Context, rec types.Record) error
}

// Options configures a Dispatcher.
type Options struct {
	Recorder Recorder
	Logger   *slog.Logger
}

// Dispatcher executes submitted jobs one at a time.
type Dispatcher struct {
	resolver Resolver
	recorder Recorder
	logger   *slog.Logger

	mu    sync.Mutex
	state State
}

// New creates an idle Dispatcher.
func New(resolver Resolver, opts Options) *Dispatcher {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Dispatcher{
		resolver: resolver,
		recorder: opts.Recorder,
		logger:   logger,
		state:    StateIdle,
	}
}

// State returns the state of the most recent job.
func (d *Dispatcher) State() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

// Submit starts job and returns its outcome stream: zero or more progress
// events, then exactly one success or failure, then the channel closes.
// Callers must drain the channel until it is closed.
//
// The dispatcher leaves Running only after the terminal outcome is queued
// and before the channel closes, so a caller that drains the stream can
// submit again as soon as it sees the close.
//
// Cancelling ctx stops the pipeline at its next progress point; the job then
// fails with context.Canceled. Submitting while a job runs yields a single
// failure wrapping types.ErrBusy.
func (d *Dispatcher) Submit(ctx context.Context, job types.ConversionJob) <-chan types.Outcome {
	out := make(chan types.Outcome, outcomeBuffer)
	if job.ID == "" {
		job.ID = uuid.NewString()
	}
	job.Target = types.NormalizeTarget(string(job.Target))
	started := time.Now()

	d.mu.Lock()
	if d.state == StateRunning {
		d.mu.Unlock()
		d.logger.Warn("conversion rejected", "job", job.ID, "reason", types.ErrBusy)
		out <- types.Failure(types.ErrBusy)
		close(out)
		return out
	}

	pipeline, err := d.admit(job)
	if err != nil {
		d.state = StateFailed
		d.mu.Unlock()
		d.logger.Error("conversion rejected", "job", job.ID, "source", job.Source, "target", job.Target, "err", err)
		d.record(context.WithoutCancel(ctx), job, started, types.Failure(err))
		out <- types.Failure(err)
		close(out)
		return out
	}
	d.state = StateRunning
	d.mu.Unlock()

	d.logger.Info("conversion started", "job", job.ID, "input", job.InputPath, "source", job.Source, "target", job.Target)
	go d.run(ctx, job, pipeline, started, out)
	return out
}

// admit validates job against the compatibility matrix and resolves its
// pipeline.
func (d *Dispatcher) admit(job types.ConversionJob) (convert.Pipeline, error) {
	if err := compat.Check(job.Source, job.Target); err != nil {
		return nil, err
	}
	pipeline, err := d.resolver.Resolve(job.Source, job.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", types.ErrUnsupportedPair, err)
	}
	return pipeline, nil
}

func (d *Dispatcher) run(ctx context.Context, job types.ConversionJob, pipeline convert.Pipeline, started time.Time, out chan<- types.Outcome) {
	defer close(out)

	progress := func(percent int) {
		select {
		case out <- types.Progress(percent):
		case <-ctx.Done():
		}
	}

	res, err := invoke(ctx, pipeline, convert.Request{
		InputPath: job.InputPath,
		OutputDir: job.OutputDir,
		Source:    job.Source,
		Target:    job.Target,
	}, progress)

	terminal, final := types.Success(res.Message, res.Outputs), StateSucceeded
	if err != nil {
		terminal, final = types.Failure(err), StateFailed
		d.logger.Error("conversion failed", "job", job.ID, "err", err, "elapsed", time.Since(started))
	} else {
		d.logger.Info("conversion succeeded", "job", job.ID, "outputs", res.Outputs, "elapsed", time.Since(started))
	}

	d.record(context.WithoutCancel(ctx), job, started, terminal)

	// The job stays Running until its terminal outcome is on the stream, so
	// no other submission is admitted ahead of it.
	out <- terminal
	d.setState(final)
}

func (d *Dispatcher) setState(s State) {
	d.mu.Lock()
	d.state = s
	d.mu.Unlock()
}

// invoke runs pipeline, turning a panic into an error.
func invoke(ctx context.Context, pipeline convert.Pipeline, req convert.Request, progress convert.ProgressFunc) (res convert.Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("conversion aborted: %v", r)
		}
	}()
	return pipeline(ctx, req, progress)
}

func (d *Dispatcher) record(ctx context.Context, job types.ConversionJob, started time.Time, terminal types.Outcome) {
	if d.recorder == nil {
		return
	}
	rec := types.Record{
		Job:        job,
		Status:     types.JobSucceeded,
		Message:    terminal.Message,
		Outputs:    terminal.Outputs,
		StartedAt:  started.UTC(),
		FinishedAt: time.Now().UTC(),
	}
	if terminal.Kind == types.OutcomeFailure {
		rec.Status = types.JobFailed
	}
	if err := d.recorder.Record(ctx, rec); err != nil {
		d.logger.Warn("recording job failed", "job", job.ID, "err", err)
	}
}

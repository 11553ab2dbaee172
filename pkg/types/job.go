// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ConversionJob describes one requested conversion. It is immutable once
// submitted to a dispatcher.
type ConversionJob struct {
	// ID identifies the job in logs and the history ledger. The dispatcher
	// assigns one when empty.
	ID string `json:"id" yaml:"id"`

	// InputPath is the file to convert.
	InputPath string `json:"input_path" yaml:"input_path"`

	// OutputDir is an existing, writable directory for produced files.
	OutputDir string `json:"output_dir" yaml:"output_dir"`

	// Source is the detected or manually selected source type.
	Source SourceType `json:"source" yaml:"source"`

	// Target is the requested output format.
	Target TargetFormat `json:"target" yaml:"target"`
}

// OutcomeKind tags a ConversionOutcome variant.
type OutcomeKind string

const (
	OutcomeProgress OutcomeKind = "progress"
	OutcomeSuccess  OutcomeKind = "success"
	OutcomeFailure  OutcomeKind = "failure"
)

// Outcome is one event on a job's outcome stream. A stream carries zero or
// more Progress events followed by exactly one Success or Failure.
type Outcome struct {
	Kind OutcomeKind `json:"kind"`

	// Percent is set for progress events (0-100).
	Percent int `json:"percent,omitempty"`

	// Message is the user-facing summary for terminal events.
	Message string `json:"message,omitempty"`

	// Outputs lists the files produced, set on success.
	Outputs []string `json:"outputs,omitempty"`

	// Err is the originating error of a failure; Message is its text.
	Err error `json:"-"`
}

// Progress returns a progress outcome.
func Progress(percent int) Outcome {
	return Outcome{Kind: OutcomeProgress, Percent: percent}
}

// Success returns a terminal success outcome.
func Success(message string, outputs []string) Outcome {
	return Outcome{Kind: OutcomeSuccess, Message: message, Outputs: outputs}
}

// Failure returns a terminal failure outcome carrying err's message.
func Failure(err error) Outcome {
	return Outcome{Kind: OutcomeFailure, Message: err.Error(), Err: err}
}

// Terminal reports whether o ends its stream.
func (o Outcome) Terminal() bool {
	return o.Kind == OutcomeSuccess || o.Kind == OutcomeFailure
}

// JobStatus is the terminal state recorded for a finished job.
type JobStatus string

const (
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// Record is the ledger entry written once a job reaches a terminal state.
type Record struct {
	Job        ConversionJob `json:"job" yaml:"job"`
	Status     JobStatus     `json:"status" yaml:"status"`
	Message    string        `json:"message" yaml:"message"`
	Outputs    []string      `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	StartedAt  time.Time     `json:"started_at" yaml:"started_at"`
	FinishedAt time.Time     `json:"finished_at" yaml:"finished_at"`
}

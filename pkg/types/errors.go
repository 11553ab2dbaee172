// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "errors"

// Error taxonomy. Pipelines and the dispatcher wrap causes with these so
// callers can branch with errors.Is.
var (
	// ErrDetection means the source type could not be determined. Callers
	// should ask for a manual source type.
	ErrDetection = errors.New("could not determine file type")

	// ErrUnsupportedPair means the (source, target) pair is absent from the
	// compatibility matrix.
	ErrUnsupportedPair = errors.New("unsupported conversion")

	// ErrUnknownSourceType means a source tag is not registered.
	ErrUnknownSourceType = errors.New("unknown source type")

	// ErrInvalidPair means a pipeline was handed a target it does not produce.
	ErrInvalidPair = errors.New("invalid target for pipeline")

	// ErrIO covers unreadable input, unwritable output and disk errors.
	ErrIO = errors.New("i/o failure")

	// ErrDecode covers malformed PDF, image or DOCX content.
	ErrDecode = errors.New("format decode failure")

	// ErrRender covers Markdown and HTML-to-PDF rendering failures.
	ErrRender = errors.New("render failure")

	// ErrBusy means a job is already running on the dispatcher.
	ErrBusy = errors.New("a conversion is already running")
)

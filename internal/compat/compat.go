// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package compat holds the compatibility matrix: the ordered target formats
// each source type may be converted to. The dispatcher and any shell consult
// it before offering or attempting a conversion.
package compat

import (
	"fmt"
	"slices"

	"github.com/pdiddy/formatforge/pkg/types"
)

var matrix = map[types.SourceType][]types.TargetFormat{
	types.SourcePDF:   {"png", "jpg", "jpeg", "txt"},
	types.SourceImage: {"png", "jpg", "jpeg", "webp", "bmp", "gif"},
	types.SourceDOCX:  {"txt", "md"},
	types.SourceTXT:   append([]types.TargetFormat{"docx", "md"}, types.CodeExtensions...),
	types.SourceMD:    {"txt", "docx", "html", "pdf"},
	types.SourceHTML:  {"pdf", "txt", "md"},
	types.SourceCode:  {"txt", "md", "docx"},
}

// TargetsFor returns the target formats for source in presentation order.
// The returned slice is a copy.
func TargetsFor(source types.SourceType) ([]types.TargetFormat, error) {
	targets, ok := matrix[source]
	if !ok {
		return nil, fmt.Errorf("%w: %q", types.ErrUnknownSourceType, source)
	}
	return slices.Clone(targets), nil
}

// Supports reports whether the matrix lists target for source.
func Supports(source types.SourceType, target types.TargetFormat) bool {
	return slices.Contains(matrix[source], target)
}

// Check returns nil when (source, target) is in the matrix and an
// ErrUnsupportedPair error otherwise.
func Check(source types.SourceType, target types.TargetFormat) error {
	if _, ok := matrix[source]; !ok {
		return fmt.Errorf("%w: %w: %q", types.ErrUnsupportedPair, types.ErrUnknownSourceType, source)
	}
	if !Supports(source, target) {
		return fmt.Errorf("%w: %s to %s", types.ErrUnsupportedPair, source, target)
	}
	return nil
}

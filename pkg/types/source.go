// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the formatforge conversion
// core: source and target tags, conversion jobs, the outcome stream, the job
// ledger record, configuration, and the error taxonomy.
package types

import (
	"fmt"
	"strings"
)

// SourceType is the canonical category of an input file. It selects the
// pipeline family used for conversion.
type SourceType string

const (
	SourcePDF   SourceType = "pdf"
	SourceImage SourceType = "image"
	SourceDOCX  SourceType = "docx"
	SourceTXT   SourceType = "txt"
	SourceMD    SourceType = "md"
	SourceHTML  SourceType = "html"
	SourceCode  SourceType = "code"
)

// SourceTypes lists every SourceType in presentation order.
var SourceTypes = []SourceType{
	SourcePDF,
	SourceImage,
	SourceDOCX,
	SourceTXT,
	SourceMD,
	SourceHTML,
	SourceCode,
}

// ParseSourceType maps a user-supplied name (case-insensitive) to a
// SourceType. It returns ErrUnknownSourceType for unregistered names.
func ParseSourceType(s string) (SourceType, error) {
	name := SourceType(strings.ToLower(strings.TrimSpace(s)))
	for _, st := range SourceTypes {
		if st == name {
			return st, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownSourceType, s)
}

// TargetFormat is a lowercase output file extension such as "png" or "docx".
// It is meaningful only together with a SourceType.
type TargetFormat string

// NormalizeTarget lowercases t and strips a leading dot.
func NormalizeTarget(t string) TargetFormat {
	return TargetFormat(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(t)), "."))
}

// CodeExtensions is the fixed set of source-code extensions, in order.
// It doubles as the list of code targets offered for plain text.
var CodeExtensions = []TargetFormat{"py", "js", "c", "cpp", "cs", "java", "json", "css", "html"}

// IsCodeExtension reports whether t is one of CodeExtensions.
func IsCodeExtension(t TargetFormat) bool {
	for _, c := range CodeExtensions {
		if c == t {
			return true
		}
	}
	return false
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/formatforge/pkg/types"
)

// Passthrough copies a text-like source unchanged to <base>.<ext>, for
// pairs such as TXT to md or Code to txt.
func (c *Converter) Passthrough(ctx context.Context, req Request, progress ProgressFunc) (Result, error) {
	if !isTextSource(req.Source) || !isTextTarget(req.Target) {
		return Result{}, invalidPair(req.Source, req.Target)
	}
	if err := prepare(req); err != nil {
		return Result{}, err
	}

	out := outputPath(req, "."+string(req.Target))
	if same, err := samePath(req.InputPath, out); err != nil {
		return Result{}, err
	} else if same {
		return Result{}, fmt.Errorf("%w: output %s would overwrite the input", types.ErrIO, out)
	}

	in, err := os.Open(req.InputPath)
	if err != nil {
		return Result{}, fmt.Errorf("%w: opening %s: %v", types.ErrIO, req.InputPath, err)
	}
	defer in.Close()

	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if err := writeOutput(out, func(w io.Writer) error {
		if _, err := io.Copy(w, in); err != nil {
			return fmt.Errorf("%w: copying %s: %v", types.ErrIO, req.InputPath, err)
		}
		return nil
	}); err != nil {
		return Result{}, err
	}
	report(progress, 100)

	return Result{Outputs: []string{out}, Message: "File successfully converted!"}, nil
}

func isTextSource(s types.SourceType) bool {
	switch s {
	case types.SourceTXT, types.SourceMD, types.SourceHTML, types.SourceCode:
		return true
	}
	return false
}

func isTextTarget(t types.TargetFormat) bool {
	return t == "txt" || t == "md" || types.IsCodeExtension(t)
}

func samePath(a, b string) (bool, error) {
	absA, err := filepath.Abs(a)
	if err != nil {
		return false, fmt.Errorf("%w: resolving %s: %v", types.ErrIO, a, err)
	}
	absB, err := filepath.Abs(b)
	if err != nil {
		return false, fmt.Errorf("%w: resolving %s: %v", types.ErrIO, b, err)
	}
	return absA == absB, nil
}

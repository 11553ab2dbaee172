// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/formatforge/pkg/types"
)

// exportLimit caps an export when opts.MaxResults is unset.
const exportLimit = 100000

func (s *Store) exportRecords(ctx context.Context, opts ListOptions) ([]types.Record, error) {
	if opts.MaxResults <= 0 {
		opts.MaxResults = exportLimit
	}
	return s.List(ctx, opts)
}

// ExportYAML writes matching records to <dir>/export.yaml and returns the
// file path. opts.MaxResults limits the export; zero exports every match.
func (s *Store) ExportYAML(ctx context.Context, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := yaml.Marshal(records)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	path := filepath.Join(s.dir, "export.yaml")
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes matching records to <dir>/export.json and returns the
// file path. opts.MaxResults limits the export; zero exports every match.
func (s *Store) ExportJSON(ctx context.Context, opts ListOptions) (string, error) {
	records, err := s.exportRecords(ctx, opts)
	if err != nil {
		return "", fmt.Errorf("querying for export: %w", err)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	path := filepath.Join(s.dir, "export.json")
	return path, os.WriteFile(path, data, 0o644)
}

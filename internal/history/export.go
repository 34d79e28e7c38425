// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

const exportLimit = 100000

// Export writes every matching record to path, as JSON when path ends in
// .json and as YAML otherwise.
func (s *Store) Export(ctx context.Context, path string, opts QueryOptions) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return s.ExportJSON(ctx, path, opts)
	}
	return s.ExportYAML(ctx, path, opts)
}

// ExportYAML writes matching records to path as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, path string, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	records, err := s.Recent(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := yaml.Marshal(records)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ExportJSON writes matching records to path as a JSON array.
func (s *Store) ExportJSON(ctx context.Context, path string, opts QueryOptions) error {
	opts.MaxResults = exportLimit
	records, err := s.Recent(ctx, opts)
	if err != nil {
		return fmt.Errorf("querying for export: %w", err)
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

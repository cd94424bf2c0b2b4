// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/docsight/pkg/types"
)

// Export formats.
const (
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// ExportYAML writes every stored analysis to w as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	all, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every stored analysis to w as indented JSON.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	all, err := s.exportAll(ctx)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(all); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

// WriteExport writes the library to <dir>/export.<format> and returns the
// file path.
func (s *Store) WriteExport(ctx context.Context, format string) (string, error) {
	var export func(context.Context, io.Writer) error
	switch format {
	case FormatYAML:
		export = s.ExportYAML
	case FormatJSON:
		export = s.ExportJSON
	default:
		return "", fmt.Errorf("unsupported export format %q: use yaml or json", format)
	}

	path := filepath.Join(s.dir, "export."+format)
	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}
	if err := export(ctx, f); err != nil {
		f.Close()
		return "", err
	}
	return path, f.Close()
}

func (s *Store) exportAll(ctx context.Context) ([]types.DocumentAnalysis, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}
	all := make([]types.DocumentAnalysis, 0, len(docs))
	for _, d := range docs {
		a, err := s.Get(ctx, d.ID)
		if err != nil {
			return nil, fmt.Errorf("querying for export: %w", err)
		}
		all = append(all, a)
	}
	return all, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package history

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/canvas-outline/pkg/types"
)

// ExportYAML writes every history entry to w as a YAML list.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	recs, err := s.List(ctx)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return enc.Close()
}

// ExportJSON writes every history entry to w as an indented JSON array.
func (s *Store) ExportJSON(ctx context.Context, w io.Writer) error {
	recs, err := s.List(ctx)
	if err != nil {
		return err
	}
	if recs == nil {
		recs = []types.ConversionRecord{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(recs); err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return nil
}

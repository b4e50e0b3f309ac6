// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/wbclaims/internal/entity"
	"github.com/pdiddy/wbclaims/pkg/types"
)

// ExportYAML writes the simplified form of the cached entities matching opts
// to <dir>/export.yaml and returns the path.
func (s *Store) ExportYAML(ctx context.Context, cfg types.SimplifyConfig, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, cfg, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", errors.Wrap(err, "marshaling YAML")
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the simplified form of the cached entities matching opts
// to <dir>/export.json and returns the path.
func (s *Store) ExportJSON(ctx context.Context, cfg types.SimplifyConfig, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, cfg, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, "export.json")
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", errors.Wrap(err, "marshaling JSON")
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, cfg types.SimplifyConfig, opts QueryOptions) ([]types.SimplifiedEntity, error) {
	ids, err := s.List(ctx, opts)
	if err != nil {
		return nil, errors.Wrap(err, "querying for export")
	}

	entities := make([]types.Entity, 0, len(ids))
	for _, id := range ids {
		e, err := s.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		entities = append(entities, e)
	}

	out, err := entity.SimplifyAll(ctx, entities, cfg, entity.DefaultLimit)
	if err != nil {
		return nil, errors.Wrap(err, "simplifying for export")
	}
	if out == nil {
		out = []types.SimplifiedEntity{}
	}
	return out, nil
}

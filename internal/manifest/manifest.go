// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manifest loads and validates the book manifest, book.yaml, which
// names the book and lists its chapter files in reading order.
package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/manuscript-engine/pkg/types"
)

const manifestFile = "book.yaml"

// Load reads book.yaml from a manuscript directory.
func Load(bookDir string) (*types.Manifest, error) {
	data, err := os.ReadFile(filepath.Join(bookDir, manifestFile))
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}
	var m types.Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}
	if len(m.Chapters) == 0 {
		return nil, fmt.Errorf("manifest lists no chapters")
	}
	return &m, nil
}

// ChapterPaths returns the manifest's chapter files resolved against the
// manuscript directory, in manifest order.
func ChapterPaths(bookDir string, m *types.Manifest) []string {
	paths := make([]string, len(m.Chapters))
	for i, c := range m.Chapters {
		paths[i] = filepath.Join(bookDir, c)
	}
	return paths
}

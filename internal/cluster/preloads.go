// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

const (
	nameCountsFile = "name-counts.yaml"
	namePairsFile  = "name-pairs.yaml"
)

// Preloads are precomputed side tables shared across canopies: a
// name-frequency prior and a name-equivalence set. Either may be absent;
// absent tables mean "no prior", never an error (R2.3).
type Preloads struct {
	NameCounts map[string]int
	NamePairs  map[string][]string
}

// LoadPreloads reads the side tables enabled by cfg from cfg.PreloadsDir.
// A missing or unparseable file yields a nil table.
func LoadPreloads(cfg types.ClusteringConfig) Preloads {
	var pre Preloads
	if cfg.PreloadsDir == "" {
		return pre
	}
	if cfg.UseNameCounts {
		pre.NameCounts = loadYAMLTable[map[string]int](filepath.Join(cfg.PreloadsDir, nameCountsFile))
	}
	if cfg.UseNamePairs {
		pre.NamePairs = loadYAMLTable[map[string][]string](filepath.Join(cfg.PreloadsDir, namePairsFile))
	}
	return pre
}

// loadYAMLTable reads a YAML file into T. Returns the zero value if the
// file does not exist or cannot be parsed.
func loadYAMLTable[T any](path string) T {
	var out T
	data, err := os.ReadFile(path)
	if err != nil {
		return out
	}
	if err := yaml.Unmarshal(data, &out); err != nil {
		var zero T
		return zero
	}
	return out
}

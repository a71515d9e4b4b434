// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cluster adapts mention sets to the similarity model, commits
// the resulting assignments, and reconstructs clusters from storage.
// Implements: prd003-clustering (R1-R6);
//
//	docs/ARCHITECTURE § Clustering.
package cluster

import (
	"context"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// BlockInput is the dense feature view a clustering model receives: the
// full signature and paper maps of one block, plus optional side tables.
// Per prd003-clustering R2.1-R2.3.
type BlockInput struct {
	// Canopy is the blocking key the signatures were gathered under.
	Canopy string

	// Signatures maps signature id to record for every signature in the block.
	Signatures map[string]types.SignatureRecord

	// Papers maps paper id to record for every paper the signatures reference.
	Papers map[string]types.PaperRecord

	// NameCounts is an optional name-frequency prior. Nil means no prior;
	// models must degrade gracefully rather than fail.
	NameCounts map[string]int

	// NamePairs is an optional name-equivalence table mapping a normalized
	// name to names treated as the same author. Nil means no table.
	NamePairs map[string][]string
}

// Partition is a model's output: cluster id to the member signature ids.
type Partition map[string][]string

// Diagnostics carries model-reported details about a prediction, keyed by
// diagnostic name. Content is model-specific and advisory only.
type Diagnostics map[string]string

// Clusterer is the similarity model capability, a black box to the
// pipeline. Predict runs in inference mode over one block; the model owns
// any sub-partitioning. Determinism across model versions must not be
// assumed (R2.5). Implementations follow the Strategy pattern, one per
// model backend.
type Clusterer interface {
	Name() string
	Predict(ctx context.Context, block BlockInput) (Partition, Diagnostics, error)
}

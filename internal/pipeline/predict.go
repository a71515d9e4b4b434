// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives clustering runs across canopies.
// Implements: prd005-pipeline (R1-R3);
//
//	docs/ARCHITECTURE § Pipeline.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/google/uuid"

	"github.com/pdiddy/canopy-engine/internal/canopy"
	"github.com/pdiddy/canopy-engine/internal/cluster"
	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// Runner wires the loader, adapter, and committer for batch runs. One
// Runner processes one canopy at a time on a single control thread;
// canopies share no mutable state, so separate workers may process
// disjoint canopies with no coordination beyond the store.
type Runner struct {
	store     *store.Store
	adapter   *cluster.Adapter
	committer *cluster.Committer
}

// NewRunner returns a Runner over st using the given model and preloads.
func NewRunner(st *store.Store, model cluster.Clusterer, pre cluster.Preloads) *Runner {
	return &Runner{
		store:     st,
		adapter:   cluster.NewAdapter(model, pre),
		committer: cluster.NewCommitter(st),
	}
}

// RunSummary holds per-canopy outcome counts for a whole-corpus run (R3.2).
type RunSummary struct {
	Clustered int // canopies clustered (and committed, when committing)
	Empty     int // canopies that yielded no signatures
	Failed    int // canopies skipped after a model or commit failure
}

// Total returns the number of canopies processed.
func (s RunSummary) Total() int {
	return s.Clustered + s.Empty + s.Failed
}

// NewPredictionGroup returns a fresh run identifier for membership rows.
func NewPredictionGroup() string {
	return "p-" + uuid.NewString()[:8]
}

// RunAll clusters every canopy in the corpus under one prediction group.
// Per-canopy failures are reported and do not abort sibling canopies;
// storage unavailability is fatal for the whole run since every canopy
// shares the same store (R3.1). When commit is false the run is a dry
// run: partitions are computed and reported but nothing is persisted.
func (r *Runner) RunAll(ctx context.Context, predictionGroup string, commit bool, w io.Writer) (RunSummary, error) {
	if predictionGroup == "" {
		predictionGroup = NewPredictionGroup()
	}
	fmt.Fprintf(w, "prediction group %s, commit=%v\n", predictionGroup, commit)

	canopies, err := canopy.List(ctx, r.store)
	if err != nil {
		return RunSummary{}, err
	}

	var summary RunSummary
	for _, c := range canopies {
		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		records, err := r.RunCanopy(ctx, c, predictionGroup, commit, w)
		switch {
		case errors.Is(err, types.ErrStorageUnavailable):
			return summary, err
		case err != nil:
			fmt.Fprintf(w, "failed    %s: %v\n", c, err)
			summary.Failed++
		case len(records) == 0:
			fmt.Fprintf(w, "empty     %s\n", c)
			summary.Empty++
		default:
			summary.Clustered++
		}
	}

	fmt.Fprintf(w, "\nclustered: %d, empty: %d, failed: %d\n",
		summary.Clustered, summary.Empty, summary.Failed)
	return summary, nil
}

// RunCanopy clusters a single canopy and optionally commits the result.
// A model failure skips the canopy's commit entirely; no partial rows are
// written (R2.2).
func (r *Runner) RunCanopy(ctx context.Context, name, predictionGroup string, commit bool, w io.Writer) ([]types.ClusteringRecord, error) {
	if predictionGroup == "" {
		predictionGroup = NewPredictionGroup()
	}

	mentions, err := canopy.Load(ctx, r.store, name)
	if err != nil {
		return nil, err
	}
	if mentions.SignatureCount() == 0 {
		return nil, nil
	}

	fmt.Fprintf(w, "clustering %s: %d papers, %d signatures\n",
		name, mentions.PaperCount(), mentions.SignatureCount())

	records, err := r.adapter.Cluster(ctx, mentions, name, predictionGroup)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(w, "clustered  %s: %d clusters\n", name, len(records))

	if commit {
		if err := r.committer.Commit(ctx, records, w); err != nil {
			return nil, err
		}
	}

	return records, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"context"
	"fmt"
	"io"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// Committer persists clustering records as membership rows. Commits are
// canopy-scoped atomic replaces: all rows for a canopy are swapped for
// the new run's rows in one transaction, so re-running a canopy is
// idempotent and the latest prediction group supersedes earlier ones
// (R4.2). The historical behavior this replaces was a blind append that
// duplicated rows on re-runs.
type Committer struct {
	store *store.Store
}

// NewCommitter returns a Committer backed by st.
func NewCommitter(st *store.Store) *Committer {
	return &Committer{store: st}
}

// Commit writes one membership row per member signature of each record,
// grouped into one replace per canopy. Records for a canopy must all
// carry the same prediction group; mixing groups in one commit is an
// invariant violation.
func (c *Committer) Commit(ctx context.Context, records []types.ClusteringRecord, w io.Writer) error {
	byCanopy := make(map[string][]types.ClusterMembership)
	groups := make(map[string]string)
	var canopyOrder []string

	for _, rec := range records {
		if prior, ok := groups[rec.Canopy]; ok && prior != rec.PredictionGroup {
			return fmt.Errorf("canopy %q committed with prediction groups %q and %q: %w",
				rec.Canopy, prior, rec.PredictionGroup, types.ErrInvariantViolation)
		}
		if _, ok := groups[rec.Canopy]; !ok {
			groups[rec.Canopy] = rec.PredictionGroup
			canopyOrder = append(canopyOrder, rec.Canopy)
		}
		for _, sig := range rec.Mentions.Signatures() {
			byCanopy[rec.Canopy] = append(byCanopy[rec.Canopy], types.ClusterMembership{
				PredictionGroup: rec.PredictionGroup,
				ClusterID:       rec.ClusterID,
				SignatureID:     sig.SignatureID,
				Canopy:          rec.Canopy,
			})
		}
	}

	for _, canopy := range canopyOrder {
		rows := byCanopy[canopy]
		if err := c.store.ReplaceCanopyRun(ctx, canopy, rows); err != nil {
			return fmt.Errorf("committing canopy %q: %w", canopy, err)
		}
		fmt.Fprintf(w, "committed %d membership rows for canopy %q (group %s)\n",
			len(rows), canopy, groups[canopy])
	}

	return nil
}

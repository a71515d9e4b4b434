// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"context"
	"fmt"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// GetCluster rebuilds a cluster directly from its membership rows: member
// signatures joined to their records and papers (R6.1). It does not go
// through a live mention set, so it works for any historical cluster id.
//
// Every membership row for one cluster id must agree on canopy and
// prediction group; disagreement is reported as an invariant violation
// instead of silently taking the first row's values (R6.3).
func GetCluster(ctx context.Context, st *store.Store, clusterID string) (types.ClusteringRecord, error) {
	members, err := st.MembershipByClusterID(ctx, clusterID)
	if err != nil {
		return types.ClusteringRecord{}, err
	}
	if len(members) == 0 {
		return types.ClusteringRecord{}, fmt.Errorf("cluster %q: %w", clusterID, types.ErrNotFound)
	}

	canopy, group := members[0].Canopy, members[0].PredictionGroup
	sigIDs := make([]string, 0, len(members))
	for _, m := range members {
		if m.Canopy != canopy || m.PredictionGroup != group {
			return types.ClusteringRecord{}, fmt.Errorf(
				"cluster %q spans (%q, %q) and (%q, %q): %w",
				clusterID, canopy, group, m.Canopy, m.PredictionGroup,
				types.ErrInvariantViolation)
		}
		sigIDs = append(sigIDs, m.SignatureID)
	}

	sigs, err := st.SignaturesByIDs(ctx, sigIDs)
	if err != nil {
		return types.ClusteringRecord{}, err
	}

	mentions := types.NewMentionSet()
	paperIDs := make([]string, 0, len(sigs))
	for _, sig := range sigs {
		mentions.AddSignature(sig)
		paperIDs = append(paperIDs, sig.PaperID)
	}

	papers, err := st.PapersByIDs(ctx, paperIDs)
	if err != nil {
		return types.ClusteringRecord{}, err
	}
	for _, p := range papers {
		mentions.AddPaper(p)
	}

	return types.ClusteringRecord{
		ClusterID:       clusterID,
		PredictionGroup: group,
		Canopy:          canopy,
		Mentions:        mentions,
	}, nil
}

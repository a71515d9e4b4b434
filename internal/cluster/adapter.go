// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"context"
	"fmt"
	"sort"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// Adapter converts a mention set into the model's input shape, invokes
// the model, and converts the partition into typed clustering records.
// It has no side effects: committing is the Committer's job (R3.1).
type Adapter struct {
	model Clusterer
	pre   Preloads
}

// NewAdapter returns an Adapter around the given model and preloads.
func NewAdapter(model Clusterer, pre Preloads) *Adapter {
	return &Adapter{model: model, pre: pre}
}

// Cluster runs the model over all signatures in mentions as one block and
// returns one ClusteringRecord per output cluster, tagged with the
// caller's prediction group and the originating canopy (R3.2, R3.3).
// A model failure or malformed partition is a model-invocation error;
// nothing is persisted for the canopy in that case.
func (a *Adapter) Cluster(ctx context.Context, mentions *types.MentionSet, canopy, predictionGroup string) ([]types.ClusteringRecord, error) {
	block := BlockInput{
		Canopy:     canopy,
		Signatures: make(map[string]types.SignatureRecord, mentions.SignatureCount()),
		Papers:     mentions.Papers(),
		NameCounts: a.pre.NameCounts,
		NamePairs:  a.pre.NamePairs,
	}
	for _, sig := range mentions.Signatures() {
		block.Signatures[sig.SignatureID] = sig
	}

	partition, _, err := a.model.Predict(ctx, block)
	if err != nil {
		return nil, fmt.Errorf("model %s on canopy %q: %w: %v",
			a.model.Name(), canopy, types.ErrModelInvocation, err)
	}

	// Stable record order regardless of partition map iteration.
	clusterIDs := make([]string, 0, len(partition))
	for id := range partition {
		clusterIDs = append(clusterIDs, id)
	}
	sort.Strings(clusterIDs)

	records := make([]types.ClusteringRecord, 0, len(clusterIDs))
	for _, clusterID := range clusterIDs {
		members := types.NewMentionSet()
		for _, sigID := range partition[clusterID] {
			sig, ok := mentions.Signature(sigID)
			if !ok {
				return nil, fmt.Errorf("model %s returned unknown signature %s: %w",
					a.model.Name(), sigID, types.ErrModelInvocation)
			}
			members.AddSignature(sig)
			if paper, ok := mentions.Paper(sig.PaperID); ok {
				members.AddPaper(paper)
			}
		}
		records = append(records, types.ClusteringRecord{
			ClusterID:       clusterID,
			PredictionGroup: predictionGroup,
			Canopy:          canopy,
			Mentions:        members,
		})
	}

	return records, nil
}

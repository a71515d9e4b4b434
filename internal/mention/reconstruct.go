// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package mention reconstructs display views from partial mention sets.
// Implements: prd004-reconstruction (R1-R3);
//
//	docs/ARCHITECTURE § Reconstruction.
package mention

import (
	"context"
	"sort"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// Expand turns a possibly partial mention set (typically one canopy) into
// display clusters. The input is not mutated; calling Expand twice on the
// same set yields identical output.
//
// Steps (R2.1-R2.4):
//  1. Group the signatures already present by cluster id, in insertion
//     order; unassigned signatures group under the unclustered sentinel.
//  2. Fetch ALL signatures referencing any paper in the set — including
//     signatures from other canopies and clusters — and merge them in. A
//     paper may carry several disambiguated authors; a correct display
//     shows its whole author list, not just the slice originally loaded.
//  3. For each original group, emit one (paper, signatures-on-paper) pair
//     per member signature from the expanded set, preserving group order.
func Expand(ctx context.Context, st *store.Store, initial *types.MentionSet) (*types.MentionSet, []types.DisplayCluster, error) {
	groupKeys, groups := groupByCluster(initial)

	expanded, err := addReferencedSignatures(ctx, st, initial)
	if err != nil {
		return nil, nil, err
	}

	clusters := make([]types.DisplayCluster, 0, len(groupKeys))
	for _, key := range groupKeys {
		dc := types.DisplayCluster{ClusterID: key}
		for _, sig := range groups[key] {
			dc.Papers = append(dc.Papers, paperWithSignatures(expanded, sig))
		}
		clusters = append(clusters, dc)
	}

	return expanded, clusters, nil
}

// groupByCluster is a stable group-by: keys appear in first-seen order
// and each group keeps the signatures' insertion order (R1.2). No
// signature is ever dropped.
func groupByCluster(mentions *types.MentionSet) ([]string, map[string][]types.SignatureRecord) {
	var keys []string
	groups := make(map[string][]types.SignatureRecord)
	for _, sig := range mentions.Signatures() {
		key := sig.ClusterKey()
		if _, ok := groups[key]; !ok {
			keys = append(keys, key)
		}
		groups[key] = append(groups[key], sig)
	}
	return keys, groups
}

// addReferencedSignatures returns a copy of mentions merged with every
// stored signature that references any paper in the set (R2.2). Merge
// precedence follows the mention-set rule: fetched records win on
// conflicting ids.
func addReferencedSignatures(ctx context.Context, st *store.Store, mentions *types.MentionSet) (*types.MentionSet, error) {
	fetched, err := st.SignaturesByPaperIDs(ctx, mentions.PaperIDs())
	if err != nil {
		return nil, err
	}

	expanded := mentions.Clone()
	addition := types.NewMentionSet()
	for _, sig := range fetched {
		addition.AddSignature(sig)
	}
	expanded.Merge(addition)
	return expanded, nil
}

// paperWithSignatures pairs a signature's paper with every known
// signature on that paper, sorted by author position, marking the
// signature the entry was built from (R3.1, R3.2). A paper missing from
// the set, or one with no known signatures, yields an empty list rather
// than failing.
func paperWithSignatures(mentions *types.MentionSet, focus types.SignatureRecord) types.PaperWithSignatures {
	paper, _ := mentions.Paper(focus.PaperID)

	var sigs []types.SignatureWithFocus
	for _, sig := range mentions.Signatures() {
		if sig.PaperID != focus.PaperID {
			continue
		}
		sigs = append(sigs, types.SignatureWithFocus{
			Signature: sig,
			HasFocus:  sig.SignatureID == focus.SignatureID,
		})
	}
	sort.SliceStable(sigs, func(i, j int) bool {
		return sigs[i].Signature.AuthorInfo.Position < sigs[j].Signature.AuthorInfo.Position
	})

	return types.PaperWithSignatures{Paper: paper, Signatures: sigs}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package canopy loads and enumerates blocking-key partitions of the
// signature corpus. Implements: prd002-canopies (R1-R4);
//
//	docs/ARCHITECTURE § Canopies.
package canopy

import (
	"context"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

// Load fetches every signature whose block equals canopy, with the
// latest cluster assignment attached, plus the union of papers those
// signatures reference (R1.1-R1.3). An empty canopy yields an empty
// mention set, not an error: canopy existence is advisory. The result is
// canopy-scoped; callers wanting complete per-paper author lists must
// expand it through the mention reconstructor first.
func Load(ctx context.Context, st *store.Store, canopy string) (*types.MentionSet, error) {
	sigs, err := st.SignaturesByBlock(ctx, canopy)
	if err != nil {
		return nil, err
	}

	mentions := types.NewMentionSet()
	paperSeen := make(map[string]bool)
	var paperIDs []string
	for _, sig := range sigs {
		mentions.AddSignature(sig)
		if !paperSeen[sig.PaperID] {
			paperSeen[sig.PaperID] = true
			paperIDs = append(paperIDs, sig.PaperID)
		}
	}

	papers, err := st.PapersByIDs(ctx, paperIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range papers {
		mentions.AddPaper(p)
	}

	return mentions, nil
}

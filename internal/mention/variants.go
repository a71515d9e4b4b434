// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package mention

import (
	"sort"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

// AuthorNameVariants returns the distinct printed author names behind the
// signatures in a mention set: for each signature, the author row on its
// paper whose position matches contributes its name. A signature whose
// position matches no author on its paper is an invariant violation; it
// is skipped and counted, never fatal (R3.3).
func AuthorNameVariants(mentions *types.MentionSet) (variants []string, violations int) {
	seen := make(map[string]bool)
	for _, sig := range mentions.Signatures() {
		paper, ok := mentions.Paper(sig.PaperID)
		if !ok {
			violations++
			continue
		}
		name, found := "", false
		for _, author := range paper.Authors {
			if author.Position == sig.AuthorInfo.Position {
				name, found = author.AuthorName, true
				break
			}
		}
		if !found {
			violations++
			continue
		}
		if !seen[name] {
			seen[name] = true
			variants = append(variants, name)
		}
	}
	sort.Strings(variants)
	return variants, violations
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package canopy

import (
	"context"
	"sort"

	"github.com/pdiddy/canopy-engine/internal/mention"
	"github.com/pdiddy/canopy-engine/internal/store"
)

const defaultPageSize = 80

// List returns the distinct set of blocking keys present on any
// signature, sorted (R2.1). The count is independent of how many
// signatures share a block.
func List(ctx context.Context, st *store.Store) ([]string, error) {
	return st.DistinctBlocks(ctx)
}

// Page slices a materialized canopy list for interactive browsing. No
// cursor state is kept between pages (R2.2). Returns the page and the
// total page count; an out-of-range page is empty.
func Page(canopies []string, page, pageSize int) ([]string, int) {
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	pageCount := (len(canopies) + pageSize - 1) / pageSize

	offset := page * pageSize
	if page < 0 || offset >= len(canopies) {
		return nil, pageCount
	}
	end := offset + pageSize
	if end > len(canopies) {
		end = len(canopies)
	}
	return canopies[offset:end], pageCount
}

// Summary describes one canopy for the counted listing (R3.1).
type Summary struct {
	Canopy       string   `json:"canopy" yaml:"canopy"`
	Papers       int      `json:"papers" yaml:"papers"`
	Signatures   int      `json:"signatures" yaml:"signatures"`
	NameVariants []string `json:"name_variants" yaml:"name_variants"`
}

// Summarize loads each canopy in the list and annotates it with paper and
// signature counts plus author-name variants, sorted by descending paper
// count (R3.2). Position mismatches inside a canopy are skipped by the
// variant computation, not fatal.
func Summarize(ctx context.Context, st *store.Store, canopies []string) ([]Summary, error) {
	summaries := make([]Summary, 0, len(canopies))
	for _, c := range canopies {
		mentions, err := Load(ctx, st, c)
		if err != nil {
			return nil, err
		}
		variants, _ := mention.AuthorNameVariants(mentions)
		summaries = append(summaries, Summary{
			Canopy:       c,
			Papers:       mentions.PaperCount(),
			Signatures:   mentions.SignatureCount(),
			NameVariants: variants,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].Papers > summaries[j].Papers
	})
	return summaries, nil
}

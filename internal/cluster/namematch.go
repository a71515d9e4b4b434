// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package cluster

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// NameMatch is the built-in baseline clusterer: signatures whose
// normalized full names are equal (directly or through the name-pair
// table) land in the same cluster. It uses no pairwise scoring and no
// name-count prior, which makes it a conservative stand-in when no
// trained model is wired in.
type NameMatch struct{}

func (NameMatch) Name() string { return "namematch" }

// Predict partitions the block by normalized full name. Cluster ids are
// derived from the canopy and a running index in first-seen signature
// order, so a fixed block always yields the same partition.
func (NameMatch) Predict(ctx context.Context, block BlockInput) (Partition, Diagnostics, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	canonical := make(map[string]string)
	for name, aliases := range block.NamePairs {
		key := normalizeName(name)
		for _, alias := range aliases {
			canonical[normalizeName(alias)] = key
		}
	}

	// Map iteration order is random; walk ids sorted for stable output.
	sigIDs := make([]string, 0, len(block.Signatures))
	for id := range block.Signatures {
		sigIDs = append(sigIDs, id)
	}
	sort.Strings(sigIDs)

	groups := make(map[string]string) // normalized name → cluster id
	partition := make(Partition)
	next := 0
	for _, id := range sigIDs {
		name := normalizeName(block.Signatures[id].AuthorInfo.FullName)
		if c, ok := canonical[name]; ok {
			name = c
		}
		clusterID, ok := groups[name]
		if !ok {
			clusterID = fmt.Sprintf("%s_%d", block.Canopy, next)
			next++
			groups[name] = clusterID
		}
		partition[clusterID] = append(partition[clusterID], id)
	}

	diag := Diagnostics{
		"clusters":   fmt.Sprintf("%d", len(partition)),
		"signatures": fmt.Sprintf("%d", len(sigIDs)),
	}
	return partition, diag, nil
}

// normalizeName lowercases a name and strips everything but letters,
// digits, and single spaces.
func normalizeName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

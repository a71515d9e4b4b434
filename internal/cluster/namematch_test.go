package cluster

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/canopy-engine/pkg/types"
)

func blockWith(sigs map[string]string) BlockInput {
	block := BlockInput{
		Canopy:     "smith",
		Signatures: make(map[string]types.SignatureRecord),
		Papers:     map[string]types.PaperRecord{},
	}
	for id, name := range sigs {
		block.Signatures[id] = types.SignatureRecord{
			SignatureID: id, PaperID: "p1",
			AuthorInfo: types.AuthorInfo{FullName: name, Block: "smith"},
		}
	}
	return block
}

func TestNameMatchGroupsEqualNames(t *testing.T) {
	block := blockWith(map[string]string{
		"s1": "A. Smith",
		"s2": "a smith", // same after normalization
		"s3": "Alice Smith",
	})

	partition, diag, err := NameMatch{}.Predict(context.Background(), block)
	require.NoError(t, err)

	assert.Len(t, partition, 2)
	assert.Equal(t, "2", diag["clusters"])

	byName := make(map[string][]string)
	for id, members := range partition {
		byName[id] = members
	}
	// s1 and s2 share a cluster; s3 does not.
	var together bool
	for _, members := range byName {
		if len(members) == 2 {
			together = true
			assert.ElementsMatch(t, []string{"s1", "s2"}, members)
		}
	}
	assert.True(t, together)
}

func TestNameMatchHonorsNamePairs(t *testing.T) {
	block := blockWith(map[string]string{
		"s1": "A. Smith",
		"s3": "Alice Smith",
	})
	block.NamePairs = map[string][]string{
		"a smith": {"alice smith"},
	}

	partition, _, err := NameMatch{}.Predict(context.Background(), block)
	require.NoError(t, err)
	assert.Len(t, partition, 1, "equivalent names must collapse into one cluster")
}

func TestNameMatchDegradesWithoutPreloads(t *testing.T) {
	block := blockWith(map[string]string{"s1": "A. Smith"})
	// Nil NameCounts and NamePairs mean no prior, never a failure.
	partition, _, err := NameMatch{}.Predict(context.Background(), block)
	require.NoError(t, err)
	assert.Len(t, partition, 1)
}

func TestNameMatchIsDeterministic(t *testing.T) {
	block := blockWith(map[string]string{
		"s1": "A. Smith",
		"s2": "B. Smith",
		"s3": "A. Smith",
		"s4": "C. Smith",
	})

	first, _, err := NameMatch{}.Predict(context.Background(), block)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, _, err := NameMatch{}.Predict(context.Background(), block)
		require.NoError(t, err)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("partition changed across runs:\n%v\n%v", first, again)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"A. Smith":     "a smith",
		"  A.   SMITH": "a smith",
		"Ángel García": "ángel garcía",
		"":             "",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizeName(in), "normalizeName(%q)", in)
	}
}

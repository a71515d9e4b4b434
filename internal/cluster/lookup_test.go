package cluster

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/canopy-engine/internal/store"
	"github.com/pdiddy/canopy-engine/pkg/types"
)

func testStore(t *testing.T) *store.Store {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "corpus"), 0o755))

	corpus := store.CorpusFile{
		Papers: []types.PaperRecord{
			{PaperID: "p1", Title: "Efficient Attention Mechanisms", Authors: []types.AuthorRecord{
				{AuthorName: "A. Smith", Position: 0},
				{AuthorName: "A. Smyth", Position: 1},
			}},
		},
		Signatures: []types.SignatureRecord{
			{SignatureID: "s1", PaperID: "p1", AuthorInfo: types.AuthorInfo{FullName: "A. Smith", Position: 0, Block: "smith"}},
			{SignatureID: "s2", PaperID: "p1", AuthorInfo: types.AuthorInfo{FullName: "A. Smyth", Position: 1, Block: "smith"}},
		},
	}
	data, err := yaml.Marshal(&corpus)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "corpus", "corpus.yaml"), data, 0o644))

	st, err := store.NewStore(types.StorageConfig{DataDir: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	_, err = st.ImportCorpus(context.Background(), io.Discard)
	require.NoError(t, err)

	return st
}

// clusterRecord builds a ClusteringRecord over signatures s1, s2 on p1.
func clusterRecord(clusterID, group string) types.ClusteringRecord {
	mentions := types.NewMentionSet()
	mentions.AddPaper(types.PaperRecord{PaperID: "p1", Title: "Efficient Attention Mechanisms"})
	mentions.AddSignature(types.SignatureRecord{
		SignatureID: "s1", PaperID: "p1",
		AuthorInfo: types.AuthorInfo{FullName: "A. Smith", Position: 0, Block: "smith"},
	})
	mentions.AddSignature(types.SignatureRecord{
		SignatureID: "s2", PaperID: "p1",
		AuthorInfo: types.AuthorInfo{FullName: "A. Smyth", Position: 1, Block: "smith"},
	})
	return types.ClusteringRecord{
		ClusterID:       clusterID,
		PredictionGroup: group,
		Canopy:          "smith",
		Mentions:        mentions,
	}
}

func TestCommitThenLookupRoundTrip(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	committer := NewCommitter(st)
	require.NoError(t, committer.Commit(ctx, []types.ClusteringRecord{clusterRecord("c1", "p-test")}, io.Discard))

	rec, err := GetCluster(ctx, st, "c1")
	require.NoError(t, err)

	assert.Equal(t, "c1", rec.ClusterID)
	assert.Equal(t, "smith", rec.Canopy)
	assert.Equal(t, "p-test", rec.PredictionGroup)

	_, hasS1 := rec.Mentions.Signature("s1")
	_, hasS2 := rec.Mentions.Signature("s2")
	assert.True(t, hasS1)
	assert.True(t, hasS2)
	assert.Equal(t, 2, rec.Mentions.SignatureCount())

	_, hasP1 := rec.Mentions.Paper("p1")
	assert.True(t, hasP1)
	assert.Equal(t, 1, rec.Mentions.PaperCount())
}

func TestCommitWritesOneRowPerMembership(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	committer := NewCommitter(st)
	require.NoError(t, committer.Commit(ctx, []types.ClusteringRecord{clusterRecord("c1", "p-test")}, io.Discard))

	rows, err := st.MembershipByCanopy(ctx, "smith")
	require.NoError(t, err)
	assert.Len(t, rows, 2, "two member signatures mean exactly two rows")
}

func TestCommitReplacesPriorRun(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()
	committer := NewCommitter(st)

	// Two commits over the same canopy: the second supersedes the first
	// instead of appending duplicates. This is the deliberate hardening
	// over historical append-only behavior.
	require.NoError(t, committer.Commit(ctx, []types.ClusteringRecord{clusterRecord("c1", "p-1")}, io.Discard))
	require.NoError(t, committer.Commit(ctx, []types.ClusteringRecord{clusterRecord("c1", "p-2")}, io.Discard))

	rows, err := st.MembershipByCanopy(ctx, "smith")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, m := range rows {
		assert.Equal(t, "p-2", m.PredictionGroup)
	}
}

func TestCommitRejectsMixedGroupsForOneCanopy(t *testing.T) {
	st := testStore(t)

	records := []types.ClusteringRecord{
		clusterRecord("c1", "p-1"),
		clusterRecord("c2", "p-2"),
	}
	err := NewCommitter(st).Commit(context.Background(), records, io.Discard)
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvariantViolation))
}

func TestLookupUnknownClusterIsNotFound(t *testing.T) {
	st := testStore(t)

	_, err := GetCluster(context.Background(), st, "nosuchcluster")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrNotFound))
}

func TestLookupDetectsMixedCanopyRows(t *testing.T) {
	st := testStore(t)
	ctx := context.Background()

	// Bypass the committer to fabricate the inconsistency the lookup
	// must refuse to paper over.
	require.NoError(t, st.InsertMembershipRows(ctx, []types.ClusterMembership{
		{PredictionGroup: "p-1", ClusterID: "c1", SignatureID: "s1", Canopy: "smith"},
		{PredictionGroup: "p-1", ClusterID: "c1", SignatureID: "s2", Canopy: "jones"},
	}))

	_, err := GetCluster(ctx, st, "c1")
	require.Error(t, err)
	assert.True(t, errors.Is(err, types.ErrInvariantViolation))
}

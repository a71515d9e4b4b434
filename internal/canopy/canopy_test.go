package canopy

import (
	"context"
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

func testStore(t *testing.T, corpus store.CorpusFile) *store.Store {
	t.Helper()
	tmpDir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, "corpus"), 0o755))

	data, err := yaml.Marshal(&corpus)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "corpus", "corpus.yaml"), data, 0o644))

	st, err := store.NewStore(types.StorageConfig{DataDir: tmpDir})
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	summary, err := st.ImportCorpus(context.Background(), io.Discard)
	require.NoError(t, err)
	require.Zero(t, summary.Failed)

	return st
}

func sampleCorpus() store.CorpusFile {
	return store.CorpusFile{
		Papers: []types.PaperRecord{
			{PaperID: "p1", Title: "Efficient Attention Mechanisms", Authors: []types.AuthorRecord{
				{AuthorName: "A. Smith", Position: 0},
				{AuthorName: "B. Jones", Position: 1},
			}},
			{PaperID: "p2", Title: "Sparse Transformers Revisited", Authors: []types.AuthorRecord{
				{AuthorName: "Alice Smith", Position: 0},
			}},
		},
		Signatures: []types.SignatureRecord{
			{SignatureID: "s1", PaperID: "p1", AuthorInfo: types.AuthorInfo{FullName: "A. Smith", Position: 0, Block: "smith"}},
			{SignatureID: "s2", PaperID: "p1", AuthorInfo: types.AuthorInfo{FullName: "B. Jones", Position: 1, Block: "jones"}},
			{SignatureID: "s3", PaperID: "p2", AuthorInfo: types.AuthorInfo{FullName: "Alice Smith", Position: 0, Block: "smith"}},
		},
	}
}

func TestLoadContainsEverySignatureAndItsPaper(t *testing.T) {
	st := testStore(t, sampleCorpus())

	mentions, err := Load(context.Background(), st, "smith")
	require.NoError(t, err)

	// Every smith signature appears under its own id, with its paper.
	for _, id := range []string{"s1", "s3"} {
		sig, ok := mentions.Signature(id)
		require.True(t, ok, "signature %s missing", id)
		_, ok = mentions.Paper(sig.PaperID)
		assert.True(t, ok, "paper %s missing for %s", sig.PaperID, id)
	}

	// The canopy-scoped view excludes the jones signature even though it
	// shares p1; expansion is the reconstructor's job.
	_, ok := mentions.Signature("s2")
	assert.False(t, ok)
}

func TestLoadEmptyCanopyIsNotAnError(t *testing.T) {
	st := testStore(t, sampleCorpus())

	mentions, err := Load(context.Background(), st, "garcia")
	require.NoError(t, err)
	assert.Zero(t, mentions.SignatureCount())
	assert.Zero(t, mentions.PaperCount())
}

func TestListReturnsDistinctBlocks(t *testing.T) {
	st := testStore(t, sampleCorpus())

	canopies, err := List(context.Background(), st)
	require.NoError(t, err)
	// Two smith signatures produce one entry.
	assert.Equal(t, []string{"jones", "smith"}, canopies)
}

func TestPage(t *testing.T) {
	canopies := []string{"a", "b", "c", "d", "e"}

	page, count := Page(canopies, 0, 2)
	assert.Equal(t, []string{"a", "b"}, page)
	assert.Equal(t, 3, count)

	page, _ = Page(canopies, 2, 2)
	assert.Equal(t, []string{"e"}, page)

	page, count = Page(canopies, 9, 2)
	assert.Empty(t, page)
	assert.Equal(t, 3, count)

	page, _ = Page(canopies, -1, 2)
	assert.Empty(t, page)
}

func TestSummarizeSortsByPaperCount(t *testing.T) {
	st := testStore(t, sampleCorpus())

	summaries, err := Summarize(context.Background(), st, []string{"jones", "smith"})
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, "smith", summaries[0].Canopy)
	assert.Equal(t, 2, summaries[0].Papers)
	assert.Equal(t, 2, summaries[0].Signatures)
	assert.Equal(t, []string{"A. Smith", "Alice Smith"}, summaries[0].NameVariants)

	assert.Equal(t, "jones", summaries[1].Canopy)
	assert.Equal(t, []string{"B. Jones"}, summaries[1].NameVariants)
}

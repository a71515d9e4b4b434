package types

import (
	"reflect"
	"testing"
)

func sig(id, paperID, cluster string) SignatureRecord {
	return SignatureRecord{
		SignatureID: id,
		PaperID:     paperID,
		AuthorInfo:  AuthorInfo{FullName: "A. Smith", Block: "smith"},
		ClusterID:   cluster,
	}
}

func TestMentionSetPreservesInsertionOrder(t *testing.T) {
	m := NewMentionSet()
	for _, id := range []string{"s3", "s1", "s2"} {
		m.AddSignature(sig(id, "p1", ""))
	}

	var got []string
	for _, s := range m.Signatures() {
		got = append(got, s.SignatureID)
	}
	if !reflect.DeepEqual(got, []string{"s3", "s1", "s2"}) {
		t.Errorf("order = %v, want insertion order", got)
	}
}

func TestMentionSetReplaceKeepsPosition(t *testing.T) {
	m := NewMentionSet()
	m.AddSignature(sig("s1", "p1", ""))
	m.AddSignature(sig("s2", "p1", ""))
	m.AddSignature(sig("s1", "p1", "c9")) // replacement, not re-append

	sigs := m.Signatures()
	if len(sigs) != 2 {
		t.Fatalf("got %d signatures, want 2", len(sigs))
	}
	if sigs[0].SignatureID != "s1" || sigs[0].ClusterID != "c9" {
		t.Errorf("replaced signature = %+v, want s1 with cluster c9 first", sigs[0])
	}
}

func TestMergeRightHandPrecedence(t *testing.T) {
	left := NewMentionSet()
	left.AddPaper(PaperRecord{PaperID: "p1", Title: "Old Title"})
	left.AddSignature(sig("s1", "p1", ""))

	right := NewMentionSet()
	right.AddPaper(PaperRecord{PaperID: "p1", Title: "New Title"})
	right.AddSignature(sig("s1", "p1", "c1"))
	right.AddSignature(sig("s2", "p1", ""))

	left.Merge(right)

	if p, _ := left.Paper("p1"); p.Title != "New Title" {
		t.Errorf("paper title = %q, want right-hand value", p.Title)
	}
	if s, _ := left.Signature("s1"); s.ClusterID != "c1" {
		t.Errorf("signature cluster = %q, want right-hand value", s.ClusterID)
	}
	if left.SignatureCount() != 2 {
		t.Errorf("signature count = %d, want 2", left.SignatureCount())
	}
}

func TestCloneIsIndependent(t *testing.T) {
	m := NewMentionSet()
	m.AddSignature(sig("s1", "p1", ""))

	clone := m.Clone()
	clone.AddSignature(sig("s2", "p1", ""))

	if m.SignatureCount() != 1 {
		t.Errorf("mutating the clone changed the original")
	}
}

func TestClusterKeySentinel(t *testing.T) {
	if got := sig("s1", "p1", "").ClusterKey(); got != Unclustered {
		t.Errorf("ClusterKey() = %q, want sentinel", got)
	}
	if got := sig("s1", "p1", "c1").ClusterKey(); got != "c1" {
		t.Errorf("ClusterKey() = %q, want c1", got)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Unclustered is the sentinel cluster key for signatures that no
// clustering run has assigned yet. Per prd004-reconstruction R1.2.
const Unclustered = "<unclustered>"

// AuthorRecord is one entry in a paper's ordered author list.
type AuthorRecord struct {
	// AuthorName is the name exactly as printed on the paper.
	AuthorName string `json:"author_name" yaml:"author_name"`

	// Position is the zero-based index of the author on the paper.
	Position int `json:"position" yaml:"position"`
}

// PaperRecord holds the bibliographic fields of one paper. Records are
// created by upstream ingestion and are read-only to the pipeline.
// Per prd001-storage R2.1.
type PaperRecord struct {
	// PaperID is the stable paper identifier.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// Title is the paper title.
	Title string `json:"title" yaml:"title"`

	// Authors lists the paper authors in source order. Positions are
	// expected to be dense and zero-based but are validated, not assumed.
	Authors []AuthorRecord `json:"authors" yaml:"authors"`
}

// AuthorInfo describes the author-name appearance a signature captures.
type AuthorInfo struct {
	// FullName is the author name as it appears on the paper.
	FullName string `json:"fullname" yaml:"fullname"`

	// Position must equal the Position of exactly one author on the
	// referenced paper. Violations are invariant violations, not panics.
	Position int `json:"position" yaml:"position"`

	// Block is the canopy key: a normalized name token, opaque to the
	// pipeline.
	Block string `json:"block" yaml:"block"`
}

// SignatureRecord is one appearance of an author name on one paper.
// Per prd001-storage R2.2.
type SignatureRecord struct {
	// SignatureID is the unique signature identifier.
	SignatureID string `json:"signature_id" yaml:"signature_id"`

	// PaperID references the paper this signature appears on.
	PaperID string `json:"paper_id" yaml:"paper_id"`

	// AuthorInfo holds the name, position, and canopy key.
	AuthorInfo AuthorInfo `json:"author_info" yaml:"author_info"`

	// ClusterID is the most recent cluster assignment, or empty when no
	// clustering run has assigned one.
	ClusterID string `json:"cluster_id,omitempty" yaml:"cluster_id,omitempty"`
}

// ClusterKey returns the cluster id a signature groups under, using the
// Unclustered sentinel for unassigned signatures.
func (s SignatureRecord) ClusterKey() string {
	if s.ClusterID == "" {
		return Unclustered
	}
	return s.ClusterID
}

// MentionSet is a bounded, possibly incomplete slice of the corpus:
// papers and signatures keyed by id. Signature insertion order is
// preserved so that grouping stays stable across reconstruction.
// Per prd004-reconstruction R1.1.
type MentionSet struct {
	papers     map[string]PaperRecord
	signatures map[string]SignatureRecord
	sigOrder   []string
}

// NewMentionSet returns an empty MentionSet.
func NewMentionSet() *MentionSet {
	return &MentionSet{
		papers:     make(map[string]PaperRecord),
		signatures: make(map[string]SignatureRecord),
	}
}

// AddPaper inserts or replaces a paper by id.
func (m *MentionSet) AddPaper(p PaperRecord) {
	m.papers[p.PaperID] = p
}

// AddSignature inserts or replaces a signature by id. A replaced
// signature keeps its original position in the insertion order.
func (m *MentionSet) AddSignature(s SignatureRecord) {
	if _, ok := m.signatures[s.SignatureID]; !ok {
		m.sigOrder = append(m.sigOrder, s.SignatureID)
	}
	m.signatures[s.SignatureID] = s
}

// Paper returns the paper with the given id.
func (m *MentionSet) Paper(id string) (PaperRecord, bool) {
	p, ok := m.papers[id]
	return p, ok
}

// Signature returns the signature with the given id.
func (m *MentionSet) Signature(id string) (SignatureRecord, bool) {
	s, ok := m.signatures[id]
	return s, ok
}

// PaperIDs returns the ids of all papers in the set, in no particular order.
func (m *MentionSet) PaperIDs() []string {
	ids := make([]string, 0, len(m.papers))
	for id := range m.papers {
		ids = append(ids, id)
	}
	return ids
}

// Papers returns the paper map. Callers must not mutate it.
func (m *MentionSet) Papers() map[string]PaperRecord {
	return m.papers
}

// Signatures returns the signatures in insertion order.
func (m *MentionSet) Signatures() []SignatureRecord {
	out := make([]SignatureRecord, 0, len(m.sigOrder))
	for _, id := range m.sigOrder {
		out = append(out, m.signatures[id])
	}
	return out
}

// PaperCount returns the number of papers in the set.
func (m *MentionSet) PaperCount() int { return len(m.papers) }

// SignatureCount returns the number of signatures in the set.
func (m *MentionSet) SignatureCount() int { return len(m.signatures) }

// Clone returns a deep-enough copy: record values are copied, so mutating
// the clone never changes the receiver.
func (m *MentionSet) Clone() *MentionSet {
	out := NewMentionSet()
	for id, p := range m.papers {
		out.papers[id] = p
	}
	for id, s := range m.signatures {
		out.signatures[id] = s
	}
	out.sigOrder = append(out.sigOrder, m.sigOrder...)
	return out
}

// Merge unions other into the receiver by key, with other taking
// precedence on conflicting ids. Duplicate ids are assumed to describe
// the same record; no conflict detection is performed.
// Per prd004-reconstruction R2.3.
func (m *MentionSet) Merge(other *MentionSet) {
	if other == nil {
		return
	}
	for id, p := range other.papers {
		m.papers[id] = p
	}
	for _, id := range other.sigOrder {
		m.AddSignature(other.signatures[id])
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ClusterMembership is one persisted cluster-assignment row. Rows are
// written only by the committer and are never updated in place.
// Per prd003-clustering R4.1.
type ClusterMembership struct {
	// PredictionGroup identifies the clustering run that produced this row.
	PredictionGroup string `json:"prediction_group" yaml:"prediction_group"`

	// ClusterID is the cluster the signature was assigned to.
	ClusterID string `json:"cluster_id" yaml:"cluster_id"`

	// SignatureID is the assigned signature.
	SignatureID string `json:"signature_id" yaml:"signature_id"`

	// Canopy is the blocking key the clustering run operated on.
	Canopy string `json:"canopy" yaml:"canopy"`
}

// ClusteringRecord is one cluster produced by a clustering run: the
// cluster's identity plus the mentions (signatures and their papers)
// placed in it. Per prd003-clustering R3.3.
type ClusteringRecord struct {
	// ClusterID is the model-assigned cluster identifier.
	ClusterID string `json:"cluster_id" yaml:"cluster_id"`

	// PredictionGroup labels the run that produced the cluster.
	PredictionGroup string `json:"prediction_group" yaml:"prediction_group"`

	// Canopy is the blocking key the cluster was produced from.
	Canopy string `json:"canopy" yaml:"canopy"`

	// Mentions holds the member signatures and their papers.
	Mentions *MentionSet `json:"-" yaml:"-"`
}

// SignatureWithFocus pairs a signature with whether it is the one a
// display entry centers on. Per prd004-reconstruction R3.2.
type SignatureWithFocus struct {
	Signature SignatureRecord `json:"signature" yaml:"signature"`

	// HasFocus is true for the signature the cluster entry was built from.
	HasFocus bool `json:"has_focus" yaml:"has_focus"`
}

// PaperWithSignatures is one paper together with every known signature on
// it, ordered by author position. A paper with no known signatures keeps
// an empty list rather than failing.
type PaperWithSignatures struct {
	Paper      PaperRecord          `json:"paper" yaml:"paper"`
	Signatures []SignatureWithFocus `json:"signatures" yaml:"signatures"`
}

// DisplayCluster is the read-path view of one cluster: an ordered list of
// (paper, signatures-on-that-paper) pairs, one per member signature.
type DisplayCluster struct {
	// ClusterID is the cluster key, possibly the Unclustered sentinel.
	ClusterID string `json:"cluster_id" yaml:"cluster_id"`

	// Papers holds one entry per member signature, in grouping order.
	Papers []PaperWithSignatures `json:"papers" yaml:"papers"`
}

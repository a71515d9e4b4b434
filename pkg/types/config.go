// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// StorageConfig holds settings for the corpus store.
// Per prd001-storage R1.1-R1.3.
type StorageConfig struct {
	// DataDir is the base directory for the store (contains index/, corpus/).
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ClusteringConfig holds settings for clustering runs.
// Per prd003-clustering R1.2, R2.4.
type ClusteringConfig struct {
	// PredictionGroup labels the membership rows a run writes. When empty
	// a fresh run id is generated.
	PredictionGroup string `json:"prediction_group,omitempty" yaml:"prediction_group,omitempty"`

	// PreloadsDir is the directory holding optional name-count and
	// name-pair side tables. Missing files mean no prior.
	PreloadsDir string `json:"preloads_dir,omitempty" yaml:"preloads_dir,omitempty"`

	// UseNameCounts controls whether the name-frequency table is loaded.
	UseNameCounts bool `json:"use_name_counts" yaml:"use_name_counts"`

	// UseNamePairs controls whether the name-equivalence table is loaded.
	UseNamePairs bool `json:"use_name_pairs" yaml:"use_name_pairs"`
}

// BrowseConfig holds settings for interactive canopy browsing.
type BrowseConfig struct {
	// PageSize is the number of canopies per page (default 80).
	PageSize int `json:"page_size" yaml:"page_size"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Storage    StorageConfig    `json:"storage" yaml:"storage"`
	Clustering ClusteringConfig `json:"clustering" yaml:"clustering"`
	Browse     BrowseConfig     `json:"browse" yaml:"browse"`
}

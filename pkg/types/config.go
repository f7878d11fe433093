// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DataConfig locates the input and output CSV files.
type DataConfig struct {
	// RawPath is the primary raw metadata export (e.g. "data/metadata.csv").
	RawPath string `json:"raw" yaml:"raw" mapstructure:"raw"`

	// SamplePath is the fallback sample used when RawPath does not exist.
	SamplePath string `json:"sample" yaml:"sample" mapstructure:"sample"`

	// CleanedPath is where the cleaned dataset is written and read back.
	CleanedPath string `json:"cleaned" yaml:"cleaned" mapstructure:"cleaned"`
}

// AnalysisConfig holds the top-N sizes for the aggregation views.
type AnalysisConfig struct {
	// TopJournals is the number of journals reported (default 10).
	TopJournals int `json:"top_journals" yaml:"top_journals" mapstructure:"top_journals"`

	// TopWords is the number of title words reported (default 30).
	TopWords int `json:"top_words" yaml:"top_words" mapstructure:"top_words"`
}

// DashboardConfig holds settings for the HTTP dashboard.
type DashboardConfig struct {
	// Addr is the listen address (default ":8501").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// PreviewRows is the number of filtered rows shown in the table (default 20).
	PreviewRows int `json:"preview_rows" yaml:"preview_rows" mapstructure:"preview_rows"`

	// CloudWords caps the words drawn in the title word cloud (default 200).
	CloudWords int `json:"cloud_words" yaml:"cloud_words" mapstructure:"cloud_words"`
}

// CatalogConfig holds settings for the SQLite catalog.
type CatalogConfig struct {
	// Dir contains the catalog database (papers.db).
	Dir string `json:"dir" yaml:"dir" mapstructure:"dir"`

	// MaxResults is the default search result limit (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`
}

// Config groups the settings for every command.
type Config struct {
	Data      DataConfig      `json:"data" yaml:"data" mapstructure:"data"`
	Analysis  AnalysisConfig  `json:"analysis" yaml:"analysis" mapstructure:"analysis"`
	Dashboard DashboardConfig `json:"dashboard" yaml:"dashboard" mapstructure:"dashboard"`
	Catalog   CatalogConfig   `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
}

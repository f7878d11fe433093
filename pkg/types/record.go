// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the cord-insights pipeline.
// Record and Schema describe one cleaned metadata row and which of the
// allow-listed columns the source file carried. Config types live in config.go
// and aggregation results in analysis.go.
package types

import "database/sql"

// Column names as they appear in CORD-19 metadata exports and in the cleaned CSV.
const (
	ColumnID                = "cord_uid"
	ColumnTitle             = "title"
	ColumnAbstract          = "abstract"
	ColumnPublishTime       = "publish_time"
	ColumnJournal           = "journal"
	ColumnAuthors           = "authors"
	ColumnSource            = "source_x"
	ColumnPublishYear       = "pub_year"
	ColumnAbstractWordCount = "abstract_word_count"
)

// AllowedColumns lists the source columns kept by cleaning, in output order.
var AllowedColumns = []string{
	ColumnID,
	ColumnTitle,
	ColumnAbstract,
	ColumnPublishTime,
	ColumnJournal,
	ColumnAuthors,
	ColumnSource,
}

// Sentinel values for missing categorical fields. The casing differs on
// purpose: downstream grouping matches on the exact strings.
const (
	UnknownJournal = "Unknown"
	UnknownSource  = "unknown"
)

// Schema records which allow-listed columns are present in a dataset.
// Derived columns follow their inputs: PublishYear exists iff PublishTime
// does, AbstractWordCount iff Abstract does.
type Schema struct {
	ID          bool `json:"cord_uid" yaml:"cord_uid"`
	Title       bool `json:"title" yaml:"title"`
	Abstract    bool `json:"abstract" yaml:"abstract"`
	PublishTime bool `json:"publish_time" yaml:"publish_time"`
	Journal     bool `json:"journal" yaml:"journal"`
	Authors     bool `json:"authors" yaml:"authors"`
	Source      bool `json:"source_x" yaml:"source_x"`
}

// SchemaFor builds a Schema from a header row. Unknown columns are ignored.
func SchemaFor(header []string) Schema {
	var s Schema
	for _, name := range header {
		switch name {
		case ColumnID:
			s.ID = true
		case ColumnTitle:
			s.Title = true
		case ColumnAbstract:
			s.Abstract = true
		case ColumnPublishTime:
			s.PublishTime = true
		case ColumnJournal:
			s.Journal = true
		case ColumnAuthors:
			s.Authors = true
		case ColumnSource:
			s.Source = true
		}
	}
	return s
}

// Has reports whether the named column, source or derived, is part of the schema.
func (s Schema) Has(column string) bool {
	switch column {
	case ColumnID:
		return s.ID
	case ColumnTitle:
		return s.Title
	case ColumnAbstract, ColumnAbstractWordCount:
		return s.Abstract
	case ColumnPublishTime, ColumnPublishYear:
		return s.PublishTime
	case ColumnJournal:
		return s.Journal
	case ColumnAuthors:
		return s.Authors
	case ColumnSource:
		return s.Source
	}
	return false
}

// Columns returns the cleaned output columns for this schema: present
// allow-listed columns in allow-list order, then the derived columns.
func (s Schema) Columns() []string {
	var cols []string
	for _, c := range AllowedColumns {
		if s.Has(c) {
			cols = append(cols, c)
		}
	}
	if s.PublishTime {
		cols = append(cols, ColumnPublishYear)
	}
	if s.Abstract {
		cols = append(cols, ColumnAbstractWordCount)
	}
	return cols
}

// Record is one paper's cleaned metadata row. Fields whose column is absent
// from the dataset Schema hold zero values and are never written out.
type Record struct {
	// ID is the CORD-19 unique identifier. Null when the cell was missing.
	ID sql.NullString `json:"cord_uid" yaml:"cord_uid"`

	// Title is the trimmed paper title; empty when missing.
	Title string `json:"title" yaml:"title"`

	// Abstract is the trimmed abstract; empty when missing.
	Abstract string `json:"abstract" yaml:"abstract"`

	// PublishTime is the parsed publication date. Null when absent or unparseable.
	PublishTime sql.NullTime `json:"publish_time" yaml:"publish_time"`

	// Journal is the venue name, or UnknownJournal.
	Journal string `json:"journal" yaml:"journal"`

	// Authors is the raw author list as exported (semicolon separated in CORD-19).
	Authors string `json:"authors" yaml:"authors"`

	// Source is the provenance collection, or UnknownSource.
	Source string `json:"source_x" yaml:"source_x"`

	// PublishYear is derived from PublishTime and null exactly when it is.
	PublishYear sql.NullInt64 `json:"pub_year" yaml:"pub_year"`

	// AbstractWordCount is the number of whitespace-delimited tokens in Abstract.
	AbstractWordCount int `json:"abstract_word_count" yaml:"abstract_word_count"`
}

// Dataset is a cleaned, in-memory table of records with its schema.
type Dataset struct {
	// Path is the file the dataset was loaded from, if any.
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	Schema  Schema   `json:"schema" yaml:"schema"`
	Records []Record `json:"records" yaml:"records"`
}

// Len returns the number of records.
func (d *Dataset) Len() int {
	return len(d.Records)
}

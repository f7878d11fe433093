// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// YearCount is the number of papers published in one year.
type YearCount struct {
	Year  int `json:"year" yaml:"year"`
	Count int `json:"count" yaml:"count"`
}

// CategoryCount is the frequency of one categorical value (journal, source).
type CategoryCount struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// WordCount is the frequency of one title token.
type WordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

// Summary bundles the aggregation views over one dataset.
type Summary struct {
	// Source is the path of the dataset summarised.
	Source string `json:"source" yaml:"source"`

	// Records is the number of rows in the dataset.
	Records int `json:"records" yaml:"records"`

	ByYear     []YearCount     `json:"by_year" yaml:"by_year"`
	Journals   []CategoryCount `json:"top_journals" yaml:"top_journals"`
	Sources    []CategoryCount `json:"sources" yaml:"sources"`
	TitleWords []WordCount     `json:"title_words" yaml:"title_words"`
}

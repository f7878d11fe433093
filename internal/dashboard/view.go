// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"math"
	"net/url"
	"sort"
	"strconv"

	"github.com/pdiddy/cord-insights/internal/analysis"
	"github.com/pdiddy/cord-insights/internal/clean"
	"github.com/pdiddy/cord-insights/pkg/types"
)

// All is the filter option that disables a filter.
const All = "All"

// Filter selects a subset of the dataset. A zero Year or empty Source
// matches every row.
type Filter struct {
	Year   int    `json:"year,omitempty"`
	Source string `json:"source,omitempty"`
}

// ParseFilter reads the year and source query parameters. Unknown or
// malformed values fall back to All.
func ParseFilter(q url.Values) Filter {
	var f Filter
	if y := q.Get("year"); y != "" && y != All {
		if n, err := strconv.Atoi(y); err == nil {
			f.Year = n
		}
	}
	if s := q.Get("source"); s != All {
		f.Source = s
	}
	return f
}

// Query encodes f as URL query parameters.
func (f Filter) Query() string {
	q := url.Values{}
	if f.Year != 0 {
		q.Set("year", strconv.Itoa(f.Year))
	}
	if f.Source != "" {
		q.Set("source", f.Source)
	}
	return q.Encode()
}

// Match reports whether rec passes the filter.
func (f Filter) Match(rec types.Record) bool {
	if f.Year != 0 && (!rec.PublishTime.Valid || rec.PublishTime.Time.Year() != f.Year) {
		return false
	}
	if f.Source != "" && rec.Source != f.Source {
		return false
	}
	return true
}

// Apply returns the records matching f in dataset order. ds is not modified.
func (f Filter) Apply(ds *types.Dataset) []types.Record {
	out := make([]types.Record, 0, len(ds.Records))
	for _, rec := range ds.Records {
		if f.Match(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// Options lists the values offered by the two filters.
type Options struct {
	Years   []int    `json:"years"`
	Sources []string `json:"sources"`
}

// FilterOptions returns the distinct publication years in ascending order
// and the distinct sources in encounter order.
func FilterOptions(ds *types.Dataset) Options {
	var opts Options
	years := make(map[int]struct{})
	sources := make(map[string]struct{})
	for _, rec := range ds.Records {
		if ds.Schema.PublishTime && rec.PublishTime.Valid {
			years[rec.PublishTime.Time.Year()] = struct{}{}
		}
		if ds.Schema.Source {
			if _, ok := sources[rec.Source]; !ok {
				sources[rec.Source] = struct{}{}
				opts.Sources = append(opts.Sources, rec.Source)
			}
		}
	}
	for y := range years {
		opts.Years = append(opts.Years, y)
	}
	sort.Ints(opts.Years)
	return opts
}

// Metrics are the headline numbers for a filtered view.
type Metrics struct {
	Papers            int     `json:"papers"`
	Journals          int     `json:"journals"`
	MeanAbstractWords float64 `json:"mean_abstract_words"`
}

// ComputeMetrics summarises records. An empty slice yields all zeros.
func ComputeMetrics(records []types.Record) Metrics {
	m := Metrics{Papers: len(records)}
	if len(records) == 0 {
		return m
	}
	m.Journals = analysis.DistinctJournals(records)

	total := 0
	for _, r := range records {
		total += r.AbstractWordCount
	}
	m.MeanAbstractWords = math.Round(float64(total)/float64(len(records))*10) / 10
	return m
}

// View is everything rendered for one filter selection. The year and
// journal series are computed over the whole dataset; the metrics, words,
// and preview follow the filter.
type View struct {
	Filter   Filter                `json:"filter"`
	Options  Options               `json:"options"`
	Metrics  Metrics               `json:"metrics"`
	ByYear   []types.YearCount     `json:"by_year"`
	Journals []types.CategoryCount `json:"top_journals"`
	Words    []types.WordCount     `json:"title_words"`
	Preview  *Preview              `json:"preview"`
}

// Preview is the first rows of the filtered set as display strings.
type Preview struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// Settings sizes the parts of a View.
type Settings struct {
	TopJournals int
	PreviewRows int
	CloudWords  int
}

// DefaultSettings mirrors the dashboard defaults.
func DefaultSettings() Settings {
	return Settings{TopJournals: 10, PreviewRows: 20, CloudWords: 200}
}

// BuildView recomputes the full view for f. It never mutates ds.
func BuildView(ds *types.Dataset, f Filter, s Settings) View {
	filtered := f.Apply(ds)

	n := s.PreviewRows
	if n < 0 {
		n = 0
	}
	if n > len(filtered) {
		n = len(filtered)
	}
	preview := clean.Encode(&types.Dataset{Schema: ds.Schema, Records: filtered[:n]})

	return View{
		Filter:   f,
		Options:  FilterOptions(ds),
		Metrics:  ComputeMetrics(filtered),
		ByYear:   analysis.CountByYear(ds),
		Journals: analysis.TopJournals(ds, s.TopJournals),
		Words:    analysis.TitleWordFreq(filtered, s.CloudWords),
		Preview:  &Preview{Columns: preview.Header, Rows: preview.Rows},
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package analysis computes the descriptive views over a cleaned dataset:
// publications per year, top journals, source distribution, and title word
// frequency. Every function is pure and deterministic; ties are broken by
// the order in which values first appear in the dataset.
package analysis

import (
	"regexp"
	"sort"
	"strings"

	"github.com/pdiddy/cord-insights/pkg/types"
)

const (
	// DefaultTopJournals is the journal count used when n <= 0.
	DefaultTopJournals = 10

	// DefaultTopWords is the title word count used when n <= 0.
	DefaultTopWords = 30

	minWordLen = 3
)

var wordPattern = regexp.MustCompile(`[a-zA-Z']+`)

// stopwords are dropped from title tokens: common English function words
// plus terms present in nearly every CORD-19 title.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "of": {}, "in": {}, "a": {}, "to": {}, "for": {},
	"on": {}, "with": {},
	"covid": {}, "covid-19": {}, "sars-cov-2": {}, "cov-2": {},
}

// CountByYear returns paper counts per publication year in ascending year
// order. Rows without a year are not counted. It returns nil when the
// dataset has no publish_time column.
func CountByYear(ds *types.Dataset) []types.YearCount {
	if !ds.Schema.PublishTime {
		return nil
	}

	counts := make(map[int]int)
	for _, rec := range ds.Records {
		if rec.PublishYear.Valid {
			counts[int(rec.PublishYear.Int64)]++
		}
	}

	out := make([]types.YearCount, 0, len(counts))
	for y, c := range counts {
		out = append(out, types.YearCount{Year: y, Count: c})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// TopJournals returns the n journals with the most papers.
func TopJournals(ds *types.Dataset, n int) []types.CategoryCount {
	if !ds.Schema.Journal {
		return nil
	}
	if n <= 0 {
		n = DefaultTopJournals
	}
	return limit(countCategories(ds.Records, func(r types.Record) string { return r.Journal }), n)
}

// SourceDistribution returns the count of every source, most frequent first.
func SourceDistribution(ds *types.Dataset) []types.CategoryCount {
	if !ds.Schema.Source {
		return nil
	}
	return countCategories(ds.Records, func(r types.Record) string { return r.Source })
}

// DistinctJournals returns the number of different journal values.
func DistinctJournals(records []types.Record) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Journal] = struct{}{}
	}
	return len(seen)
}

// TitleWordFreq returns the n most frequent title words. Titles are
// lowercased and split into alphabetic tokens (apostrophes allowed);
// stopwords and tokens shorter than three letters are discarded.
func TitleWordFreq(records []types.Record, n int) []types.WordCount {
	if n <= 0 {
		n = DefaultTopWords
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		for _, w := range TitleTokens(r.Title) {
			if _, ok := counts[w]; !ok {
				order = append(order, w)
			}
			counts[w]++
		}
	}

	out := make([]types.WordCount, len(order))
	for i, w := range order {
		out[i] = types.WordCount{Word: w, Count: counts[w]}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })

	if len(out) > n {
		out = out[:n]
	}
	return out
}

// TitleTokens returns the counted tokens of one title, in order.
func TitleTokens(title string) []string {
	var tokens []string
	for _, w := range wordPattern.FindAllString(strings.ToLower(title), -1) {
		if _, stop := stopwords[w]; stop || len(w) < minWordLen {
			continue
		}
		tokens = append(tokens, w)
	}
	return tokens
}

// countCategories groups records by key and sorts by descending count,
// keeping first-encounter order among equal counts.
func countCategories(records []types.Record, key func(types.Record) string) []types.CategoryCount {
	index := make(map[string]int)
	var out []types.CategoryCount
	for _, r := range records {
		k := key(r)
		i, ok := index[k]
		if !ok {
			i = len(out)
			index[k] = i
			out = append(out, types.CategoryCount{Name: k})
		}
		out[i].Count++
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func limit(counts []types.CategoryCount, n int) []types.CategoryCount {
	if len(counts) > n {
		return counts[:n]
	}
	return counts
}

// Summarize runs every view over ds with the configured sizes.
func Summarize(ds *types.Dataset, cfg types.AnalysisConfig) types.Summary {
	return types.Summary{
		Source:     ds.Path,
		Records:    ds.Len(),
		ByYear:     CountByYear(ds),
		Journals:   TopJournals(ds, cfg.TopJournals),
		Sources:    SourceDistribution(ds),
		TitleWords: TitleWordFreq(ds.Records, cfg.TopWords),
	}
}

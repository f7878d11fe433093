// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package clean turns a raw metadata export into the cleaned dataset.
// Cleaning is a single pass over the raw table: column selection, text
// normalization, date coercion, derived fields, sentinel fill, and
// first-occurrence deduplication. The output is deterministic for a given
// input, so repeated runs produce byte-identical files.
package clean

import (
	"database/sql"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/cord-insights/internal/table"
	"github.com/pdiddy/cord-insights/pkg/types"
)

// Stats counts what a cleaning pass did to its input.
type Stats struct {
	InputRows      int `json:"input_rows" yaml:"input_rows"`
	InputColumns   int `json:"input_columns" yaml:"input_columns"`
	Rows           int `json:"rows" yaml:"rows"`
	Columns        int `json:"columns" yaml:"columns"`
	Duplicates     int `json:"duplicates" yaml:"duplicates"`
	InvalidDates   int `json:"invalid_dates" yaml:"invalid_dates"`
	FilledJournals int `json:"filled_journals" yaml:"filled_journals"`
	FilledSources  int `json:"filled_sources" yaml:"filled_sources"`
}

// Clean produces a cleaned dataset from a raw table. Columns outside
// types.AllowedColumns are dropped; absent allow-listed columns are left out
// of the schema rather than filled.
func Clean(raw *table.Table) (*types.Dataset, Stats) {
	stats := Stats{
		InputRows:    raw.Len(),
		InputColumns: len(raw.Header),
	}

	t := raw.Select(types.AllowedColumns)
	schema := types.SchemaFor(t.Header)

	ds := &types.Dataset{Schema: schema}
	seen := make(map[string]struct{}, t.Len())

	for i := 0; i < t.Len(); i++ {
		rec, flags := cleanRow(t, i, schema)

		key, ok := dedupKey(rec, schema)
		if ok {
			if _, dup := seen[key]; dup {
				stats.Duplicates++
				continue
			}
			seen[key] = struct{}{}
		}

		if flags.invalidDate {
			stats.InvalidDates++
		}
		if flags.filledJournal {
			stats.FilledJournals++
		}
		if flags.filledSource {
			stats.FilledSources++
		}

		ds.Records = append(ds.Records, rec)
	}

	stats.Rows = ds.Len()
	stats.Columns = len(schema.Columns())
	return ds, stats
}

// rowFlags notes the recoveries applied to one row.
type rowFlags struct {
	invalidDate   bool
	filledJournal bool
	filledSource  bool
}

// cleanRow converts row i of t into a Record.
func cleanRow(t *table.Table, i int, schema types.Schema) (rec types.Record, flags rowFlags) {
	if schema.ID {
		rec.ID = t.Cell(i, types.ColumnID)
	}
	if schema.Title {
		rec.Title = normalizeText(t.Cell(i, types.ColumnTitle))
	}
	if schema.Abstract {
		rec.Abstract = normalizeText(t.Cell(i, types.ColumnAbstract))
		rec.AbstractWordCount = WordCount(rec.Abstract)
	}
	if schema.Authors {
		rec.Authors = normalizeText(t.Cell(i, types.ColumnAuthors))
	}
	if schema.Journal {
		journal := normalizeText(t.Cell(i, types.ColumnJournal))
		flags.filledJournal = journal == ""
		rec.Journal = FillJournal(journal)
	}
	if schema.Source {
		source := normalizeText(t.Cell(i, types.ColumnSource))
		flags.filledSource = source == ""
		rec.Source = FillSource(source)
	}
	if schema.PublishTime {
		cell := t.Cell(i, types.ColumnPublishTime)
		if cell.Valid {
			if d, ok := ParseDate(cell.String); ok {
				rec.PublishTime = sql.NullTime{Time: d, Valid: true}
				rec.PublishYear = sql.NullInt64{Int64: int64(d.Year()), Valid: true}
			} else {
				flags.invalidDate = true
			}
		}
	}
	return rec, flags
}

// dedupKey returns the identity used for deduplication. With an identifier
// column, rows without an identifier are never considered duplicates.
// Without identifier or title columns nothing is deduplicated.
func dedupKey(rec types.Record, schema types.Schema) (string, bool) {
	if schema.ID {
		return rec.ID.String, rec.ID.Valid
	}
	if !schema.Title {
		return "", false
	}
	return rec.Title, true
}

// normalizeText trims a text cell. Null cells and the literal "nan" become "".
func normalizeText(v sql.NullString) string {
	if !v.Valid {
		return ""
	}
	s := strings.TrimSpace(v.String)
	if s == "nan" {
		return ""
	}
	return s
}

// FillJournal applies the missing-journal policy.
func FillJournal(journal string) string {
	if journal == "" {
		return types.UnknownJournal
	}
	return journal
}

// FillSource applies the missing-source policy.
func FillSource(source string) string {
	if source == "" {
		return types.UnknownSource
	}
	return source
}

// WordCount returns the number of whitespace-delimited tokens in s.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

// Encode lays the dataset out as a table using the schema's output columns.
// Null values become empty cells; dates are written as YYYY-MM-DD.
func Encode(ds *types.Dataset) *table.Table {
	cols := ds.Schema.Columns()
	rows := make([][]string, len(ds.Records))
	for i, rec := range ds.Records {
		row := make([]string, len(cols))
		for j, c := range cols {
			row[j] = encodeField(rec, c)
		}
		rows[i] = row
	}
	return table.New(cols, rows)
}

func encodeField(rec types.Record, column string) string {
	switch column {
	case types.ColumnID:
		return rec.ID.String
	case types.ColumnTitle:
		return rec.Title
	case types.ColumnAbstract:
		return rec.Abstract
	case types.ColumnPublishTime:
		if !rec.PublishTime.Valid {
			return ""
		}
		return rec.PublishTime.Time.Format(time.DateOnly)
	case types.ColumnJournal:
		return rec.Journal
	case types.ColumnAuthors:
		return rec.Authors
	case types.ColumnSource:
		return rec.Source
	case types.ColumnPublishYear:
		if !rec.PublishYear.Valid {
			return ""
		}
		return strconv.FormatInt(rec.PublishYear.Int64, 10)
	case types.ColumnAbstractWordCount:
		return strconv.Itoa(rec.AbstractWordCount)
	}
	return ""
}

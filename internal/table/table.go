// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package table loads and writes CSV tables for the cleaning pipeline and the
// dashboard. Cells are kept as raw strings; missing-value markers are turned
// into nulls by Cell so callers never see export-specific sentinels.
package table

import (
	"database/sql"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// missingMarkers are cell values treated as absent at the parse boundary.
var missingMarkers = map[string]struct{}{
	"":     {},
	"NA":   {},
	"N/A":  {},
	"n/a":  {},
	"NaN":  {},
	"nan":  {},
	"-nan": {},
	"null": {},
	"NULL": {},
	"None": {},
	"<NA>": {},
	"#N/A": {},
}

// IsMissing reports whether a raw cell value denotes a missing value.
func IsMissing(v string) bool {
	_, ok := missingMarkers[v]
	return ok
}

// Table is a header plus string rows, all of equal width.
type Table struct {
	Header []string
	Rows   [][]string

	index map[string]int
}

// New builds a Table from a header and rows.
func New(header []string, rows [][]string) *Table {
	t := &Table{Header: header, Rows: rows, index: make(map[string]int, len(header))}
	for i, h := range header {
		if _, dup := t.index[h]; !dup {
			t.index[h] = i
		}
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

// Cell returns the value at row for column. The result is null when the
// column does not exist or the cell holds a missing-value marker.
func (t *Table) Cell(row int, column string) sql.NullString {
	i, ok := t.index[column]
	if !ok || i >= len(t.Rows[row]) {
		return sql.NullString{}
	}
	v := t.Rows[row][i]
	if IsMissing(v) {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}

// Read loads the CSV at path. The first line is the header. No type
// detection is applied: every column is read as text.
func Read(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	// dataframe rejects a header without rows; read those as an empty table.
	header, empty, err := peekHeader(f)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if empty {
		return New(header, nil), nil
	}
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewinding %s: %w", path, err)
	}

	df := dataframe.ReadCSV(f,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, df.Err)
	}

	records := df.Records()
	if len(records) == 0 {
		return nil, fmt.Errorf("parsing %s: missing header row", path)
	}
	return New(records[0], records[1:]), nil
}

// peekHeader reads the header row and reports whether no data row follows it.
func peekHeader(r io.Reader) ([]string, bool, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, false, errors.New("missing header row")
	}
	if err != nil {
		return nil, false, err
	}
	if _, err := cr.Read(); errors.Is(err, io.EOF) {
		return header, true, nil
	}
	return header, false, nil
}

// Select returns a copy of t holding only the named columns that exist,
// in the order given. Missing names are skipped silently.
func (t *Table) Select(columns []string) *Table {
	var (
		header []string
		idx    []int
	)
	for _, c := range columns {
		if i, ok := t.index[c]; ok {
			header = append(header, c)
			idx = append(idx, i)
		}
	}

	rows := make([][]string, len(t.Rows))
	for r, row := range t.Rows {
		out := make([]string, len(idx))
		for j, i := range idx {
			if i < len(row) {
				out[j] = row[i]
			}
		}
		rows[r] = out
	}
	return New(header, rows)
}

// Write stores t as CSV at path with a header row and no index column,
// creating the parent directory and replacing any existing file.
func Write(path string, t *Table) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if err := writeTo(f, t); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

func writeTo(f *os.File, t *Table) error {
	// dataframe cannot represent a table without rows; write the header alone.
	if len(t.Rows) == 0 {
		w := csv.NewWriter(f)
		if err := w.Write(t.Header); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}

	records := make([][]string, 0, len(t.Rows)+1)
	records = append(records, t.Header)
	records = append(records, t.Rows...)

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.NaNValues(nil),
	)
	if df.Err != nil {
		return df.Err
	}
	return df.WriteCSV(f)
}

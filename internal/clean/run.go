// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/pdiddy/cord-insights/internal/table"
	"github.com/pdiddy/cord-insights/pkg/types"
)

// ErrNoInputData is returned when neither the raw export nor the sample exists.
var ErrNoInputData = errors.New("no input data: provide metadata.csv or sample_metadata.csv")

// ErrNoData is returned when neither the cleaned dataset nor the sample exists.
var ErrNoData = errors.New("no data found: run clean or provide sample_metadata.csv")

// LocateInput returns the raw export path if it exists, otherwise the sample
// path. It returns ErrNoInputData when neither file exists.
func LocateInput(cfg types.DataConfig) (string, error) {
	for _, p := range []string{cfg.RawPath, cfg.SamplePath} {
		if p == "" {
			continue
		}
		info, err := os.Stat(p)
		if err == nil && !info.IsDir() {
			return p, nil
		}
		if err != nil && !os.IsNotExist(err) {
			return "", fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return "", ErrNoInputData
}

// Load reads the CSV at path and runs it through Clean. Nothing is written.
func Load(path string) (*types.Dataset, Stats, error) {
	raw, err := table.Read(path)
	if err != nil {
		return nil, Stats{}, err
	}
	ds, stats := Clean(raw)
	ds.Path = path
	return ds, stats, nil
}

// LoadCleaned reads the cleaned dataset, falling back to the sample export.
// The sample is cleaned in memory; nothing is written. It returns ErrNoData
// when neither file exists.
func LoadCleaned(cfg types.DataConfig, w io.Writer) (*types.Dataset, error) {
	path, err := LocateInput(types.DataConfig{
		RawPath:    cfg.CleanedPath,
		SamplePath: cfg.SamplePath,
	})
	if err != nil {
		if errors.Is(err, ErrNoInputData) {
			return nil, ErrNoData
		}
		return nil, err
	}

	ds, stats, err := Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	fmt.Fprintf(w, "loaded %s: %d records\n", path, stats.Rows)
	return ds, nil
}

// Save writes the dataset to path as CSV, replacing any previous file.
func Save(path string, ds *types.Dataset) error {
	return table.Write(path, Encode(ds))
}

// Result reports a cleaning run.
type Result struct {
	Input  string `json:"input" yaml:"input"`
	Output string `json:"output" yaml:"output"`
	Stats  Stats  `json:"stats" yaml:"stats"`
}

// Run locates the input, cleans it, and writes the cleaned dataset to
// cfg.CleanedPath. Progress is written to w. When no input exists it
// returns ErrNoInputData and writes nothing.
func Run(cfg types.DataConfig, w io.Writer) (Result, error) {
	input, err := LocateInput(cfg)
	if err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "loading %s\n", filepath.Base(input))
	ds, stats, err := Load(input)
	if err != nil {
		return Result{}, err
	}
	fmt.Fprintf(w, "initial shape: %d rows x %d columns\n", stats.InputRows, stats.InputColumns)

	if err := Save(cfg.CleanedPath, ds); err != nil {
		return Result{}, err
	}

	fmt.Fprintf(w, "cleaned shape: %d rows x %d columns\n", stats.Rows, stats.Columns)
	fmt.Fprintf(w, "duplicates: %d, invalid dates: %d, filled journals: %d, filled sources: %d\n",
		stats.Duplicates, stats.InvalidDates, stats.FilledJournals, stats.FilledSources)
	fmt.Fprintf(w, "saved cleaned data to %s\n", cfg.CleanedPath)

	return Result{Input: input, Output: cfg.CleanedPath, Stats: stats}, nil
}

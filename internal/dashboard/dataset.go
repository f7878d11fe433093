// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package dashboard serves the interactive view over a cleaned dataset:
// year and source filters, summary metrics, charts, a title word cloud, and
// a preview table. The dataset is loaded once by the caller and shared
// read-only by every request.
package dashboard

import (
	"io"

	"github.com/pdiddy/cord-insights/internal/clean"
	"github.com/pdiddy/cord-insights/pkg/types"
)

// ErrNoData is returned when neither the cleaned dataset nor the sample exists.
var ErrNoData = clean.ErrNoData

// Load returns the dataset the server renders. It is meant to be called once
// per process and the result passed to NewServer.
func Load(cfg types.DataConfig, w io.Writer) (*types.Dataset, error) {
	return clean.LoadCleaned(cfg, w)
}

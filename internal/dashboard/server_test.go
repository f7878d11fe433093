// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dashboard

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-insights/pkg/types"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func get(t *testing.T, r http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func document(t *testing.T, w *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(w.Body)
	require.NoError(t, err)
	return doc
}

func metricValue(doc *goquery.Document, id string) string {
	return strings.TrimSpace(doc.Find("#" + id + " .value").Text())
}

// --- Index ---

func TestIndexUnfiltered(t *testing.T) {
	r := NewServer(testDataset(), DefaultSettings()).Router()
	w := get(t, r, "/")
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, w)
	assert.Equal(t, "5", metricValue(doc, "metric-papers"))
	assert.Equal(t, "4", metricValue(doc, "metric-journals"))
	assert.Equal(t, "13.0", metricValue(doc, "metric-words"))
	assert.Equal(t, 5, doc.Find("#preview tbody tr").Length())

	var years []string
	doc.Find("#year option").Each(func(_ int, s *goquery.Selection) {
		years = append(years, s.Text())
	})
	assert.Equal(t, []string{"All", "2019", "2020", "2021"}, years)
	assert.Equal(t, 4, doc.Find("#source option").Length())
}

func TestIndexFiltered(t *testing.T) {
	r := NewServer(testDataset(), DefaultSettings()).Router()
	doc := document(t, get(t, r, "/?year=2020&source=WHO"))

	assert.Equal(t, "1", metricValue(doc, "metric-papers"))
	assert.Equal(t, "2020", doc.Find("#year option[selected]").Text())
	assert.Equal(t, "WHO", doc.Find("#source option[selected]").Text())

	src, ok := doc.Find("#chart-words").Attr("src")
	require.True(t, ok)
	assert.Equal(t, "/charts/words?source=WHO&year=2020", src)

	// Year and journal charts ignore the sidebar filters.
	yearsSrc, _ := doc.Find("#chart-years").Attr("src")
	assert.Equal(t, "/charts/years", yearsSrc)
}

func TestIndexEmptySelection(t *testing.T) {
	r := NewServer(testDataset(), DefaultSettings()).Router()
	w := get(t, r, "/?year=1900")
	require.Equal(t, http.StatusOK, w.Code)

	doc := document(t, w)
	assert.Equal(t, "0", metricValue(doc, "metric-papers"))
	assert.Equal(t, "0", metricValue(doc, "metric-journals"))
	assert.Equal(t, "0.0", metricValue(doc, "metric-words"))
	assert.Equal(t, 1, doc.Find("#no-words").Length())
	assert.Zero(t, doc.Find("#preview tbody tr").Length())
}

// --- API ---

func TestSummaryJSON(t *testing.T) {
	r := NewServer(testDataset(), DefaultSettings()).Router()
	w := get(t, r, "/api/summary?source=PMC")
	require.Equal(t, http.StatusOK, w.Code)

	var v View
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v))
	assert.Equal(t, Filter{Source: "PMC"}, v.Filter)
	assert.Equal(t, 2, v.Metrics.Papers)
	assert.Len(t, v.ByYear, 3)
	assert.Len(t, v.Preview.Rows, 2)
}

// --- Charts ---

func TestCharts(t *testing.T) {
	r := NewServer(testDataset(), DefaultSettings()).Router()
	for _, target := range []string{"/charts/years", "/charts/journals", "/charts/words?year=2020"} {
		t.Run(target, func(t *testing.T) {
			w := get(t, r, target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
			assert.Contains(t, w.Body.String(), "echarts")
		})
	}
}

func TestWordCloudFollowsFilter(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WordCloud(BuildView(testDataset(), Filter{Year: 2019}, DefaultSettings()).Words).Render(&buf))
	assert.Contains(t, buf.String(), "coronavirus")
	assert.NotContains(t, buf.String(), "vaccine")
}

func TestYearChartEmptySubtitle(t *testing.T) {
	tests := []struct {
		name     string
		hasDates bool
		want     string
	}{
		{"no column", false, "No publish_time column available"},
		{"no parseable dates", true, "No parseable publication dates"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, YearChart(nil, tt.hasDates).Render(&buf))
			assert.Contains(t, buf.String(), tt.want)
		})
	}
}

func TestYearsChartWithUnparseableDates(t *testing.T) {
	ds := &types.Dataset{
		Schema:  types.Schema{ID: true, PublishTime: true},
		Records: []types.Record{{Title: "Undated"}},
	}
	w := get(t, NewServer(ds, DefaultSettings()).Router(), "/charts/years")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No parseable publication dates")
	assert.NotContains(t, w.Body.String(), "No publish_time column available")
}

// --- Load ---

func TestLoadPrefersCleaned(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DataConfig{
		CleanedPath: filepath.Join(dir, "cleaned_metadata.csv"),
		SamplePath:  filepath.Join(dir, "sample_metadata.csv"),
	}
	require.NoError(t, os.WriteFile(cfg.CleanedPath, []byte(
		"cord_uid,title,publish_time,journal,source_x,pub_year\na,Cleaned,2020-01-02,J,PMC,2020\n"), 0o644))
	require.NoError(t, os.WriteFile(cfg.SamplePath, []byte("cord_uid,title\nb,Sample\n"), 0o644))

	ds, err := Load(cfg, io.Discard)
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.Equal(t, "Cleaned", ds.Records[0].Title)
	assert.Equal(t, int64(2020), ds.Records[0].PublishYear.Int64)
}

func TestLoadFallsBackToSample(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DataConfig{
		CleanedPath: filepath.Join(dir, "cleaned_metadata.csv"),
		SamplePath:  filepath.Join(dir, "sample_metadata.csv"),
	}
	require.NoError(t, os.WriteFile(cfg.SamplePath, []byte("cord_uid,title,journal\nb,Sample,\n"), 0o644))

	ds, err := Load(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Unknown", ds.Records[0].Journal)
	_, statErr := os.Stat(cfg.CleanedPath)
	assert.True(t, os.IsNotExist(statErr), "loading never writes")
}

func TestLoadHeaderOnlyCleanedFile(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DataConfig{
		CleanedPath: filepath.Join(dir, "cleaned_metadata.csv"),
		SamplePath:  filepath.Join(dir, "sample_metadata.csv"),
	}
	require.NoError(t, os.WriteFile(cfg.CleanedPath, []byte("cord_uid,title,journal\n"), 0o644))

	ds, err := Load(cfg, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, ds.Len())

	w := get(t, NewServer(ds, DefaultSettings()).Router(), "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "0", metricValue(document(t, w), "metric-papers"))
}

func TestLoadNoData(t *testing.T) {
	dir := t.TempDir()
	_, err := Load(types.DataConfig{
		CleanedPath: filepath.Join(dir, "a.csv"),
		SamplePath:  filepath.Join(dir, "b.csv"),
	}, io.Discard)
	assert.ErrorIs(t, err, ErrNoData)
}

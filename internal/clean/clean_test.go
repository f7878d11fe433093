// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package clean

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/cord-insights/internal/table"
	"github.com/pdiddy/cord-insights/pkg/types"
)

// --- test helpers ---

var fullHeader = []string{"cord_uid", "sha", "title", "abstract", "publish_time", "journal", "authors", "source_x"}

func rawTable(header []string, rows ...[]string) *table.Table {
	return table.New(header, rows)
}

func writeCSV(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

const sampleCSV = `cord_uid,sha,title,abstract,publish_time,journal,authors,source_x
ug7v899j,abc, Clinical features of culture-proven Mycoplasma pneumoniae infections ,a b c,2001-07-04,BMC Infect Dis,"Madani, Tariq A",PMC
02tnwd4m,,Nitric oxide: a pro-inflammatory mediator,,2000-08-15,,"Vliet, Albert van der",
ug7v899j,,Duplicate row,x y,2005-01-01,Other,"Someone",PMC
ejv2xln0,,Surfactant protein-D and pulmonary host defense,nan,not-a-date,Respir Res,"Crouch, Erika C",Medline
`

// --- Clean ---

func TestCleanDropsDuplicateIDsKeepingFirst(t *testing.T) {
	raw := rawTable(fullHeader,
		[]string{"id1", "", "First", "one two", "2020-01-01", "J1", "A", "PMC"},
		[]string{"id1", "", "Second", "three", "2021-01-01", "J2", "B", "WHO"},
		[]string{"id1", "", "Third", "", "2022-01-01", "J3", "C", "PMC"},
		[]string{"id2", "", "Other", "", "", "J1", "D", "PMC"},
	)

	ds, stats := Clean(raw)

	require.Len(t, ds.Records, 2)
	assert.Equal(t, 2, stats.Duplicates)
	first := ds.Records[0]
	assert.Equal(t, "id1", first.ID.String)
	assert.Equal(t, "First", first.Title)
	assert.Equal(t, "J1", first.Journal)
	assert.Equal(t, int64(2020), first.PublishYear.Int64)
	assert.Equal(t, "id2", ds.Records[1].ID.String)
}

func TestCleanKeepsRowsWithoutID(t *testing.T) {
	raw := rawTable([]string{"cord_uid", "title"},
		[]string{"", "A"},
		[]string{"", "B"},
	)
	ds, stats := Clean(raw)
	assert.Len(t, ds.Records, 2)
	assert.Zero(t, stats.Duplicates)
	assert.False(t, ds.Records[0].ID.Valid)
}

func TestCleanDedupesByTitleWithoutIDColumn(t *testing.T) {
	raw := rawTable([]string{"title", "journal"},
		[]string{"Same title", "J1"},
		[]string{"  Same title ", "J2"},
		[]string{"Different", "J3"},
	)
	ds, stats := Clean(raw)
	require.Len(t, ds.Records, 2)
	assert.Equal(t, 1, stats.Duplicates)
	assert.Equal(t, "J1", ds.Records[0].Journal)
	assert.Equal(t, "Different", ds.Records[1].Title)
}

func TestCleanKeepsAllRowsWithoutIDOrTitleColumns(t *testing.T) {
	raw := rawTable([]string{"journal", "source_x"},
		[]string{"J1", "PMC"},
		[]string{"J2", "WHO"},
		[]string{"J1", "PMC"},
	)
	ds, stats := Clean(raw)
	assert.Len(t, ds.Records, 3)
	assert.Zero(t, stats.Duplicates)
}

func TestCleanSentinels(t *testing.T) {
	raw := rawTable([]string{"cord_uid", "journal", "source_x"},
		[]string{"a", "", ""},
		[]string{"b", "  ", "nan"},
		[]string{"c", "NA", " WHO "},
	)
	ds, stats := Clean(raw)
	require.Len(t, ds.Records, 3)

	for _, rec := range ds.Records[:2] {
		assert.Equal(t, "Unknown", rec.Journal)
		assert.Equal(t, "unknown", rec.Source)
	}
	assert.Equal(t, "Unknown", ds.Records[2].Journal)
	assert.Equal(t, "WHO", ds.Records[2].Source)
	assert.Equal(t, 3, stats.FilledJournals)
	assert.Equal(t, 2, stats.FilledSources)
}

func TestCleanYearDerivation(t *testing.T) {
	raw := rawTable([]string{"cord_uid", "publish_time"},
		[]string{"a", "2020-05-01"},
		[]string{"b", "not-a-date"},
		[]string{"c", ""},
		[]string{"d", "2019"},
	)
	ds, stats := Clean(raw)
	require.Len(t, ds.Records, 4)

	assert.True(t, ds.Records[0].PublishYear.Valid)
	assert.Equal(t, int64(2020), ds.Records[0].PublishYear.Int64)
	assert.Equal(t, time.Date(2020, 5, 1, 0, 0, 0, 0, time.UTC), ds.Records[0].PublishTime.Time)

	assert.False(t, ds.Records[1].PublishTime.Valid)
	assert.False(t, ds.Records[1].PublishYear.Valid)
	assert.False(t, ds.Records[2].PublishYear.Valid)
	assert.Equal(t, int64(2019), ds.Records[3].PublishYear.Int64)
	assert.Equal(t, 1, stats.InvalidDates)
}

func TestCleanWordCount(t *testing.T) {
	raw := rawTable([]string{"cord_uid", "abstract"},
		[]string{"a", "a b c"},
		[]string{"b", ""},
		[]string{"c", "nan"},
		[]string{"d", "  spaced\tout\nwords  "},
	)
	ds, _ := Clean(raw)
	counts := make([]int, len(ds.Records))
	for i, r := range ds.Records {
		counts[i] = r.AbstractWordCount
	}
	assert.Equal(t, []int{3, 0, 0, 3}, counts)
}

func TestCleanSchemaOmitsAbsentColumns(t *testing.T) {
	raw := rawTable([]string{"title", "url", "abstract"},
		[]string{"T", "http://x", "one"},
	)
	ds, stats := Clean(raw)

	assert.Equal(t, types.Schema{Title: true, Abstract: true}, ds.Schema)
	assert.Equal(t, []string{"title", "abstract", "abstract_word_count"}, ds.Schema.Columns())
	assert.Equal(t, 3, stats.InputColumns)
	assert.Equal(t, 3, stats.Columns)
	assert.Empty(t, ds.Records[0].Journal, "absent journal column is not filled")
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2020-05-01", "2020-05-01", true},
		{"2020", "2020-01-01", true},
		{"2020-03", "2020-03-01", true},
		{"2020-05-01 13:45:00", "2020-05-01", true},
		{"2018/05/03", "2018-05-03", true},
		{"not-a-date", "", false},
		{"   ", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got.Format(time.DateOnly))
			}
		})
	}
}

// --- Encode ---

func TestEncodeColumnOrderAndNulls(t *testing.T) {
	raw := rawTable(fullHeader,
		[]string{"x1", "", "T", "a b", "bad", "", "Au", ""},
	)
	ds, _ := Clean(raw)
	out := Encode(ds)

	assert.Equal(t, []string{
		"cord_uid", "title", "abstract", "publish_time", "journal", "authors", "source_x",
		"pub_year", "abstract_word_count",
	}, out.Header)
	assert.Equal(t, []string{"x1", "T", "a b", "", "Unknown", "Au", "unknown", "", "2"}, out.Rows[0])
}

// --- Run ---

func testConfig(dir string) types.DataConfig {
	return types.DataConfig{
		RawPath:     filepath.Join(dir, "data", "metadata.csv"),
		SamplePath:  filepath.Join(dir, "data", "sample_metadata.csv"),
		CleanedPath: filepath.Join(dir, "out", "cleaned_metadata.csv"),
	}
}

func TestRunNoInputData(t *testing.T) {
	cfg := testConfig(t.TempDir())
	_, err := Run(cfg, io.Discard)
	require.ErrorIs(t, err, ErrNoInputData)
	_, statErr := os.Stat(cfg.CleanedPath)
	assert.True(t, os.IsNotExist(statErr), "no output is written")
}

func TestRunFallsBackToSample(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeCSV(t, cfg.SamplePath, sampleCSV)

	res, err := Run(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, cfg.SamplePath, res.Input)
	assert.Equal(t, 4, res.Stats.InputRows)
	assert.Equal(t, 3, res.Stats.Rows)
	assert.Equal(t, 1, res.Stats.Duplicates)

	got, err := table.Read(cfg.CleanedPath)
	require.NoError(t, err)
	assert.Equal(t, 3, got.Len())
	assert.NotContains(t, got.Header, "sha")
	assert.Equal(t, "Clinical features of culture-proven Mycoplasma pneumoniae infections", got.Rows[0][1])
	assert.Equal(t, "Unknown", got.Rows[1][4])
	assert.Equal(t, "unknown", got.Rows[1][6])
}

func TestRunPrefersRawExport(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeCSV(t, cfg.SamplePath, sampleCSV)
	writeCSV(t, cfg.RawPath, "cord_uid,title\nr1,Raw paper\n")

	res, err := Run(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, cfg.RawPath, res.Input)
	assert.Equal(t, 1, res.Stats.Rows)
}

func TestRunHeaderOnlyInput(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeCSV(t, cfg.RawPath, "cord_uid,title,journal\n")

	res, err := Run(cfg, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, res.Stats.InputRows)
	assert.Zero(t, res.Stats.Rows)

	data, err := os.ReadFile(cfg.CleanedPath)
	require.NoError(t, err)
	assert.Equal(t, "cord_uid,title,journal\n", string(data))

	ds, err := LoadCleaned(cfg, io.Discard)
	require.NoError(t, err)
	assert.Zero(t, ds.Len())
	assert.True(t, ds.Schema.Journal)
}

func TestLoadCleanedFallsBackToSample(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeCSV(t, cfg.SamplePath, sampleCSV)

	ds, err := LoadCleaned(cfg, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, cfg.SamplePath, ds.Path)
	_, statErr := os.Stat(cfg.CleanedPath)
	assert.True(t, os.IsNotExist(statErr), "loading never writes")
}

func TestLoadCleanedNoData(t *testing.T) {
	_, err := LoadCleaned(testConfig(t.TempDir()), io.Discard)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := testConfig(t.TempDir())
	writeCSV(t, cfg.RawPath, sampleCSV)

	_, err := Run(cfg, io.Discard)
	require.NoError(t, err)
	first, err := os.ReadFile(cfg.CleanedPath)
	require.NoError(t, err)

	_, err = Run(cfg, io.Discard)
	require.NoError(t, err)
	second, err := os.ReadFile(cfg.CleanedPath)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

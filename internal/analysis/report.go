// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package analysis

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/cord-insights/pkg/types"
)

// Format selects the report encoding.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// WriteReport encodes s to w in the requested format.
func WriteReport(w io.Writer, s types.Summary, format Format) error {
	switch format {
	case FormatText, "":
		return writeText(w, s)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(s)
	default:
		return fmt.Errorf("unsupported format %q: use text, yaml, or json", format)
	}
}

func writeText(w io.Writer, s types.Summary) error {
	fmt.Fprintf(w, "Dataset: %s (%s records)\n\n", s.Source, humanize.Comma(int64(s.Records)))

	fmt.Fprintln(w, "Publications by year:")
	if len(s.ByYear) == 0 {
		fmt.Fprintln(w, "  (no publication years)")
	}
	for _, y := range s.ByYear {
		fmt.Fprintf(w, "  %d  %8s\n", y.Year, humanize.Comma(int64(y.Count)))
	}

	fmt.Fprintln(w, "\nTop journals:")
	writeCategories(w, s.Journals)

	fmt.Fprintln(w, "\nSources:")
	writeCategories(w, s.Sources)

	fmt.Fprintln(w, "\nTop title words:")
	for i, wc := range s.TitleWords {
		fmt.Fprintf(w, "  %2d. %-24s %8s\n", i+1, wc.Word, humanize.Comma(int64(wc.Count)))
	}
	_, err := fmt.Fprintln(w, strings.Repeat("-", 40))
	return err
}

func writeCategories(w io.Writer, counts []types.CategoryCount) {
	if len(counts) == 0 {
		fmt.Fprintln(w, "  (none)")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(w, "  %-48s %8s\n", Truncate(c.Name, 48), humanize.Comma(int64(c.Count)))
	}
}

// Truncate shortens s to at most n runes, ending in "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

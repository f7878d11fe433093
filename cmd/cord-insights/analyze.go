package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cord-insights/internal/analysis"
	"github.com/pdiddy/cord-insights/internal/clean"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Print publication counts, top journals, sources, and title words",
	Long: `Analyze loads the cleaned dataset (or the sample export) and prints
publications per year, the most frequent journals, the source distribution,
and the most frequent title words. Use --format for YAML or JSON output.`,
	RunE: runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("format", "text", "output format: text, yaml, or json")
	analyzeCmd.Flags().Int("top-journals", 0, "number of journals to list (default 10)")
	analyzeCmd.Flags().Int("top-words", 0, "number of title words to list (default 30)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if n, _ := cmd.Flags().GetInt("top-journals"); n > 0 {
		cfg.Analysis.TopJournals = n
	}
	if n, _ := cmd.Flags().GetInt("top-words"); n > 0 {
		cfg.Analysis.TopWords = n
	}
	format, _ := cmd.Flags().GetString("format")

	ds, err := clean.LoadCleaned(cfg.Data, os.Stderr)
	if err != nil {
		return err
	}

	return analysis.WriteReport(os.Stdout, analysis.Summarize(ds, cfg.Analysis), analysis.Format(format))
}

package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/cord-insights/internal/clean"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Clean the raw metadata export into the cleaned dataset",
	Long: `Clean reads metadata.csv (or the sample export when it is missing), keeps
the identifier, title, abstract, publish_time, journal, authors, and source_x
columns, normalizes text, parses dates, derives pub_year and
abstract_word_count, fills missing journals and sources, drops duplicate
papers, and writes the cleaned CSV. An existing cleaned file is replaced.`,
	RunE: runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	_, err = clean.Run(cfg.Data, os.Stdout)
	return err
}

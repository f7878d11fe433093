// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-insights/internal/analysis"
	"github.com/pdiddy/cord-insights/internal/catalog"
	"github.com/pdiddy/cord-insights/internal/clean"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the SQLite paper catalog (index, search, runs)",
	Long: `Catalog keeps a local SQLite copy of the cleaned dataset with full-text
search over titles and abstracts. Use subcommands to rebuild it, query it,
or list previous index runs.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Load the cleaned dataset into the catalog",
	Long: `Index reads the cleaned dataset (or the sample export) and replaces the
catalog contents with it in a single transaction. Each run is recorded with
a run id.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := clean.LoadCleaned(cfg.Data, os.Stdout)
	if err != nil {
		return err
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	_, err = store.Index(context.Background(), ds, os.Stdout)
	return err
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog by text, year, and source",
	Long: `Search runs an FTS5 full-text query over titles and abstracts, optionally
narrowed by --year and --source. Without a query, the filters alone select
papers ordered by year and title.`,
	RunE: runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := searchOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --year, or --source")
	}

	store, err := catalog.NewStore(cfg.Catalog)
	if err != nil {
		return err
	}
	defer store.Close()

	results, err := store.Search(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatSearchOutput(results, jsonOutput)
}

func formatSearchOutput(results []catalog.Result, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-4s  %-10s  %-50s  %-24s  %-10s  %s\n",
		"Rank", "ID", "Title", "Journal", "Source", "Year")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 112))

	for i, r := range results {
		year := ""
		if r.PublishYear != 0 {
			year = fmt.Sprint(r.PublishYear)
		}
		fmt.Fprintf(os.Stdout, "%-4d  %-10s  %-50s  %-24s  %-10s  %s\n",
			i+1, r.CordUID, analysis.Truncate(r.Title, 50), analysis.Truncate(r.Journal, 24), analysis.Truncate(r.Source, 10), year)
	}

	fmt.Fprintf(os.Stdout, "\n%s results\n", humanize.Comma(int64(len(results))))
	return nil
}

// --- runs subcommand ---

var catalogRunsCmd = &cobra.Command{
	Use:   "runs",
	Short: "List catalog index runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := catalog.NewStore(cfg.Catalog)
		if err != nil {
			return err
		}
		defer store.Close()

		runs, err := store.Runs(context.Background())
		if err != nil {
			return err
		}
		for _, r := range runs {
			fmt.Printf("%s  %s  %8s  %s (%s)\n", r.ID, r.IndexedAt.Format("2006-01-02 15:04:05"),
				humanize.Comma(int64(r.Records)), r.SourcePath, humanize.Time(r.IndexedAt))
		}
		return nil
	},
}

// --- shared helpers ---

func searchOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	year, _ := cmd.Flags().GetInt("year")
	source, _ := cmd.Flags().GetString("source")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      strings.Join(args, " "),
		Year:       year,
		Source:     source,
		MaxResults: limit,
	}
}

func init() {
	catalogCmd.PersistentFlags().String("catalog-dir", "data/catalog", "directory containing papers.db")
	catalogCmd.PersistentFlags().Int("max-results", 20, "default maximum number of search results")
	viper.BindPFlag("catalog.dir", catalogCmd.PersistentFlags().Lookup("catalog-dir"))
	viper.BindPFlag("catalog.max_results", catalogCmd.PersistentFlags().Lookup("max-results"))

	catalogSearchCmd.Flags().Int("year", 0, "filter by publication year")
	catalogSearchCmd.Flags().String("source", "", "filter by source_x value")
	catalogSearchCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogSearchCmd.Flags().Bool("json", false, "output results as JSON")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogRunsCmd)
	rootCmd.AddCommand(catalogCmd)
}

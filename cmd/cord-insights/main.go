// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cord-insights CLI.
// Stages are subcommands: clean writes the cleaned dataset, analyze prints
// the aggregation views, dashboard serves the interactive view, and catalog
// maintains a searchable SQLite copy.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-insights/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cord-insights CLI.
var rootCmd = &cobra.Command{
	Use:   "cord-insights",
	Short: "Clean and explore CORD-19 paper metadata",
	Long: `cord-insights cleans a CORD-19 metadata export and reports descriptive
statistics about it: publications per year, top journals, sources, and the
most frequent title words.

Run clean first to write data/cleaned_metadata.csv, then analyze or
dashboard to explore it. Without metadata.csv the sample file is used.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./cord-insights.yaml or ~/.config/cord-insights/config.yaml)")
	pf.String("raw", "data/metadata.csv", "raw metadata export")
	pf.String("sample", "data/sample_metadata.csv", "fallback sample export")
	pf.String("cleaned", "data/cleaned_metadata.csv", "cleaned dataset path")

	viper.BindPFlag("data.raw", pf.Lookup("raw"))
	viper.BindPFlag("data.sample", pf.Lookup("sample"))
	viper.BindPFlag("data.cleaned", pf.Lookup("cleaned"))
}

func initConfig() {
	if err := godotenv.Load(); err == nil {
		fmt.Fprintln(os.Stderr, "Loaded .env")
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cord-insights")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cord-insights"))
		}
	}

	viper.SetEnvPrefix("CORD_INSIGHTS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("analysis.top_journals", 10)
	viper.SetDefault("analysis.top_words", 30)
	viper.SetDefault("dashboard.addr", ":8501")
	viper.SetDefault("dashboard.preview_rows", 20)
	viper.SetDefault("dashboard.cloud_words", 200)
	viper.SetDefault("catalog.dir", "data/catalog")
	viper.SetDefault("catalog.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// loadConfig resolves the effective configuration: flags, then environment,
// then config file, then defaults.
func loadConfig() (types.Config, error) {
	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/cord-insights/internal/dashboard"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Serve the interactive metadata dashboard",
	Long: `Dashboard loads the cleaned dataset once (falling back to the sample export)
and serves an HTML dashboard with year and source filters, key numbers,
publications over time, top journals, a title word cloud, and a preview of
the filtered rows. A JSON view is available at /api/summary.`,
	RunE: runDashboard,
}

func init() {
	dashboardCmd.Flags().String("addr", ":8501", "listen address")
	viper.BindPFlag("dashboard.addr", dashboardCmd.Flags().Lookup("addr"))

	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ds, err := dashboard.Load(cfg.Data, os.Stdout)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := dashboard.NewServer(ds, dashboard.Settings{
		TopJournals: cfg.Analysis.TopJournals,
		PreviewRows: cfg.Dashboard.PreviewRows,
		CloudWords:  cfg.Dashboard.CloudWords,
	})
	return srv.Serve(ctx, cfg.Dashboard.Addr, os.Stdout)
}

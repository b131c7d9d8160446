package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/raykavin/fluid"
	"github.com/raykavin/fluid/internal/config"
	"github.com/raykavin/fluid/pkg/dashboard"
	"github.com/raykavin/fluid/pkg/export"
	"github.com/raykavin/fluid/pkg/logger"
	"github.com/raykavin/fluid/pkg/provider/fred"
	"github.com/raykavin/fluid/pkg/report"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

const (
	dateLayout = "2006-01-02"
)

// Command line flags
var (
	configFile string

	// History command flags
	startDate  string
	endDate    string
	period     string
	outputFile string

	// Econ command flags
	section string
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:           "fluid",
		Short:         "Fluid Investing dashboard",
		Version:       "1.0.0",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Configuration file (default ./fluid.yaml)")

	// Add commands
	rootCmd.AddCommand(
		buildServeCmd(),
		buildSnapshotCmd(),
		buildHistoryCmd(),
		buildEconCmd(),
		buildTickersCmd(),
		buildCatalogCmd(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Execute
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func buildServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the web dashboard",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := initializeApp()
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Serve(cmd.Context())
		},
	}
}

func buildSnapshotCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "snapshot TICKER",
		Short: "Print the key metrics of a ticker",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, _, err := initializeApp()
			if err != nil {
				return err
			}
			defer app.Close()

			symbol, metrics, err := app.Service().Snapshot(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			report.Metrics(cmd.OutOrStdout(), symbol, metrics)
			return nil
		},
	}
}

func buildHistoryCmd() *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history TICKER",
		Short: "Download daily prices and print their statistics",
		Args:  cobra.ExactArgs(1),
		RunE:  runHistory,
	}

	// Add flags
	historyCmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date (e.g. 2022-01-01)")
	historyCmd.Flags().StringVarP(&endDate, "end", "e", "", "End date, exclusive (default today)")
	historyCmd.Flags().StringVarP(&period, "period", "p", "", "Period back from the end date (e.g. 90d), instead of --start")
	historyCmd.Flags().StringVarP(&outputFile, "output", "o", "", "CSV output file (e.g. ./aapl.csv)")
	historyCmd.MarkFlagsMutuallyExclusive("start", "period")

	return historyCmd
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, log, err := initializeApp()
	if err != nil {
		return err
	}
	defer app.Close()

	// Build download options
	options, err := buildDownloadOptions()
	if err != nil {
		return err
	}

	var csvOut io.Writer = io.Discard
	if outputFile != "" {
		csvFile, err := os.Create(outputFile)
		if err != nil {
			return err
		}
		defer csvFile.Close()
		csvOut = csvFile
	}

	_, bars, err := export.NewDownloader(app.Service(), log, os.Stderr).
		Download(cmd.Context(), args[0], csvOut, options...)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	report.Summary(out, dashboard.SummarizeBars(bars))
	return report.Returns(out, bars)
}

func buildDownloadOptions() ([]export.Option, error) {
	var start, end time.Time
	var err error

	if startDate != "" {
		if start, err = time.Parse(dateLayout, startDate); err != nil {
			return nil, fmt.Errorf("invalid start date format: %w", err)
		}
	}
	if endDate != "" {
		if end, err = time.Parse(dateLayout, endDate); err != nil {
			return nil, fmt.Errorf("invalid end date format: %w", err)
		}
	}

	options := []export.Option{export.WithInterval(start, end)}
	if period != "" {
		options = append(options, export.WithPeriod(period))
	}
	return options, nil
}

func buildEconCmd() *cobra.Command {
	econCmd := &cobra.Command{
		Use:   "econ",
		Short: "Print the latest economic indicators",
		Args:  cobra.NoArgs,
		RunE:  runEcon,
	}
	econCmd.Flags().StringVar(&section, "section", "", "Only this section (title prefix or series ID)")
	return econCmd
}

func runEcon(cmd *cobra.Command, _ []string) error {
	app, log, err := initializeApp()
	if err != nil {
		return err
	}
	defer app.Close()

	if !app.EconomicsEnabled() {
		return fmt.Errorf("economic indicators: %w (set FLUID_FRED_API_KEY)", fred.ErrMissingAPIKey)
	}

	service := app.Service()
	sections := service.Catalog()
	if section != "" {
		found, ok := service.FindSection(section)
		if !ok {
			return fmt.Errorf("no economic section matches %q", section)
		}
		sections = []dashboard.Section{found}
	}

	progressBar := progressbar.Default(int64(len(sections)), "fetching")
	panels := make([]dashboard.Panel, 0, len(sections))
	for _, s := range sections {
		panels = append(panels, service.RenderSection(cmd.Context(), s))
		if err := progressBar.Add(1); err != nil {
			log.Warnf("Failed to update progress bar: %s", err.Error())
		}
	}
	if err := progressBar.Close(); err != nil {
		log.Warnf("Failed to close progress bar: %s", err.Error())
	}

	out := cmd.OutOrStdout()
	for _, panel := range panels {
		report.Section(out, panel)
	}
	return nil
}

func buildTickersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tickers",
		Short: "List the tickers of the directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, _, err := initializeApp()
			if err != nil {
				return err
			}
			defer app.Close()

			report.Tickers(cmd.OutOrStdout(), app.Service().Tickers().Labels())
			return nil
		},
	}
}

func buildCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "Print the economic sections as a configuration block",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return config.WriteSections(cmd.OutOrStdout(), cfg.Sections())
		},
	}
}

func loadConfig() (*config.Config, error) {
	if err := config.LoadDotenv(); err != nil {
		return nil, err
	}
	return config.Load(configFile)
}

// initializeApp loads .env and the configuration, then builds the application.
func initializeApp() (*fluid.App, logger.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	log, err := fluid.NewLogger(cfg.Log)
	if err != nil {
		return nil, nil, err
	}
	fluid.DefaultLog = log

	app, err := fluid.NewApp(cfg, fluid.WithLogger(log))
	if err != nil {
		return nil, nil, err
	}
	return app, log, nil
}

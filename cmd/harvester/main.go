// Package main provides the registry harvester CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
)

var rootCmd = &cobra.Command{
	Use:   "harvester",
	Short: "Corporate registry extraction pipeline",
	Long:  "Harvester collects company metadata from the registry portal, downloads registry report PDFs, extracts category-shaped records from them, and loads the results into PostgreSQL.",
}

var (
	configPath       string
	flagVerbose      bool
	flagHeadless     bool
	flagPortalURL    string
	flagDatabaseURL  string
	flagCacheDir     string
	flagQuarterStart string
	flagQuarterLabel string
	flagPageSize     int
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "Path to JSON config file")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	pf.BoolVar(&flagHeadless, "headless", true, "Run the browser headless")
	pf.StringVar(&flagPortalURL, "portal-url", "", "Registry portal landing page URL")
	pf.StringVar(&flagDatabaseURL, "database-url", "", "PostgreSQL connection URL")
	pf.StringVar(&flagCacheDir, "cache-dir", "", "Snapshot and scratch cache directory")
	pf.StringVar(&flagQuarterStart, "quarter-start", "", "Fiscal quarter start date (dd/mm/yyyy)")
	pf.StringVar(&flagQuarterLabel, "quarter-label", "", "Fiscal quarter label, e.g. FY26Q3")
	pf.IntVar(&flagPageSize, "page-size", 0, "Portal result page size")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig merges the config file, environment, and CLI flags. Flags win
// over the file, the file wins over the environment.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	var cfg config.Config
	if configPath != "" {
		loaded, err := config.LoadConfig(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = *loaded
	}
	cfg.FromEnv()

	flags := cmd.Root().PersistentFlags()
	if flags.Changed("portal-url") {
		cfg.PortalURL = flagPortalURL
	}
	if flags.Changed("database-url") {
		cfg.DatabaseURL = flagDatabaseURL
	}
	if flags.Changed("cache-dir") {
		cfg.CacheDir = flagCacheDir
	}
	if flags.Changed("quarter-start") {
		cfg.QuarterStart = flagQuarterStart
	}
	if flags.Changed("quarter-label") {
		cfg.QuarterLabel = flagQuarterLabel
	}
	if flags.Changed("page-size") {
		cfg.PageSize = flagPageSize
	}
	if flags.Changed("headless") {
		cfg.Headless = flagHeadless
	} else if configPath == "" {
		cfg.Headless = true
	}
	if flags.Changed("verbose") {
		cfg.Verbose = flagVerbose
	}

	merged := cfg.MergeWithDefaults(config.Config{})
	if err := merged.Validate(); err != nil {
		return config.Config{}, err
	}
	if merged.CacheDir == "" {
		merged.CacheDir = ".harvester-cache"
	}
	return merged, nil
}

func newLogger(cfg config.Config) *log.Logger {
	level := log.InfoLevel
	if cfg.Verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Level:           level,
	})
}

func openDB(ctx context.Context, cfg config.Config) (*db.DB, error) {
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("database URL is required (--database-url, config file, or DATABASE_URL)")
	}
	return db.Connect(ctx, cfg.DatabaseURL)
}

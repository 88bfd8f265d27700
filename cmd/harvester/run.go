package main

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/coordinator"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/notify"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline once",
	Long:  "Run executes one full cycle — collect, download, extract, then the three curation passes — and mails a summary when SMTP is configured.",
	RunE:  runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := newLogger(cfg)
	ctx := cmd.Context()

	store, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	coord := coordinator.New(cfg, store, logger)
	ops := []struct {
		name string
		run  func(context.Context) (*db.RunLogEntry, error)
	}{
		{"collect", coord.CollectMetadata},
		{"download", coord.DownloadFiles},
		{"extract", coord.ExtractData},
		{"curate categories", coord.CurateCategories},
		{"curate natures", coord.CurateNatures},
		{"curate statuses", coord.CurateStatuses},
	}

	var entries []db.RunLogEntry
	var runErr error
	for _, op := range ops {
		entry, err := op.run(ctx)
		if entry != nil {
			entries = append(entries, *entry)
		}
		if err != nil {
			if errors.Is(err, coordinator.ErrUnsupportedShape) {
				sendSummary(cfg, logger, entries)
				logger.Fatal("aborting on unrecognized document shape", "error", err)
			}
			logger.Error("operation failed, stopping pipeline", "operation", op.name, "error", err)
			runErr = err
			break
		}
	}

	sendSummary(cfg, logger, entries)
	return runErr
}

func sendSummary(cfg config.Config, logger *log.Logger, entries []db.RunLogEntry) {
	mailer := notify.New(cfg)
	if !mailer.Enabled() {
		return
	}
	if err := mailer.SendRunSummary(entries); err != nil {
		logger.Warn("failed to send summary mail", "error", err)
	}
}

package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/coordinator"
	"github.com/kavish/registry-harvester/internal/status"
)

var extractCmd = &cobra.Command{
	Use:   "extract",
	Short: "Extract records from stored documents",
	Long:  "Extract parses every stored-but-unprocessed registry PDF into a category-shaped record and persists it through the store chain.",
	RunE:  runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
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

	entry, err := coordinator.New(cfg, store, logger).ExtractData(ctx)
	if err != nil {
		if errors.Is(err, coordinator.ErrUnsupportedShape) {
			// Fail closed: a document shape we have never seen must stop the
			// whole run, not be guessed at.
			logger.Fatal("aborting on unrecognized document shape", "error", err)
		}
		return err
	}
	logger.Info("extraction finished",
		"status", status.Text(entry.Status),
		"total", entry.TotalCount,
		"processed", entry.Processed)
	return nil
}

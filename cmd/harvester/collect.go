package main

import (
	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/coordinator"
	"github.com/kavish/registry-harvester/internal/status"
)

var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect company metadata for the next unprocessed window",
	Long:  "Collect computes the next unprocessed date window from the run ledger, searches the portal over it, and persists the deduplicated result rows.",
	RunE:  runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)
}

func runCollect(cmd *cobra.Command, args []string) error {
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

	entry, err := coordinator.New(cfg, store, logger).CollectMetadata(ctx)
	if err != nil {
		return err
	}
	logger.Info("collection finished",
		"status", status.Text(entry.Status),
		"total", entry.TotalCount,
		"processed", entry.Processed)
	return nil
}

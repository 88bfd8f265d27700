package main

import (
	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/coordinator"
	"github.com/kavish/registry-harvester/internal/status"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download registry report PDFs for pending companies",
	Long:  "Download fetches the registry report for every company with no stored document, one browser session per company.",
	RunE:  runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
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

	entry, err := coordinator.New(cfg, store, logger).DownloadFiles(ctx)
	if err != nil {
		return err
	}
	logger.Info("download finished",
		"status", status.Text(entry.Status),
		"total", entry.TotalCount,
		"processed", entry.Processed)
	return nil
}

package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/coordinator"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/status"
)

var curateCmd = &cobra.Command{
	Use:   "curate",
	Short: "Canonicalize hand-typed company fields",
	Long:  "Curate relabels free-typed category, nature, and status values to their canonical spellings across the full company set.",
}

var curateCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "Canonicalize the category field",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurate(cmd, func(c *coordinator.Coordinator, ctx context.Context) (*db.RunLogEntry, error) {
			return c.CurateCategories(ctx)
		})
	},
}

var curateNaturesCmd = &cobra.Command{
	Use:   "natures",
	Short: "Canonicalize the nature field",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurate(cmd, func(c *coordinator.Coordinator, ctx context.Context) (*db.RunLogEntry, error) {
			return c.CurateNatures(ctx)
		})
	},
}

var curateStatusesCmd = &cobra.Command{
	Use:   "statuses",
	Short: "Canonicalize the status field",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCurate(cmd, func(c *coordinator.Coordinator, ctx context.Context) (*db.RunLogEntry, error) {
			return c.CurateStatuses(ctx)
		})
	},
}

func init() {
	curateCmd.AddCommand(curateCategoriesCmd, curateNaturesCmd, curateStatusesCmd)
	rootCmd.AddCommand(curateCmd)
}

func runCurate(cmd *cobra.Command, op func(*coordinator.Coordinator, context.Context) (*db.RunLogEntry, error)) error {
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

	entry, err := op(coordinator.New(cfg, store, logger), ctx)
	if err != nil {
		return err
	}
	logger.Info("curation finished",
		"operation", entry.Operation,
		"status", status.Text(entry.Status),
		"rows", entry.TotalCount,
		"changed", entry.Processed)
	return nil
}

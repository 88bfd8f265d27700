package main

import (
	"os"
	"strconv"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/kavish/registry-harvester/internal/status"
)

var statusLimit int

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show recent run ledger entries",
	Long:  "Status prints the most recent run ledger entries across all operations, newest first.",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().IntVarP(&statusLimit, "limit", "n", 20, "Number of entries to show")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	store, err := openDB(ctx, cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	entries, err := store.ListRunLog(ctx, statusLimit)
	if err != nil {
		return err
	}

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"When", "Operation", "Quarter", "Window", "Status", "Processed"})
	for _, e := range entries {
		window := time.Unix(e.WindowStart, 0).UTC().Format("02/01/2006") +
			" - " + time.Unix(e.WindowEnd, 0).UTC().Format("02/01/2006")
		t.AppendRow(table.Row{
			e.CreatedAt.Local().Format("02/01/2006 15:04"),
			e.Operation,
			e.Quarter,
			window,
			status.Text(e.Status),
			formatCounts(e.Processed, e.TotalCount),
		})
	}
	t.SetStyle(table.StyleLight)
	t.Render()
	return nil
}

func formatCounts(processed, total int) string {
	if total == 0 {
		return "-"
	}
	return strconv.Itoa(processed) + "/" + strconv.Itoa(total)
}

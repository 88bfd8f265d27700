// Package coordinator sequences the harvest operations: metadata collection,
// document download, document extraction, and post-hoc curation. It owns the
// run ledger and all resumption decisions; the collector and extractor stay
// free of persisted state.
package coordinator

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/kavish/registry-harvester/internal/config"
	"github.com/kavish/registry-harvester/internal/db"
)

// Coordinator drives the pipeline against one database and one portal.
// Operations run strictly sequentially; nothing here is safe for concurrent
// use.
type Coordinator struct {
	cfg    config.Config
	store  *db.DB
	logger *log.Logger
	now    func() time.Time
}

// New builds a coordinator over an open database connection.
func New(cfg config.Config, store *db.DB, logger *log.Logger) *Coordinator {
	return &Coordinator{
		cfg:    cfg,
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// appendOutcome writes the single ledger row every operation invocation owes,
// success or not.
func (c *Coordinator) appendOutcome(ctx context.Context, op string, win Window, code, total, processed int) (*db.RunLogEntry, error) {
	entry, err := c.store.AppendRunLog(ctx, &db.RunLogInput{
		Operation:   op,
		Quarter:     c.cfg.QuarterLabel,
		WindowStart: win.Start.Unix(),
		WindowEnd:   win.End.Unix(),
		Status:      code,
		TotalCount:  total,
		Processed:   processed,
	})
	if err != nil {
		return nil, err
	}
	c.logger.Info("run recorded",
		"operation", op,
		"status", entry.Status,
		"total", entry.TotalCount,
		"processed", entry.Processed)
	return entry, nil
}

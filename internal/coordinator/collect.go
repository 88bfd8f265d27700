package coordinator

import (
	"context"
	"errors"

	"github.com/kavish/registry-harvester/internal/collector"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/snapshot"
	"github.com/kavish/registry-harvester/internal/status"
)

// CollectMetadata runs one metadata-collection cycle: compute the next
// unprocessed window, drive a browser search over it, and persist the
// deduplicated snapshot rows as company summaries. Exactly one ledger row is
// appended whatever the outcome.
func (c *Coordinator) CollectMetadata(ctx context.Context) (*db.RunLogEntry, error) {
	win, ok, err := c.nextWindowFor(ctx, db.OpCollectMetadata)
	if err != nil {
		return nil, err
	}
	if !ok {
		c.logger.Info("quarter fully covered, nothing to collect")
		return c.appendOutcome(ctx, db.OpCollectMetadata, c.coveredWindow(), status.NoContent, 0, 0)
	}

	store, err := snapshot.NewStore(c.cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	session, err := collector.NewSession(ctx, c.cfg, c.logger)
	if err != nil {
		return nil, err
	}
	defer session.Close()

	result, collectErr := session.Collect(store, win.Start, win.End)
	if collectErr != nil {
		c.logger.Error("collection failed mid-run", "error", collectErr)
		entry, appendErr := c.appendOutcome(ctx, db.OpCollectMetadata, win,
			status.ExtractionFailed, result.Total, 0)
		if appendErr != nil {
			return nil, errors.Join(collectErr, appendErr)
		}
		return entry, collectErr
	}

	if result.Status == status.NoContent {
		return c.appendOutcome(ctx, db.OpCollectMetadata, win, status.NoContent, 0, 0)
	}

	snap, _, err := store.Latest()
	if err != nil {
		return nil, err
	}
	var processed int
	if snap != nil {
		for i := range snap.Companies {
			_, err := c.store.InsertCompanySummary(ctx, &snap.Companies[i])
			if err != nil {
				if errors.Is(err, db.ErrDuplicate) {
					c.logger.Warn("company already known", "name", snap.Companies[i].Name)
					processed++
					continue
				}
				entry, appendErr := c.appendOutcome(ctx, db.OpCollectMetadata, win,
					status.PersistenceFailed, result.Total, processed)
				if appendErr != nil {
					return nil, errors.Join(err, appendErr)
				}
				return entry, err
			}
			processed++
		}
	}

	code := status.OK
	if processed < result.Total {
		code = status.TooFewResults
	}
	if err := store.Clear(); err != nil {
		c.logger.Warn("failed to clear snapshot cache", "error", err)
	}
	return c.appendOutcome(ctx, db.OpCollectMetadata, win, code, result.Total, processed)
}

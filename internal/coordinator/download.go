package coordinator

import (
	"context"
	"errors"

	"github.com/kavish/registry-harvester/internal/collector"
	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/status"
)

// downloadBatchSize bounds how many pending companies one invocation works
// through. The remainder is picked up by the next run.
const downloadBatchSize = 100

// DownloadFiles fetches the registry report PDF for every company that has
// none stored yet. Each company gets its own browser session, torn down
// before the next begins.
func (c *Coordinator) DownloadFiles(ctx context.Context) (*db.RunLogEntry, error) {
	win, ok, err := c.nextWindowFor(ctx, db.OpDownloadFiles)
	if err != nil {
		return nil, err
	}
	if !ok {
		win = c.coveredWindow()
	}

	pending, err := c.store.ListCompaniesPendingDownload(ctx, downloadBatchSize)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		c.logger.Info("no companies pending download")
		return c.appendOutcome(ctx, db.OpDownloadFiles, win, status.NoContent, 0, 0)
	}

	var processed, missing, failed int
	for i := range pending {
		company := &pending[i]
		if err := ctx.Err(); err != nil {
			break
		}

		outcome, err := c.downloadOne(ctx, company)
		if err != nil {
			c.logger.Error("download failed", "company", company.Name, "error", err)
			failed++
			continue
		}
		switch outcome {
		case status.Created, status.OK:
			processed++
		case status.FileMissing:
			c.logger.Warn("no report available", "company", company.Name)
			missing++
		}
	}

	code := status.OK
	switch {
	case processed == len(pending):
		code = status.OK
	case processed == 0 && failed == 0:
		code = status.FileMissing
	case processed == 0:
		code = status.ExtractionFailed
	default:
		code = status.Conflict
	}
	return c.appendOutcome(ctx, db.OpDownloadFiles, win, code, len(pending), processed)
}

// downloadOne runs the full fetch-and-store cycle for a single company inside
// a dedicated browser session.
func (c *Coordinator) downloadOne(ctx context.Context, company *db.CompanyDetail) (int, error) {
	session, err := collector.NewSession(ctx, c.cfg, c.logger)
	if err != nil {
		return 0, err
	}
	defer session.Close()

	content, err := session.DownloadDocument(company)
	if err != nil {
		if errors.Is(err, collector.ErrNoDocument) {
			return status.FileMissing, nil
		}
		return 0, err
	}

	if _, err := c.store.CreateDocument(ctx, company.ID, content); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			c.logger.Warn("document already stored", "company", company.Name)
			return status.OK, nil
		}
		return 0, err
	}
	c.logger.Info("document stored", "company", company.Name, "bytes", len(content))
	return status.Created, nil
}

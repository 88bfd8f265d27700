package coordinator

import (
	"context"
	"errors"
	"fmt"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/extractor"
	"github.com/kavish/registry-harvester/internal/pdftext"
	"github.com/kavish/registry-harvester/internal/status"
)

// extractBatchSize bounds how many pending documents one invocation works
// through.
const extractBatchSize = 100

// ErrUnsupportedShape wraps an extractor abort. Extraction of a document
// whose shape was never observed in the source templates must stop the whole
// run rather than guess a schema; the CLI maps this error to a process exit.
var ErrUnsupportedShape = errors.New("unsupported document shape")

// ExtractData extracts every stored-but-unprocessed document, one at a time,
// and persists each record through the store chain. A corrupt file
// invalidates its company and is removed; an unrecognized document shape
// aborts the run after the ledger row is written.
func (c *Coordinator) ExtractData(ctx context.Context) (*db.RunLogEntry, error) {
	win, ok, err := c.nextWindowFor(ctx, db.OpExtractData)
	if err != nil {
		return nil, err
	}
	if !ok {
		win = c.coveredWindow()
	}

	pending, err := c.store.ListCompaniesPendingExtraction(ctx, extractBatchSize)
	if err != nil {
		return nil, err
	}
	if len(pending) == 0 {
		c.logger.Info("no documents pending extraction")
		return c.appendOutcome(ctx, db.OpExtractData, win, status.NoContent, 0, 0)
	}

	scratch, err := pdftext.NewScratch(c.cfg.CacheDir)
	if err != nil {
		return nil, err
	}

	var processed, corrupt, missing, failed int
	for i := range pending {
		company := &pending[i]
		if err := ctx.Err(); err != nil {
			break
		}

		code, err := c.extractOne(ctx, scratch, company)
		if err != nil {
			// Fail-closed: write the ledger row, then surface the abort.
			var shapeErr *extractor.UnsupportedShapeError
			if errors.As(err, &shapeErr) {
				entry, appendErr := c.appendOutcome(ctx, db.OpExtractData, win,
					status.ExtractionFailed, len(pending), processed)
				if appendErr != nil {
					return nil, errors.Join(err, appendErr)
				}
				return entry, fmt.Errorf("%w: company %s: %v", ErrUnsupportedShape, company.Name, shapeErr)
			}
			c.logger.Error("extraction failed", "company", company.Name, "error", err)
			failed++
			continue
		}
		switch code {
		case status.OK:
			processed++
		case status.CorruptRemoved:
			corrupt++
		case status.FileMissing:
			missing++
		default:
			failed++
		}
	}

	code := status.OK
	switch {
	case processed == len(pending):
		code = status.OK
	case processed > 0:
		code = status.Conflict
	case corrupt > 0 && corrupt+missing == len(pending):
		code = status.CorruptRemoved
	case missing == len(pending):
		code = status.FileMissing
	default:
		code = status.ExtractionFailed
	}
	c.logger.Info("extraction pass finished",
		"pending", len(pending), "processed", processed,
		"corrupt", corrupt, "missing", missing, "failed", failed)
	return c.appendOutcome(ctx, db.OpExtractData, win, code, len(pending), processed)
}

// extractOne runs the per-document state machine: materialize, extract text,
// parse sections, persist. The returned code is the document's terminal
// status; errors are reserved for run-fatal conditions and ledger plumbing.
func (c *Coordinator) extractOne(ctx context.Context, scratch *pdftext.Scratch, company *db.CompanyDetail) (int, error) {
	doc, err := c.store.GetDocumentByCompany(ctx, company.ID)
	if err != nil {
		return 0, err
	}
	if doc == nil {
		c.logger.Warn("document missing for pending company", "company", company.Name)
		return status.FileMissing, nil
	}

	path, err := scratch.Materialize(company, doc)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err := scratch.Clean(company.ID); err != nil {
			c.logger.Warn("failed to clean scratch files", "company", company.Name, "error", err)
		}
	}()

	lines, err := pdftext.ExtractLines(path)
	if err != nil {
		var corruptErr *pdftext.CorruptFileError
		if errors.As(err, &corruptErr) {
			return c.removeCorrupt(ctx, company, corruptErr)
		}
		return 0, err
	}

	record, err := extractor.Extract(lines,
		extractor.NormalizeCategory(company.Category),
		extractor.NormalizeNature(company.Nature))
	if err != nil {
		var shapeErr *extractor.UnsupportedShapeError
		if errors.As(err, &shapeErr) {
			return 0, err
		}
		c.logger.Error("document did not parse", "company", company.Name, "error", err)
		return status.ExtractionFailed, nil
	}

	code := runChain(ctx, status.OK, c.storeChain(company, record))
	if !status.IsSuccess(code) {
		c.logger.Error("store chain aborted", "company", company.Name, "status", code)
		return code, nil
	}
	c.logger.Info("record extracted", "company", company.Name, "sections", len(record.Sections()))
	return status.OK, nil
}

// removeCorrupt handles a document that is not a readable PDF: the company is
// invalidated so it never re-enters the pipeline, and the file is deleted.
func (c *Coordinator) removeCorrupt(ctx context.Context, company *db.CompanyDetail, cause *pdftext.CorruptFileError) (int, error) {
	c.logger.Warn("corrupt document, invalidating company",
		"company", company.Name, "error", cause)
	if err := c.store.InvalidateCompany(ctx, company.ID); err != nil {
		return 0, err
	}
	if err := c.store.DeleteDocument(ctx, company.ID); err != nil {
		return 0, err
	}
	return status.CorruptRemoved, nil
}

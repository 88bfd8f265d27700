package coordinator

import (
	"context"
	"strings"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/extractor"
	"github.com/kavish/registry-harvester/internal/status"
)

// relabelPass is one filter-and-relabel rule: rows whose field contains the
// keyword are relabeled to the canonical value and moved to the front of the
// set.
type relabelPass struct {
	Keyword   string
	Canonical string
}

// Portal operators type these fields by hand, so the same classification
// shows up under many spellings. Pass order matters: earlier passes relabel
// before later ones examine the set.
var (
	categoryPasses = []relabelPass{
		{"GLOBAL BUSINESS", string(extractor.CategoryGlobal)},
		{"AUTHORISED", string(extractor.CategoryAuthorised)},
		{"AUTHORIZED", string(extractor.CategoryAuthorised)},
		{"BRANCH", string(extractor.CategoryForeignBranch)},
		{"FOREIGN", string(extractor.CategoryForeignBranch)},
		{"DOMESTIC", string(extractor.CategoryDomestic)},
	}
	naturePasses = []relabelPass{
		{"PRIVEE", string(extractor.NaturePrivate)},
		{"PRIVATE", string(extractor.NaturePrivate)},
		{"CIVILE", string(extractor.NatureCivil)},
		{"CIVIL", string(extractor.NatureCivil)},
		{"COMMERCIAL", string(extractor.NatureCommercial)},
		{"PUBLIC", string(extractor.NaturePublic)},
	}
	statusPasses = []relabelPass{
		{"LIVE", "Live"},
		{"DEFUNCT", "Defunct"},
		{"WINDING", "Winding Up"},
		{"WOUND", "Winding Up"},
		{"DISSOLVED", "Dissolved"},
		{"AMALGAMATED", "Amalgamated"},
	}
)

// applyPasses runs the ordered relabel passes over the full row set. Each
// pass partitions the set, relabels the matched partition, and reassembles
// matched-first. Returns the cleaned set and how many rows changed value.
func applyPasses(rows []db.CompanyDetail,
	get func(*db.CompanyDetail) string,
	set func(*db.CompanyDetail, string),
	passes []relabelPass,
) ([]db.CompanyDetail, int) {
	changedIDs := make(map[string]struct{})
	for _, pass := range passes {
		matched := make([]db.CompanyDetail, 0, len(rows))
		unmatched := make([]db.CompanyDetail, 0, len(rows))
		for _, row := range rows {
			value := get(&row)
			if !strings.Contains(strings.ToUpper(value), pass.Keyword) {
				unmatched = append(unmatched, row)
				continue
			}
			if value != pass.Canonical {
				set(&row, pass.Canonical)
				changedIDs[row.ID.String()] = struct{}{}
			}
			matched = append(matched, row)
		}
		rows = append(matched, unmatched...)
	}
	return rows, len(changedIDs)
}

// CurateCategories canonicalizes the category field across the full company
// set.
func (c *Coordinator) CurateCategories(ctx context.Context) (*db.RunLogEntry, error) {
	return c.curate(ctx, db.OpCurateCategory, categoryPasses,
		func(r *db.CompanyDetail) string { return r.Category },
		func(r *db.CompanyDetail, v string) { r.Category = v })
}

// CurateNatures canonicalizes the nature field across the full company set.
func (c *Coordinator) CurateNatures(ctx context.Context) (*db.RunLogEntry, error) {
	return c.curate(ctx, db.OpCurateNature, naturePasses,
		func(r *db.CompanyDetail) string { return r.Nature },
		func(r *db.CompanyDetail, v string) { r.Nature = v })
}

// CurateStatuses canonicalizes the status field across the full company set.
func (c *Coordinator) CurateStatuses(ctx context.Context) (*db.RunLogEntry, error) {
	return c.curate(ctx, db.OpCurateStatus, statusPasses,
		func(r *db.CompanyDetail) string { return r.Status },
		func(r *db.CompanyDetail, v string) { r.Status = v })
}

// curate loads the full company set, applies the passes, and replaces the set
// in one transaction when anything changed. The ledger row records before
// (total) and after (changed) counts.
func (c *Coordinator) curate(ctx context.Context, op string, passes []relabelPass,
	get func(*db.CompanyDetail) string,
	set func(*db.CompanyDetail, string),
) (*db.RunLogEntry, error) {
	rows, err := c.store.ListAllCompanies(ctx)
	if err != nil {
		return nil, err
	}
	win := c.coveredWindow()
	if len(rows) == 0 {
		return c.appendOutcome(ctx, op, win, status.NoContent, 0, 0)
	}

	cleaned, changed := applyPasses(rows, get, set, passes)
	if changed == 0 {
		c.logger.Info("nothing to curate", "operation", op, "rows", len(rows))
		return c.appendOutcome(ctx, op, win, status.OK, len(rows), 0)
	}

	if err := c.store.ReplaceAllCompanies(ctx, cleaned); err != nil {
		entry, appendErr := c.appendOutcome(ctx, op, win,
			status.PersistenceFailed, len(rows), 0)
		if appendErr != nil {
			return nil, appendErr
		}
		return entry, err
	}
	c.logger.Info("curation applied", "operation", op, "rows", len(rows), "changed", changed)
	return c.appendOutcome(ctx, op, win, status.OK, len(rows), changed)
}

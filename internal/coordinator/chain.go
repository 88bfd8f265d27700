package coordinator

import (
	"context"
	"errors"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/extractor"
	"github.com/kavish/registry-harvester/internal/status"
)

// Step is one link of the per-record persistence chain. Every step receives
// the prior step's status code; a non-2xx code is forwarded unchanged and the
// step performs no write.
type Step struct {
	Name string
	Run  func(ctx context.Context, code int) int
}

// runChain threads a status code through the full chain. Each successful step
// emits Accepted, marking the record in flight; the trailing Accepted becomes
// OK once every step has run. The final code is the first failure, or OK.
func runChain(ctx context.Context, code int, steps []Step) int {
	for _, step := range steps {
		code = step.Run(ctx, code)
	}
	if code == status.Accepted {
		return status.OK
	}
	return code
}

// persistStep wraps a database write. Duplicate-key errors are logged as
// warnings and treated as success-equivalent; other write errors convert the
// chain status to 503.
func (c *Coordinator) persistStep(name string, fn func(ctx context.Context) error) Step {
	return Step{Name: name, Run: func(ctx context.Context, code int) int {
		if !status.IsSuccess(code) {
			return code
		}
		if err := fn(ctx); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				c.logger.Warn("row already stored", "step", name)
				return status.Accepted
			}
			c.logger.Error("store step failed", "step", name, "error", err)
			return status.PersistenceFailed
		}
		return status.Accepted
	}}
}

// sectionStep persists one record section. An absent section is an explicit
// success: there is nothing to insert, which is different from a failure to
// insert.
func (c *Coordinator) sectionStep(name string, empty bool, fn func(ctx context.Context) error) Step {
	if empty {
		return Step{Name: name, Run: func(_ context.Context, code int) int {
			if !status.IsSuccess(code) {
				return code
			}
			return status.Accepted
		}}
	}
	return c.persistStep(name, fn)
}

// storeChain builds the ordered persistence chain for one extracted record.
// Order is fixed: identity updates land first, section rows follow, and the
// verification timestamp lands last. A chain that fails partway leaves the
// company unverified, so the next extraction pass picks it up again.
func (c *Coordinator) storeChain(company *db.CompanyDetail, rec *extractor.Record) []Step {
	companyNumber, companyType := extractor.SplitFileNumber(rec.Identity.FileNumber)
	id := company.ID
	return []Step{
		c.persistStep("company details", func(ctx context.Context) error {
			return c.store.UpdateCompanyIdentifiers(ctx, id, companyNumber, companyType)
		}),
		c.sectionStep("business details", rec.Business == nil, func(ctx context.Context) error {
			return c.store.InsertBusinessDetails(ctx, id, rec.Business)
		}),
		c.sectionStep("certificates", len(rec.Certificates) == 0, func(ctx context.Context) error {
			return c.store.InsertCertificates(ctx, id, rec.Certificates)
		}),
		c.sectionStep("office bearers", len(rec.OfficeBearers) == 0, func(ctx context.Context) error {
			return c.store.InsertOfficeBearers(ctx, id, rec.OfficeBearers)
		}),
		c.sectionStep("shareholders", len(rec.Shareholders) == 0, func(ctx context.Context) error {
			return c.store.InsertShareholders(ctx, id, rec.Shareholders)
		}),
		c.sectionStep("members", len(rec.Members) == 0, func(ctx context.Context) error {
			return c.store.InsertMembers(ctx, id, rec.Members)
		}),
		c.sectionStep("annual returns", len(rec.AnnualReturns) == 0, func(ctx context.Context) error {
			return c.store.InsertAnnualReturns(ctx, id, rec.AnnualReturns)
		}),
		c.sectionStep("financial summaries", len(rec.Financials) == 0, func(ctx context.Context) error {
			return c.store.InsertFinancialSummaries(ctx, id, rec.Financials)
		}),
		c.sectionStep("profit statement", rec.Profit == nil, func(ctx context.Context) error {
			return c.store.InsertProfitStatement(ctx, id, rec.Profit)
		}),
		c.sectionStep("stated capital", len(rec.StatedCapital) == 0, func(ctx context.Context) error {
			return c.store.InsertStatedCapital(ctx, id, rec.StatedCapital)
		}),
		c.sectionStep("balance sheet", rec.Balance == nil, func(ctx context.Context) error {
			return c.store.InsertBalanceSheet(ctx, id, rec.Balance)
		}),
		c.sectionStep("charges", len(rec.Charges) == 0, func(ctx context.Context) error {
			return c.store.InsertCharges(ctx, id, rec.Charges)
		}),
		c.sectionStep("liquidators", len(rec.Liquidators) == 0, func(ctx context.Context) error {
			return c.store.InsertAppointees(ctx, id, db.RoleLiquidator, rec.Liquidators)
		}),
		c.sectionStep("receivers", len(rec.Receivers) == 0, func(ctx context.Context) error {
			return c.store.InsertAppointees(ctx, id, db.RoleReceiver, rec.Receivers)
		}),
		c.sectionStep("administrators", len(rec.Administrators) == 0, func(ctx context.Context) error {
			return c.store.InsertAppointees(ctx, id, db.RoleAdministrator, rec.Administrators)
		}),
		c.sectionStep("lifecycle details", len(rec.Details) == 0, func(ctx context.Context) error {
			return c.store.InsertLifecycleDetails(ctx, id, rec.Details)
		}),
		c.sectionStep("objections", len(rec.Objections) == 0, func(ctx context.Context) error {
			return c.store.InsertObjections(ctx, id, rec.Objections)
		}),
		c.persistStep("verification", func(ctx context.Context) error {
			return c.store.MarkCompanyVerified(ctx, id)
		}),
	}
}

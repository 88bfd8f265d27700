package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/kavish/registry-harvester/internal/extractor"
)

// Store accessors for the per-section record tables. These are thin
// parameterized-SQL wrappers; the coordinator's store-chain owns ordering
// and status propagation.

// AppointeeRole distinguishes rows in the appointees table.
const (
	RoleLiquidator    = "liquidator"
	RoleReceiver      = "receiver"
	RoleAdministrator = "administrator"
)

// InsertBusinessDetails stores the business details block for a company.
func (db *DB) InsertBusinessDetails(ctx context.Context, companyID uuid.UUID, b *extractor.BusinessDetails) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO business_details (company_id, business_name, brn, activity, address, registered)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		companyID, b.BusinessName, b.BRN, b.Activity, b.Address, b.Registered,
	)
	return wrapWrite("failed to insert business details", err)
}

// InsertCertificates stores the certificate entries for a company.
func (db *DB) InsertCertificates(ctx context.Context, companyID uuid.UUID, certs []extractor.Certificate) error {
	for _, c := range certs {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO certificates (company_id, name, issued) VALUES ($1, $2, $3)`,
			companyID, c.Name, c.Issued,
		)
		if err != nil {
			return wrapWrite("failed to insert certificate", err)
		}
	}
	return nil
}

// InsertOfficeBearers stores the office bearer rows for a company.
func (db *DB) InsertOfficeBearers(ctx context.Context, companyID uuid.UUID, bearers []extractor.OfficeBearer) error {
	for _, b := range bearers {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO office_bearers (company_id, position, name, address, appointed)
			 VALUES ($1, $2, $3, $4, $5)`,
			companyID, b.Position, b.Name, b.Address, b.Appointed,
		)
		if err != nil {
			return wrapWrite("failed to insert office bearer", err)
		}
	}
	return nil
}

// InsertShareholders stores the shareholder rows for a company.
func (db *DB) InsertShareholders(ctx context.Context, companyID uuid.UUID, shareholders []extractor.Shareholder) error {
	for _, s := range shareholders {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO shareholders (company_id, name, address, shares, currency, share_class)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			companyID, s.Name, s.Address, s.Shares, s.Currency, s.Class,
		)
		if err != nil {
			return wrapWrite("failed to insert shareholder", err)
		}
	}
	return nil
}

// InsertMembers stores the member rows for a company.
func (db *DB) InsertMembers(ctx context.Context, companyID uuid.UUID, members []extractor.Member) error {
	for _, m := range members {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO members (company_id, name, address, joined) VALUES ($1, $2, $3, $4)`,
			companyID, m.Name, m.Address, m.Joined,
		)
		if err != nil {
			return wrapWrite("failed to insert member", err)
		}
	}
	return nil
}

// InsertAnnualReturns stores the annual return rows for a company.
func (db *DB) InsertAnnualReturns(ctx context.Context, companyID uuid.UUID, returns []extractor.AnnualReturn) error {
	for _, r := range returns {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO annual_returns (company_id, year, filed) VALUES ($1, $2, $3)`,
			companyID, r.Year, r.Filed,
		)
		if err != nil {
			return wrapWrite("failed to insert annual return", err)
		}
	}
	return nil
}

// InsertFinancialSummaries stores the financial summary rows for a company.
func (db *DB) InsertFinancialSummaries(ctx context.Context, companyID uuid.UUID, summaries []extractor.FinancialSummary) error {
	for _, s := range summaries {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO financial_summaries (company_id, period_from, period_to, currency)
			 VALUES ($1, $2, $3, $4)`,
			companyID, s.PeriodFrom, s.PeriodTo, s.Currency,
		)
		if err != nil {
			return wrapWrite("failed to insert financial summary", err)
		}
	}
	return nil
}

// InsertProfitStatement stores the profit statement for a company.
func (db *DB) InsertProfitStatement(ctx context.Context, companyID uuid.UUID, p *extractor.ProfitStatement) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO profit_statements (company_id, currency, turnover, gross_profit, net_profit)
		 VALUES ($1, $2, $3, $4, $5)`,
		companyID, p.Currency, p.Turnover, p.GrossProfit, p.NetProfit,
	)
	return wrapWrite("failed to insert profit statement", err)
}

// InsertStatedCapital stores the stated capital entries for a company.
func (db *DB) InsertStatedCapital(ctx context.Context, companyID uuid.UUID, entries []extractor.StatedCapitalEntry) error {
	for _, e := range entries {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO stated_capital (company_id, share_class, currency, shares_issued, amount)
			 VALUES ($1, $2, $3, $4, $5)`,
			companyID, e.Class, e.Currency, e.SharesIssued, e.Amount,
		)
		if err != nil {
			return wrapWrite("failed to insert stated capital", err)
		}
	}
	return nil
}

// InsertBalanceSheet stores the balance sheet for a company. The nested
// asset/liability groups are kept as JSONB.
func (db *DB) InsertBalanceSheet(ctx context.Context, companyID uuid.UUID, b *extractor.BalanceSheet) error {
	assets, err := json.Marshal(b.Assets)
	if err != nil {
		return fmt.Errorf("failed to marshal balance sheet assets: %w", err)
	}
	liabilities, err := json.Marshal(b.Liabilities)
	if err != nil {
		return fmt.Errorf("failed to marshal balance sheet liabilities: %w", err)
	}
	_, err = db.pool.Exec(ctx,
		`INSERT INTO balance_sheets (company_id, currency, assets, liabilities)
		 VALUES ($1, $2, $3, $4)`,
		companyID, b.Currency, assets, liabilities,
	)
	return wrapWrite("failed to insert balance sheet", err)
}

// InsertCharges stores the charge rows for a company.
func (db *DB) InsertCharges(ctx context.Context, companyID uuid.UUID, charges []extractor.Charge) error {
	for _, c := range charges {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO charges (company_id, holder, kind, amount, currency, created)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			companyID, c.Holder, c.Kind, c.Amount, c.Currency, c.Created,
		)
		if err != nil {
			return wrapWrite("failed to insert charge", err)
		}
	}
	return nil
}

// InsertAppointees stores liquidator/receiver/administrator rows for a
// company under the given role.
func (db *DB) InsertAppointees(ctx context.Context, companyID uuid.UUID, role string, appointees []extractor.Appointee) error {
	for _, a := range appointees {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO appointees (company_id, role, name, address, appointed)
			 VALUES ($1, $2, $3, $4, $5)`,
			companyID, role, a.Name, a.Address, a.Appointed,
		)
		if err != nil {
			return wrapWrite("failed to insert appointee", err)
		}
	}
	return nil
}

// InsertLifecycleDetails stores the lifecycle event rows for a company.
func (db *DB) InsertLifecycleDetails(ctx context.Context, companyID uuid.UUID, details []extractor.LifecycleDetail) error {
	for _, d := range details {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO lifecycle_details (company_id, event, event_date, note)
			 VALUES ($1, $2, $3, $4)`,
			companyID, d.Event, d.Date, d.Note,
		)
		if err != nil {
			return wrapWrite("failed to insert lifecycle detail", err)
		}
	}
	return nil
}

// InsertObjections stores the objection rows for a company.
func (db *DB) InsertObjections(ctx context.Context, companyID uuid.UUID, objections []extractor.Objection) error {
	for _, o := range objections {
		_, err := db.pool.Exec(ctx,
			`INSERT INTO objections (company_id, raised, raised_by, reason)
			 VALUES ($1, $2, $3, $4)`,
			companyID, o.Raised, o.By, o.Reason,
		)
		if err != nil {
			return wrapWrite("failed to insert objection", err)
		}
	}
	return nil
}

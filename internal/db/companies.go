package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const companyColumns = `id, name, file_number, category, nature, incorporated, status,
	company_number, company_type, invalidated, verified_at, created_at, updated_at`

func scanCompany(row pgx.Row) (*CompanyDetail, error) {
	var c CompanyDetail
	err := row.Scan(&c.ID, &c.Name, &c.FileNumber, &c.Category, &c.Nature, &c.Incorporated,
		&c.Status, &c.CompanyNumber, &c.CompanyType, &c.Invalidated, &c.VerifiedAt,
		&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// -----------------------------------------------------------------------------
// Company Detail Methods
// -----------------------------------------------------------------------------

// InsertCompanySummary stores one scraped metadata row. A duplicate name
// returns ErrDuplicate, which callers treat as success-equivalent.
func (db *DB) InsertCompanySummary(ctx context.Context, s *CompanySummary) (*CompanyDetail, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO company_details (name, file_number, category, nature, incorporated, status)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+companyColumns,
		s.Name, s.FileNumber, s.Category, s.Nature, s.Incorporated, s.Status,
	)
	c, err := scanCompany(row)
	if err != nil {
		return nil, wrapWrite("failed to insert company summary", err)
	}
	return c, nil
}

// GetCompanyByID retrieves a company by its UUID, or nil.
func (db *DB) GetCompanyByID(ctx context.Context, id uuid.UUID) (*CompanyDetail, error) {
	c, err := scanCompany(db.pool.QueryRow(ctx,
		`SELECT `+companyColumns+` FROM company_details WHERE id = $1`, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get company: %w", err)
	}
	return c, nil
}

// ListCompaniesPendingDownload returns non-invalidated companies with no
// stored document yet, oldest first.
func (db *DB) ListCompaniesPendingDownload(ctx context.Context, limit int) ([]CompanyDetail, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM company_details c
		 WHERE NOT invalidated
		   AND verified_at IS NULL
		   AND NOT EXISTS (SELECT 1 FROM documents d WHERE d.company_id = c.id)
		 ORDER BY created_at ASC LIMIT $1`, limit)
}

// ListCompaniesPendingExtraction returns companies whose document is stored
// but not yet extracted, oldest first.
func (db *DB) ListCompaniesPendingExtraction(ctx context.Context, limit int) ([]CompanyDetail, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM company_details c
		 WHERE NOT invalidated
		   AND verified_at IS NULL
		   AND EXISTS (SELECT 1 FROM documents d WHERE d.company_id = c.id)
		 ORDER BY created_at ASC LIMIT $1`, limit)
}

// UpdateCompanyIdentifiers stores the identifiers derived from the file
// number. This does not verify the company; verification is recorded
// separately once the full record has been persisted.
func (db *DB) UpdateCompanyIdentifiers(ctx context.Context, id uuid.UUID, companyNumber, companyType string) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE company_details
		 SET company_number = $1, company_type = $2, updated_at = NOW()
		 WHERE id = $3`,
		companyNumber, companyType, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update company identifiers: %w", err)
	}
	return nil
}

// MarkCompanyVerified sets the verification timestamp. Called only after
// every section of the extracted record has landed, so a company whose
// persistence failed partway stays pending and is retried.
func (db *DB) MarkCompanyVerified(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE company_details SET verified_at = NOW(), updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark company verified: %w", err)
	}
	return nil
}

// InvalidateCompany flags a company whose document was corrupt. The company
// is excluded from future download and extraction passes.
func (db *DB) InvalidateCompany(ctx context.Context, id uuid.UUID) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE company_details SET invalidated = TRUE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to invalidate company: %w", err)
	}
	return nil
}

// ListAllCompanies returns every company row, insertion order. Curation
// operates on the full set.
func (db *DB) ListAllCompanies(ctx context.Context) ([]CompanyDetail, error) {
	return db.listCompanies(ctx,
		`SELECT `+companyColumns+` FROM company_details ORDER BY created_at ASC, id ASC`, nil)
}

// ReplaceAllCompanies deletes the full company set and bulk-reinserts the
// curated rows in one transaction. IDs and timestamps are preserved.
func (db *DB) ReplaceAllCompanies(ctx context.Context, companies []CompanyDetail) error {
	return db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM company_details`); err != nil {
			return fmt.Errorf("failed to clear company details: %w", err)
		}
		rows := make([][]any, 0, len(companies))
		for _, c := range companies {
			rows = append(rows, []any{
				c.ID, c.Name, c.FileNumber, c.Category, c.Nature, c.Incorporated, c.Status,
				c.CompanyNumber, c.CompanyType, c.Invalidated, c.VerifiedAt, c.CreatedAt, time.Now(),
			})
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"company_details"},
			[]string{"id", "name", "file_number", "category", "nature", "incorporated", "status",
				"company_number", "company_type", "invalidated", "verified_at", "created_at", "updated_at"},
			pgx.CopyFromRows(rows),
		)
		if err != nil {
			return fmt.Errorf("failed to bulk reinsert company details: %w", err)
		}
		return nil
	})
}

// CountCompanies returns the total number of company rows.
func (db *DB) CountCompanies(ctx context.Context) (int, error) {
	var n int
	if err := db.pool.QueryRow(ctx, `SELECT COUNT(*) FROM company_details`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return n, nil
}

func (db *DB) listCompanies(ctx context.Context, query string, limit any) ([]CompanyDetail, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if limit != nil {
		rows, err = db.pool.Query(ctx, query, limit)
	} else {
		rows, err = db.pool.Query(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list companies: %w", err)
	}
	defer rows.Close()

	var companies []CompanyDetail
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		companies = append(companies, *c)
	}
	return companies, nil
}

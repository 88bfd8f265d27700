package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// DocumentFile is one downloaded registry PDF, created once per company and
// consumed exactly once by extraction.
type DocumentFile struct {
	ID        uuid.UUID `json:"id"`
	CompanyID uuid.UUID `json:"company_id"`
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateDocument stores the raw document bytes for a company. A second
// document for the same company returns ErrDuplicate.
func (db *DB) CreateDocument(ctx context.Context, companyID uuid.UUID, content []byte) (*DocumentFile, error) {
	var d DocumentFile
	err := db.pool.QueryRow(ctx,
		`INSERT INTO documents (company_id, content)
		 VALUES ($1, $2)
		 RETURNING id, company_id, created_at`,
		companyID, content,
	).Scan(&d.ID, &d.CompanyID, &d.CreatedAt)
	if err != nil {
		return nil, wrapWrite("failed to create document", err)
	}
	d.Content = content
	return &d, nil
}

// GetDocumentByCompany retrieves a company's document with its content, or nil.
func (db *DB) GetDocumentByCompany(ctx context.Context, companyID uuid.UUID) (*DocumentFile, error) {
	var d DocumentFile
	err := db.pool.QueryRow(ctx,
		`SELECT id, company_id, content, created_at FROM documents WHERE company_id = $1`,
		companyID,
	).Scan(&d.ID, &d.CompanyID, &d.Content, &d.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get document: %w", err)
	}
	return &d, nil
}

// DeleteDocument removes a company's document, used when the file turns out
// to be corrupt.
func (db *DB) DeleteDocument(ctx context.Context, companyID uuid.UUID) error {
	_, err := db.pool.Exec(ctx, `DELETE FROM documents WHERE company_id = $1`, companyID)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

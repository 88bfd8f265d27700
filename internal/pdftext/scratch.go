package pdftext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/kavish/registry-harvester/internal/db"
	"github.com/kavish/registry-harvester/internal/schemas"
)

// ScratchMeta is the sidecar written next to a materialized PDF so a replayed
// extraction can be traced back to its company without a database lookup.
type ScratchMeta struct {
	CompanyID      string `json:"company_id"`
	CompanyName    string `json:"company_name"`
	Category       string `json:"category"`
	Nature         string `json:"nature,omitempty"`
	SizeBytes      int    `json:"size_bytes"`
	MaterializedAt string `json:"materialized_at"`
}

// Scratch manages the per-company PDF/JSON working files under the cache
// directory. Files are keyed by company identifier and replaced per run.
type Scratch struct {
	dir string
}

// NewScratch opens (creating if needed) the scratch directory under cacheDir.
func NewScratch(cacheDir string) (*Scratch, error) {
	dir := filepath.Join(cacheDir, "scratch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &Scratch{dir: dir}, nil
}

func (s *Scratch) pdfPath(companyID uuid.UUID) string {
	return filepath.Join(s.dir, companyID.String()+".pdf")
}

func (s *Scratch) metaPath(companyID uuid.UUID) string {
	return filepath.Join(s.dir, companyID.String()+".json")
}

// Materialize writes a company's document bytes and metadata sidecar to the
// scratch directory, replacing any prior pair, and returns the PDF path.
func (s *Scratch) Materialize(company *db.CompanyDetail, doc *db.DocumentFile) (string, error) {
	meta := ScratchMeta{
		CompanyID:      company.ID.String(),
		CompanyName:    company.Name,
		Category:       company.Category,
		Nature:         company.Nature,
		SizeBytes:      len(doc.Content),
		MaterializedAt: time.Now().UTC().Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal scratch metadata: %w", err)
	}
	if err := schemas.Validate(schemas.ScratchMetadata, data); err != nil {
		return "", fmt.Errorf("refusing to write invalid scratch metadata: %w", err)
	}

	path := s.pdfPath(company.ID)
	if err := os.WriteFile(path, doc.Content, 0o644); err != nil {
		return "", fmt.Errorf("failed to materialize document: %w", err)
	}
	if err := os.WriteFile(s.metaPath(company.ID), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write scratch metadata: %w", err)
	}
	return path, nil
}

// Clean removes a company's scratch pair. Missing files are not an error.
func (s *Scratch) Clean(companyID uuid.UUID) error {
	for _, path := range []string{s.pdfPath(companyID), s.metaPath(companyID)} {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("failed to clean scratch file %s: %w", path, err)
		}
	}
	return nil
}

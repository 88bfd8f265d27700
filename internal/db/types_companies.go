package db

import (
	"time"

	"github.com/google/uuid"
)

// CompanyDetail is the durable identity record a document extraction is
// keyed against. Category and nature select the extraction path and are
// never mutated by it.
type CompanyDetail struct {
	ID            uuid.UUID  `json:"id"`
	Name          string     `json:"name"`
	FileNumber    string     `json:"file_number"`
	Category      string     `json:"category"`
	Nature        string     `json:"nature"`
	Incorporated  string     `json:"incorporated"` // source format, dd/mm/yyyy
	Status        string     `json:"status"`
	CompanyNumber string     `json:"company_number"`
	CompanyType   string     `json:"company_type"`
	Invalidated   bool       `json:"invalidated"`
	VerifiedAt    *time.Time `json:"verified_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// CompanySummary is the partially-typed row scraped from the portal's
// result table; it is what the snapshot cache stores.
type CompanySummary struct {
	Name         string `json:"name"`
	FileNumber   string `json:"file_number"`
	Category     string `json:"category"`
	Incorporated string `json:"incorporated"`
	Nature       string `json:"nature"`
	Status       string `json:"status"`
}

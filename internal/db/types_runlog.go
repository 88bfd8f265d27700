package db

import "time"

// Operation names recorded in the run log.
const (
	OpCollectMetadata = "collectMetadata"
	OpDownloadFiles   = "downloadFiles"
	OpExtractData     = "extractData"
	OpCurateCategory  = "curateCategories"
	OpCurateNature    = "curateNatures"
	OpCurateStatus    = "curateStatuses"
)

// RunLogEntry is one appended run outcome. Entries are immutable once
// written; the latest entry per operation is the sole input to resumption.
type RunLogEntry struct {
	ID          int64     `json:"id"`
	Operation   string    `json:"operation"`
	Quarter     string    `json:"quarter"`
	WindowStart int64     `json:"window_start"` // epoch seconds
	WindowEnd   int64     `json:"window_end"`   // epoch seconds
	Status      int       `json:"status"`
	TotalCount  int       `json:"total_count"`
	Processed   int       `json:"processed_count"`
	CreatedAt   time.Time `json:"created_at"`
}

// RunLogInput is the appended portion of a run log row.
type RunLogInput struct {
	Operation   string
	Quarter     string
	WindowStart int64
	WindowEnd   int64
	Status      int
	TotalCount  int
	Processed   int
}

package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// -----------------------------------------------------------------------------
// Run Log Methods
// -----------------------------------------------------------------------------

// AppendRunLog appends one run outcome. The table is append-only: rows are
// never updated or deleted.
func (db *DB) AppendRunLog(ctx context.Context, input *RunLogInput) (*RunLogEntry, error) {
	if input.WindowStart > input.WindowEnd {
		return nil, fmt.Errorf("invalid window: start %d after end %d", input.WindowStart, input.WindowEnd)
	}

	var entry RunLogEntry
	err := db.pool.QueryRow(ctx,
		`INSERT INTO run_log (operation, quarter, window_start, window_end, status, total_count, processed_count)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, operation, quarter, window_start, window_end, status, total_count, processed_count, created_at`,
		input.Operation, input.Quarter, input.WindowStart, input.WindowEnd,
		input.Status, input.TotalCount, input.Processed,
	).Scan(&entry.ID, &entry.Operation, &entry.Quarter, &entry.WindowStart, &entry.WindowEnd,
		&entry.Status, &entry.TotalCount, &entry.Processed, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to append run log: %w", err)
	}
	return &entry, nil
}

// LatestRunLog retrieves the most recent entry for an operation, or nil.
func (db *DB) LatestRunLog(ctx context.Context, operation string) (*RunLogEntry, error) {
	return db.scanOneRunLog(ctx,
		`SELECT id, operation, quarter, window_start, window_end, status, total_count, processed_count, created_at
		 FROM run_log WHERE operation = $1
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		operation)
}

// LatestSuccessfulRunLog retrieves the most recent entry for an operation
// whose status is in the 2xx range, or nil.
func (db *DB) LatestSuccessfulRunLog(ctx context.Context, operation string) (*RunLogEntry, error) {
	return db.scanOneRunLog(ctx,
		`SELECT id, operation, quarter, window_start, window_end, status, total_count, processed_count, created_at
		 FROM run_log WHERE operation = $1 AND status >= 200 AND status < 300
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		operation)
}

// EarliestWindowStart returns the earliest processed window start for an
// operation, used to compute backward backfill windows. ok is false when the
// operation has no entries.
func (db *DB) EarliestWindowStart(ctx context.Context, operation string) (int64, bool, error) {
	var start *int64
	err := db.pool.QueryRow(ctx,
		`SELECT MIN(window_start) FROM run_log WHERE operation = $1 AND status >= 200 AND status < 300`,
		operation,
	).Scan(&start)
	if err != nil {
		return 0, false, fmt.Errorf("failed to get earliest window start: %w", err)
	}
	if start == nil {
		return 0, false, nil
	}
	return *start, true, nil
}

// ListRunLog retrieves recent entries across all operations, newest first.
func (db *DB) ListRunLog(ctx context.Context, limit int) ([]RunLogEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, operation, quarter, window_start, window_end, status, total_count, processed_count, created_at
		 FROM run_log ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list run log: %w", err)
	}
	defer rows.Close()

	var entries []RunLogEntry
	for rows.Next() {
		var e RunLogEntry
		if err := rows.Scan(&e.ID, &e.Operation, &e.Quarter, &e.WindowStart, &e.WindowEnd,
			&e.Status, &e.TotalCount, &e.Processed, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (db *DB) scanOneRunLog(ctx context.Context, query string, args ...any) (*RunLogEntry, error) {
	var e RunLogEntry
	err := db.pool.QueryRow(ctx, query, args...).Scan(
		&e.ID, &e.Operation, &e.Quarter, &e.WindowStart, &e.WindowEnd,
		&e.Status, &e.TotalCount, &e.Processed, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get run log entry: %w", err)
	}
	return &e, nil
}

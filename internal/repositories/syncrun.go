package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"ytsm/internal/models"
)

// SyncRunRepository persists the sync_runs table, one row per completed
// reconciliation run.
type SyncRunRepository struct {
	db *sql.DB
}

// NewSyncRunRepository creates a new SyncRunRepository with the given database connection
func NewSyncRunRepository(db *sql.DB) *SyncRunRepository {
	return &SyncRunRepository{db: db}
}

// Create inserts a run record.
func (r *SyncRunRepository) Create(ctx context.Context, run models.SyncRun) error {
	if run.ID == "" {
		return fmt.Errorf("sync run requires an id")
	}
	if run.RanAt.IsZero() {
		run.RanAt = time.Now()
	}

	query := `
		INSERT INTO sync_runs (id, ran_at, dry_run, success_count, skip_count, error_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		run.ID,
		run.RanAt,
		run.DryRun,
		run.SuccessCount,
		run.SkipCount,
		run.ErrorCount,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sync run: %w", err)
	}

	return nil
}

// Recent retrieves the most recent runs, newest first. A limit of 0
// defaults to 10.
func (r *SyncRunRepository) Recent(ctx context.Context, limit int) ([]models.SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}

	query := `
		SELECT id, ran_at, dry_run, success_count, skip_count, error_count
		FROM sync_runs
		ORDER BY ran_at DESC
		LIMIT ?
	`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sync runs: %w", err)
	}
	defer rows.Close()

	var runs []models.SyncRun
	for rows.Next() {
		var run models.SyncRun
		if err := rows.Scan(&run.ID, &run.RanAt, &run.DryRun, &run.SuccessCount, &run.SkipCount, &run.ErrorCount); err != nil {
			return nil, fmt.Errorf("failed to scan sync run: %w", err)
		}
		runs = append(runs, run)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return runs, nil
}

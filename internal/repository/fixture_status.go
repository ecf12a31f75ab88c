package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fantasy-cricket/internal/domain"

	"github.com/rs/zerolog"
)

// FixtureStatusRepository keeps the status of each fixture across restarts.
// Fixture reference data itself comes from the roster.
type FixtureStatusRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewFixtureStatusRepository(sqlDB *sql.DB, logger zerolog.Logger) *FixtureStatusRepository {
	return &FixtureStatusRepository{
		db:     sqlDB,
		logger: logger,
	}
}

func (r *FixtureStatusRepository) SaveStatus(ctx context.Context, matchID string, status domain.FixtureStatus) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO fixture_status (match_id, status, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT (match_id) DO UPDATE SET status = excluded.status, updated_at = excluded.updated_at`,
		matchID, string(status), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to save status for fixture %s: %w", matchID, err)
	}
	return nil
}

func (r *FixtureStatusRepository) LoadStatuses(ctx context.Context) (map[string]domain.FixtureStatus, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT match_id, status FROM fixture_status`)
	if err != nil {
		return nil, fmt.Errorf("failed to load fixture statuses: %w", err)
	}
	defer rows.Close()

	out := make(map[string]domain.FixtureStatus)
	for rows.Next() {
		var matchID string
		var status domain.FixtureStatus
		if err := rows.Scan(&matchID, &status); err != nil {
			return nil, err
		}
		out[matchID] = status
	}
	return out, rows.Err()
}

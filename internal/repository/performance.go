package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type PerformanceRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPerformanceRepository(sqlDB *sql.DB, logger zerolog.Logger) *PerformanceRepository {
	return &PerformanceRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const performanceColumns = `id, match_id, player_name, team_name, runs, balls_faced, fours, sixes, is_out,
	wickets, overs_bowled, runs_conceded, maidens, catches, stumpings, run_outs, total_points, created_at, updated_at`

const upsertPerformance = `
INSERT INTO performances (` + performanceColumns + `)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (match_id, player_name) DO UPDATE SET
	team_name = excluded.team_name,
	runs = excluded.runs,
	balls_faced = excluded.balls_faced,
	fours = excluded.fours,
	sixes = excluded.sixes,
	is_out = excluded.is_out,
	wickets = excluded.wickets,
	overs_bowled = excluded.overs_bowled,
	runs_conceded = excluded.runs_conceded,
	maidens = excluded.maidens,
	catches = excluded.catches,
	stumpings = excluded.stumpings,
	run_outs = excluded.run_outs,
	total_points = excluded.total_points,
	updated_at = excluded.updated_at`

// Upsert writes p keyed by (match, player). An existing row keeps its ID and
// creation time and has every stat overwritten; p is updated to carry the
// stored ID and creation time.
func (r *PerformanceRepository) Upsert(ctx context.Context, p *domain.Performance) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	id, err := gonanoid.New()
	if err != nil {
		return fmt.Errorf("failed to generate nanoid: %w", err)
	}
	now := time.Now().UTC()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	s := p.Stats
	_, err = tx.ExecContext(ctx, upsertPerformance,
		id, p.MatchID, p.PlayerName, p.TeamName,
		s.Runs, s.BallsFaced, s.Fours, s.Sixes, s.IsOut,
		s.Wickets, s.OversBowled, s.RunsConceded, s.Maidens,
		s.Catches, s.Stumpings, s.RunOuts,
		p.TotalPoints, now, now,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert performance %s/%s: %w", p.MatchID, p.PlayerName, err)
	}

	var stored domain.Performance
	err = tx.QueryRowContext(ctx,
		`SELECT id, created_at FROM performances WHERE match_id = ? AND player_name = ?`,
		p.MatchID, p.PlayerName,
	).Scan(&stored.ID, &stored.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to read back performance %s/%s: %w", p.MatchID, p.PlayerName, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit performance %s/%s: %w", p.MatchID, p.PlayerName, err)
	}

	p.ID = stored.ID
	p.CreatedAt = stored.CreatedAt
	p.UpdatedAt = now
	return nil
}

func (r *PerformanceRepository) Get(ctx context.Context, matchID, playerName string) (*domain.Performance, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+performanceColumns+` FROM performances WHERE match_id = ? AND player_name = ?`,
		matchID, playerName)

	p, err := scanPerformance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("performance %s/%s: %w", matchID, playerName, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PerformanceRepository) ListByMatch(ctx context.Context, matchID string) ([]domain.Performance, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+performanceColumns+` FROM performances WHERE match_id = ? ORDER BY player_name`,
		matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list performances for %s: %w", matchID, err)
	}
	defer rows.Close()

	result := []domain.Performance{}
	for rows.Next() {
		p, err := scanPerformance(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, rows.Err()
}

func scanPerformance(row scanner) (*domain.Performance, error) {
	var p domain.Performance
	s := &p.Stats
	err := row.Scan(
		&p.ID, &p.MatchID, &p.PlayerName, &p.TeamName,
		&s.Runs, &s.BallsFaced, &s.Fours, &s.Sixes, &s.IsOut,
		&s.Wickets, &s.OversBowled, &s.RunsConceded, &s.Maidens,
		&s.Catches, &s.Stumpings, &s.RunOuts,
		&p.TotalPoints, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

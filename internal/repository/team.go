package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type TeamRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewTeamRepository(sqlDB *sql.DB, logger zerolog.Logger) *TeamRepository {
	return &TeamRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const teamColumns = `t.id, t.contest_id, t.user_id, t.name, t.players, t.captain, t.vice_captain, t.cost, t.total_points, t.created_at, t.updated_at`

// Create stores a new team if its contest is still active and has room. The
// status check, the count and the insert share one write transaction, so a
// join cannot land after the contest goes live or take a slot twice.
// A second team for the same user and contest yields domain.ErrTeamExists.
func (r *TeamRepository) Create(ctx context.Context, t *domain.Team, maxParticipants int) error {
	players, err := json.Marshal(t.Players)
	if err != nil {
		return fmt.Errorf("failed to encode players: %w", err)
	}

	now := time.Now().UTC()
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	t.CreatedAt = now
	t.UpdatedAt = now

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var status domain.ContestStatus
	err = tx.QueryRowContext(ctx, `SELECT status FROM contests WHERE id = ?`, t.ContestID).Scan(&status)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("contest %s: %w", t.ContestID, domain.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("failed to read contest status: %w", err)
	}
	if !status.Joinable() {
		return fmt.Errorf("contest %s is %s: %w", t.ContestID, status, domain.ErrContestClosed)
	}

	if maxParticipants > 0 {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM teams WHERE contest_id = ?`, t.ContestID).Scan(&count); err != nil {
			return fmt.Errorf("failed to count teams: %w", err)
		}
		if count >= maxParticipants {
			return fmt.Errorf("contest %s has %d/%d teams: %w", t.ContestID, count, maxParticipants, domain.ErrContestFull)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO teams (id, contest_id, user_id, name, players, captain, vice_captain, cost, total_points, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ContestID, t.UserID, t.Name, string(players), t.Captain, t.ViceCaptain,
		t.Cost, t.TotalPoints, t.CreatedAt, t.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("user %s in contest %s: %w", t.UserID, t.ContestID, domain.ErrTeamExists)
	}
	if err != nil {
		return fmt.Errorf("failed to create team: %w", err)
	}

	return tx.Commit()
}

func (r *TeamRepository) Get(ctx context.Context, id string) (*domain.Team, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.id = ?`, id)
	t, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("team %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

func (r *TeamRepository) ListAll(ctx context.Context) ([]domain.Team, error) {
	return r.query(ctx, `SELECT `+teamColumns+` FROM teams t ORDER BY t.created_at, t.id`)
}

func (r *TeamRepository) ListByContest(ctx context.Context, contestID string) ([]domain.Team, error) {
	return r.query(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.contest_id = ? ORDER BY t.created_at, t.id`, contestID)
}

func (r *TeamRepository) ListByUser(ctx context.Context, userID string) ([]domain.Team, error) {
	return r.query(ctx, `SELECT `+teamColumns+` FROM teams t WHERE t.user_id = ? ORDER BY t.created_at, t.id`, userID)
}

// ListByMatch returns every team entered in any contest bound to matchID.
func (r *TeamRepository) ListByMatch(ctx context.Context, matchID string) ([]domain.Team, error) {
	return r.query(ctx,
		`SELECT `+teamColumns+` FROM teams t JOIN contests c ON c.id = t.contest_id
		 WHERE c.match_id = ? ORDER BY t.created_at, t.id`, matchID)
}

func (r *TeamRepository) UpdatePoints(ctx context.Context, teamID string, points float64) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DatabaseTimeout)
	defer cancel()

	res, err := r.db.ExecContext(ctx,
		`UPDATE teams SET total_points = ?, updated_at = ? WHERE id = ?`,
		points, time.Now().UTC(), teamID)
	if err != nil {
		return fmt.Errorf("failed to update points for team %s: %w", teamID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
	}
	return nil
}

func (r *TeamRepository) query(ctx context.Context, query string, args ...any) ([]domain.Team, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	result := []domain.Team{}
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	return result, rows.Err()
}

func scanTeam(row scanner) (*domain.Team, error) {
	var t domain.Team
	var players string
	err := row.Scan(&t.ID, &t.ContestID, &t.UserID, &t.Name, &players, &t.Captain, &t.ViceCaptain,
		&t.Cost, &t.TotalPoints, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(players), &t.Players); err != nil {
		return nil, fmt.Errorf("failed to decode players for team %s: %w", t.ID, err)
	}
	return &t, nil
}

package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fantasy-cricket/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type ContestRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewContestRepository(sqlDB *sql.DB, logger zerolog.Logger) *ContestRepository {
	return &ContestRepository{
		db:     sqlDB,
		logger: logger,
	}
}

const contestColumns = `id, name, match_id, entry_fee, prize_pool, max_participants, created_by, status, created_at, updated_at`

func (r *ContestRepository) Create(ctx context.Context, c *domain.Contest) error {
	now := time.Now().UTC()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = domain.ContestActive
	}
	c.CreatedAt = now
	c.UpdatedAt = now

	_, err := r.db.ExecContext(ctx,
		`INSERT INTO contests (`+contestColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.MatchID, c.EntryFee, c.PrizePool, c.MaxParticipants,
		c.CreatedBy, string(c.Status), c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create contest: %w", err)
	}
	return nil
}

func (r *ContestRepository) Get(ctx context.Context, id string) (*domain.Contest, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+contestColumns+` FROM contests WHERE id = ?`, id)
	c, err := scanContest(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("contest %s: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (r *ContestRepository) List(ctx context.Context) ([]domain.Contest, error) {
	return r.query(ctx, `SELECT `+contestColumns+` FROM contests ORDER BY created_at, id`)
}

func (r *ContestRepository) ListByMatch(ctx context.Context, matchID string) ([]domain.Contest, error) {
	return r.query(ctx, `SELECT `+contestColumns+` FROM contests WHERE match_id = ? ORDER BY created_at, id`, matchID)
}

// UpdateStatus stores status for contest id. Callers are expected to have
// checked the transition.
func (r *ContestRepository) UpdateStatus(ctx context.Context, id string, status domain.ContestStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE contests SET status = ?, updated_at = ? WHERE id = ?`,
		string(status), time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("failed to update contest %s status: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("contest %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ContestRepository) query(ctx context.Context, query string, args ...any) ([]domain.Contest, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list contests: %w", err)
	}
	defer rows.Close()

	result := []domain.Contest{}
	for rows.Next() {
		c, err := scanContest(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *c)
	}
	return result, rows.Err()
}

func scanContest(row scanner) (*domain.Contest, error) {
	var c domain.Contest
	var status string
	err := row.Scan(&c.ID, &c.Name, &c.MatchID, &c.EntryFee, &c.PrizePool, &c.MaxParticipants,
		&c.CreatedBy, &status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.Status = domain.ContestStatus(status)
	return &c, nil
}

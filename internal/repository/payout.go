package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"fantasy-cricket/internal/domain"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/rs/zerolog"
)

type PayoutRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPayoutRepository(sqlDB *sql.DB, logger zerolog.Logger) *PayoutRepository {
	return &PayoutRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// ReplaceForContest swaps the stored payouts of a contest for payouts in one
// transaction.
func (r *PayoutRepository) ReplaceForContest(ctx context.Context, contestID string, payouts []domain.Payout) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM payouts WHERE contest_id = ?`, contestID); err != nil {
		return fmt.Errorf("failed to clear payouts for %s: %w", contestID, err)
	}

	now := time.Now().UTC()
	for i := range payouts {
		p := &payouts[i]
		if p.ID == "" {
			p.ID, err = gonanoid.New()
			if err != nil {
				return fmt.Errorf("failed to generate nanoid: %w", err)
			}
		}
		p.ContestID = contestID
		p.CreatedAt = now

		_, err := tx.ExecContext(ctx,
			`INSERT INTO payouts (id, contest_id, rank, team_id, user_id, points, amount, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			p.ID, p.ContestID, p.Rank, p.TeamID, p.UserID, p.Points, p.Amount, p.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert payout rank %d for %s: %w", p.Rank, contestID, err)
		}
	}

	return tx.Commit()
}

func (r *PayoutRepository) ListByContest(ctx context.Context, contestID string) ([]domain.Payout, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, contest_id, rank, team_id, user_id, points, amount, created_at
		 FROM payouts WHERE contest_id = ? ORDER BY rank`, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payouts for %s: %w", contestID, err)
	}
	defer rows.Close()

	result := []domain.Payout{}
	for rows.Next() {
		var p domain.Payout
		if err := rows.Scan(&p.ID, &p.ContestID, &p.Rank, &p.TeamID, &p.UserID, &p.Points, &p.Amount, &p.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

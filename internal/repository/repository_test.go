package repository

import (
	"context"
	"database/sql"
	"io"
	"path/filepath"
	"testing"

	"fantasy-cricket/internal/config"
	"fantasy-cricket/internal/database"
	"fantasy-cricket/internal/domain"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	cfg := &config.Config{DBPath: filepath.Join(t.TempDir(), "fantasy.db")}
	db, err := database.New(cfg, zerolog.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func seedContest(t *testing.T, repo *ContestRepository, matchID string) *domain.Contest {
	t.Helper()
	c := &domain.Contest{
		Name:            "Saturday Opener",
		MatchID:         matchID,
		EntryFee:        decimal.NewFromInt(50),
		PrizePool:       decimal.NewFromInt(1000),
		MaxParticipants: 100,
		CreatedBy:       "admin",
	}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func newTeam(contestID, userID string) *domain.Team {
	return &domain.Team{
		ContestID:   contestID,
		UserID:      userID,
		Name:        userID + " XI",
		Players:     []string{"Sri", "Sathiya", "Halith", "Alfar", "Azar", "Chintu", "Bastin"},
		Captain:     "Sri",
		ViceCaptain: "Azar",
		Cost:        4400,
	}
}

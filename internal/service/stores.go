package service

import (
	"context"

	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/roster"
)

type PerformanceStore interface {
	Upsert(ctx context.Context, p *domain.Performance) error
	ListByMatch(ctx context.Context, matchID string) ([]domain.Performance, error)
}

type TeamStore interface {
	Create(ctx context.Context, t *domain.Team, maxParticipants int) error
	ListAll(ctx context.Context) ([]domain.Team, error)
	ListByContest(ctx context.Context, contestID string) ([]domain.Team, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Team, error)
	ListByMatch(ctx context.Context, matchID string) ([]domain.Team, error)
	UpdatePoints(ctx context.Context, teamID string, points float64) error
}

type ContestStore interface {
	Create(ctx context.Context, c *domain.Contest) error
	Get(ctx context.Context, id string) (*domain.Contest, error)
	List(ctx context.Context) ([]domain.Contest, error)
	ListByMatch(ctx context.Context, matchID string) ([]domain.Contest, error)
	UpdateStatus(ctx context.Context, id string, status domain.ContestStatus) error
}

type PayoutStore interface {
	ReplaceForContest(ctx context.Context, contestID string, payouts []domain.Payout) error
	ListByContest(ctx context.Context, contestID string) ([]domain.Payout, error)
}

type FixtureCatalog interface {
	Fixture(matchID string) (domain.Fixture, error)
	Fixtures() []domain.Fixture
	MatchPlayers(matchID string) (map[string]roster.MatchPlayer, error)
	SetFixtureStatus(ctx context.Context, matchID string, next domain.FixtureStatus) (domain.Fixture, error)
}

package service

import (
	"context"
	"fmt"
	"strings"

	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/leaderboard"
	"fantasy-cricket/internal/prize"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// defaultPoolShare is the part of the collected entry fees paid back as
// prizes when a contest is created without an explicit pool.
var defaultPoolShare = decimal.RequireFromString("0.9")

type ContestService struct {
	contests     ContestStore
	teams        TeamStore
	payouts      PayoutStore
	catalog      FixtureCatalog
	contestLocks *keyedMutex
	logger       zerolog.Logger
}

func NewContestService(contests ContestStore, teams TeamStore, payouts PayoutStore, catalog FixtureCatalog, logger zerolog.Logger) *ContestService {
	return &ContestService{
		contests:     contests,
		teams:        teams,
		payouts:      payouts,
		catalog:      catalog,
		contestLocks: newKeyedMutex(),
		logger:       logger,
	}
}

type CreateContestRequest struct {
	Name            string
	MatchID         string
	EntryFee        decimal.Decimal
	PrizePool       decimal.Decimal
	MaxParticipants int
	CreatedBy       string
}

func (s *ContestService) CreateContest(ctx context.Context, req CreateContestRequest) (*domain.Contest, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("contest name is required: %w", domain.ErrInvalidInput)
	}
	if req.MaxParticipants < 2 {
		return nil, fmt.Errorf("max participants must be at least 2: %w", domain.ErrInvalidInput)
	}
	if req.EntryFee.IsNegative() || req.PrizePool.IsNegative() {
		return nil, fmt.Errorf("fees must not be negative: %w", domain.ErrInvalidInput)
	}

	fixture, err := s.catalog.Fixture(req.MatchID)
	if err != nil {
		return nil, err
	}
	if fixture.Status != domain.FixtureUpcoming {
		return nil, fmt.Errorf("match %s is %s: %w", fixture.MatchID, fixture.Status, domain.ErrContestClosed)
	}

	pool := req.PrizePool
	if pool.IsZero() {
		pool = req.EntryFee.Mul(decimal.NewFromInt(int64(req.MaxParticipants))).Mul(defaultPoolShare).Floor()
	}

	contest := &domain.Contest{
		Name:            strings.TrimSpace(req.Name),
		MatchID:         req.MatchID,
		EntryFee:        req.EntryFee,
		PrizePool:       pool,
		MaxParticipants: req.MaxParticipants,
		CreatedBy:       req.CreatedBy,
		Status:          domain.ContestActive,
	}
	if err := s.contests.Create(ctx, contest); err != nil {
		s.logger.Error().Err(err).Str("match_id", req.MatchID).Msg("failed to create contest")
		return nil, err
	}

	s.logger.Info().
		Str("contest_id", contest.ID).
		Str("match_id", contest.MatchID).
		Str("prize_pool", contest.PrizePool.String()).
		Msg("contest created")
	return contest, nil
}

func (s *ContestService) ListContests(ctx context.Context) ([]domain.Contest, error) {
	return s.contests.List(ctx)
}

// Leaderboard ranks the contest's teams by their stored totals.
func (s *ContestService) Leaderboard(ctx context.Context, contestID string) ([]domain.LeaderboardEntry, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if _, err := s.contests.Get(ctx, contestID); err != nil {
		return nil, err
	}
	teams, err := s.teams.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for %s: %w", contestID, err)
	}
	return leaderboard.Build(teams), nil
}

// Complete closes a contest whose match has completed and stores its payouts.
// Payouts are written before the status, so a failed call can simply be
// retried.
func (s *ContestService) Complete(ctx context.Context, contestID string) ([]domain.Payout, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	unlock := s.contestLocks.Lock(contestID)
	defer unlock()

	contest, err := s.contests.Get(ctx, contestID)
	if err != nil {
		return nil, err
	}
	next, err := contest.Status.Transition(domain.ContestCompleted)
	if err != nil {
		return nil, err
	}
	fixture, err := s.catalog.Fixture(contest.MatchID)
	if err != nil {
		return nil, err
	}
	if fixture.Status != domain.FixtureCompleted {
		return nil, fmt.Errorf("match %s is %s: %w", fixture.MatchID, fixture.Status, domain.ErrMatchNotCompleted)
	}

	teams, err := s.teams.ListByContest(ctx, contestID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teams for %s: %w", contestID, err)
	}
	standings := leaderboard.Build(teams)
	amounts := prize.Distribute(contest.PrizePool, len(standings))

	payouts := make([]domain.Payout, 0, len(amounts))
	for _, entry := range standings {
		amount, ok := amounts[entry.Rank]
		if !ok {
			break
		}
		payouts = append(payouts, domain.Payout{
			ContestID: contestID,
			Rank:      entry.Rank,
			TeamID:    entry.Team.ID,
			UserID:    entry.Team.UserID,
			Points:    entry.Team.TotalPoints,
			Amount:    amount,
		})
	}

	if err := s.payouts.ReplaceForContest(ctx, contestID, payouts); err != nil {
		s.logger.Error().Err(err).Str("contest_id", contestID).Msg("failed to store payouts")
		return nil, fmt.Errorf("failed to store payouts: %w", err)
	}
	if err := s.contests.UpdateStatus(ctx, contestID, next); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("contest_id", contestID).
		Int("participants", len(standings)).
		Int("paid", len(payouts)).
		Msg("contest completed")
	return payouts, nil
}

func (s *ContestService) Cancel(ctx context.Context, contestID string) error {
	unlock := s.contestLocks.Lock(contestID)
	defer unlock()

	contest, err := s.contests.Get(ctx, contestID)
	if err != nil {
		return err
	}
	next, err := contest.Status.Transition(domain.ContestCancelled)
	if err != nil {
		return err
	}
	if err := s.contests.UpdateStatus(ctx, contestID, next); err != nil {
		return err
	}
	s.logger.Info().Str("contest_id", contestID).Msg("contest cancelled")
	return nil
}

// GoLive moves every active contest on matchID to live.
func (s *ContestService) GoLive(ctx context.Context, matchID string) (int, error) {
	contests, err := s.contests.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, err
	}

	moved := 0
	for _, c := range contests {
		if c.Status != domain.ContestActive {
			continue
		}
		unlock := s.contestLocks.Lock(c.ID)
		err := s.contests.UpdateStatus(ctx, c.ID, domain.ContestLive)
		unlock()
		if err != nil {
			return moved, err
		}
		moved++
	}
	return moved, nil
}

func (s *ContestService) Payouts(ctx context.Context, contestID string) ([]domain.Payout, error) {
	if _, err := s.contests.Get(ctx, contestID); err != nil {
		return nil, err
	}
	return s.payouts.ListByContest(ctx, contestID)
}

package service

import (
	"context"
	"fmt"

	"fantasy-cricket/internal/domain"

	"github.com/rs/zerolog"
)

// MatchService drives fixture status and the work each change triggers.
type MatchService struct {
	catalog  FixtureCatalog
	contests *ContestService
	scoring  *ScoringService
	logger   zerolog.Logger
}

func NewMatchService(catalog FixtureCatalog, contests *ContestService, scoring *ScoringService, logger zerolog.Logger) *MatchService {
	return &MatchService{catalog: catalog, contests: contests, scoring: scoring, logger: logger}
}

func (s *MatchService) Fixtures() []domain.Fixture {
	return s.catalog.Fixtures()
}

// Start puts a fixture live and closes its contests to new teams.
func (s *MatchService) Start(ctx context.Context, matchID string) (domain.Fixture, error) {
	fixture, err := s.catalog.SetFixtureStatus(ctx, matchID, domain.FixtureLive)
	if err != nil {
		return fixture, err
	}

	moved, err := s.contests.GoLive(ctx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to move contests live")
		return fixture, fmt.Errorf("failed to move contests live: %w", err)
	}

	s.logger.Info().Str("match_id", matchID).Int("contests", moved).Msg("match started")
	return fixture, nil
}

// Complete recomputes every team entered on a live fixture and then marks it
// completed. A failed recompute leaves the fixture live so the call can be
// retried.
func (s *MatchService) Complete(ctx context.Context, matchID string) (domain.Fixture, int, error) {
	fixture, err := s.catalog.Fixture(matchID)
	if err != nil {
		return fixture, 0, err
	}
	if _, err := fixture.Status.Transition(domain.FixtureCompleted); err != nil {
		return fixture, 0, err
	}

	updated, err := s.scoring.RecomputeMatch(ctx, matchID)
	if err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("recompute failed, match left live")
		return fixture, 0, err
	}

	fixture, err = s.catalog.SetFixtureStatus(ctx, matchID, domain.FixtureCompleted)
	if err != nil {
		return fixture, updated, err
	}

	s.logger.Info().Str("match_id", matchID).Int("teams", updated).Msg("match completed")
	return fixture, updated, nil
}

// Recompute re-aggregates every team on a fixture without changing its
// status.
func (s *MatchService) Recompute(ctx context.Context, matchID string) (int, error) {
	if _, err := s.catalog.Fixture(matchID); err != nil {
		return 0, err
	}
	return s.scoring.RecomputeMatch(ctx, matchID)
}

package service

import (
	"context"
	"fmt"

	"fantasy-cricket/internal/config"
	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/scoring"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

type ScoringService struct {
	perfs      PerformanceStore
	teams      TeamStore
	catalog    FixtureCatalog
	engine     *scoring.Engine
	aggregator *scoring.Aggregator
	matchLocks *keyedMutex
	logger     zerolog.Logger
}

func NewScoringService(perfs PerformanceStore, teams TeamStore, catalog FixtureCatalog, cfg *config.Config, logger zerolog.Logger) *ScoringService {
	rules := scoring.DefaultRules()
	if cfg.StrikeRateBanded {
		rules = scoring.BandedRules()
	}
	missing := scoring.ScoreAsZero
	if !cfg.AwardAbsentParticipation {
		missing = scoring.SkipMissing
	}

	engine := scoring.NewEngine(rules)
	return &ScoringService{
		perfs:      perfs,
		teams:      teams,
		catalog:    catalog,
		engine:     engine,
		aggregator: scoring.NewAggregator(engine, missing),
		matchLocks: newKeyedMutex(),
		logger:     logger,
	}
}

// Preview scores stats without storing anything.
func (s *ScoringService) Preview(stats domain.Stats) int {
	return s.engine.Score(stats)
}

// SavePerformance scores and upserts a player's stats for a match, then
// recomputes every team entered in that match's contests. Saving the same
// stats twice leaves the same record and the same team totals.
func (s *ScoringService) SavePerformance(ctx context.Context, matchID, playerName string, stats domain.Stats) (*domain.Performance, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if matchID == "" || playerName == "" {
		return nil, fmt.Errorf("match and player are required: %w", domain.ErrInvalidInput)
	}

	players, err := s.catalog.MatchPlayers(matchID)
	if err != nil {
		return nil, err
	}
	player, ok := players[playerName]
	if !ok {
		return nil, fmt.Errorf("%s in %s: %w", playerName, matchID, domain.ErrPlayerNotInMatch)
	}

	unlock := s.matchLocks.Lock(matchID)
	defer unlock()

	perf := &domain.Performance{
		MatchID:     matchID,
		PlayerName:  playerName,
		TeamName:    player.Side,
		Stats:       stats,
		TotalPoints: s.engine.Score(stats),
	}
	if err := s.perfs.Upsert(ctx, perf); err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Str("player", playerName).Msg("failed to save performance")
		return nil, fmt.Errorf("failed to save performance: %w", err)
	}

	s.logger.Info().
		Str("match_id", matchID).
		Str("player", playerName).
		Int("points", perf.TotalPoints).
		Msg("performance saved")

	if _, err := s.recompute(ctx, matchID); err != nil {
		return perf, err
	}
	return perf, nil
}

func (s *ScoringService) ListPerformances(ctx context.Context, matchID string) ([]domain.Performance, error) {
	return s.perfs.ListByMatch(ctx, matchID)
}

// RecomputeMatch re-aggregates and stores the total of every team entered in
// a contest bound to matchID. It returns how many teams were written.
func (s *ScoringService) RecomputeMatch(ctx context.Context, matchID string) (int, error) {
	unlock := s.matchLocks.Lock(matchID)
	defer unlock()
	return s.recompute(ctx, matchID)
}

// recompute expects the match lock to be held.
func (s *ScoringService) recompute(ctx context.Context, matchID string) (int, error) {
	perfs, err := s.perfs.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to load performances for %s: %w", matchID, err)
	}
	teams, err := s.teams.ListByMatch(ctx, matchID)
	if err != nil {
		return 0, fmt.Errorf("failed to load teams for %s: %w", matchID, err)
	}

	byPlayer := scoring.ByPlayer(perfs)

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(constants.RecomputeConcurrency)
	for _, team := range teams {
		g.Go(func() error {
			points := s.aggregator.Aggregate(team, byPlayer)
			if err := s.teams.UpdatePoints(gCtx, team.ID, points); err != nil {
				return fmt.Errorf("team %s: %w", team.ID, err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		s.logger.Error().Err(err).Str("match_id", matchID).Msg("failed to update team points")
		return 0, fmt.Errorf("failed to update team points: %w", err)
	}

	s.logger.Debug().
		Str("match_id", matchID).
		Int("performances", len(perfs)).
		Int("teams", len(teams)).
		Msg("team points recomputed")
	return len(teams), nil
}

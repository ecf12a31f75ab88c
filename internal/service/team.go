package service

import (
	"context"
	"fmt"
	"strings"

	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/roster"

	"github.com/rs/zerolog"
)

type TeamService struct {
	teams    TeamStore
	contests ContestStore
	catalog  FixtureCatalog
	logger   zerolog.Logger
}

func NewTeamService(teams TeamStore, contests ContestStore, catalog FixtureCatalog, logger zerolog.Logger) *TeamService {
	return &TeamService{teams: teams, contests: contests, catalog: catalog, logger: logger}
}

type CreateTeamRequest struct {
	ContestID   string
	UserID      string
	Name        string
	Players     []string
	Captain     string
	ViceCaptain string
}

// CreateTeam validates a drafted team against the contest's match and stores
// it. Nothing is written when validation fails.
func (s *TeamService) CreateTeam(ctx context.Context, req CreateTeamRequest) (*domain.Team, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.RequestTimeout)
	defer cancel()

	if req.UserID == "" {
		return nil, fmt.Errorf("user is required: %w", domain.ErrInvalidInput)
	}

	contest, err := s.contests.Get(ctx, req.ContestID)
	if err != nil {
		return nil, err
	}
	if !contest.Status.Joinable() {
		return nil, fmt.Errorf("contest %s is %s: %w", contest.ID, contest.Status, domain.ErrContestClosed)
	}

	eligible, err := s.catalog.MatchPlayers(contest.MatchID)
	if err != nil {
		return nil, err
	}

	cost, err := ValidateTeam(req.Name, req.Players, req.Captain, req.ViceCaptain, eligible)
	if err != nil {
		s.logger.Debug().Err(err).Str("contest_id", contest.ID).Str("user_id", req.UserID).Msg("team rejected")
		return nil, err
	}

	team := &domain.Team{
		ContestID:   contest.ID,
		UserID:      req.UserID,
		Name:        strings.TrimSpace(req.Name),
		Players:     req.Players,
		Captain:     req.Captain,
		ViceCaptain: req.ViceCaptain,
		Cost:        cost,
	}
	if err := s.teams.Create(ctx, team, contest.MaxParticipants); err != nil {
		s.logger.Warn().Err(err).Str("contest_id", contest.ID).Str("user_id", req.UserID).Msg("failed to create team")
		return nil, err
	}

	s.logger.Info().
		Str("team_id", team.ID).
		Str("contest_id", contest.ID).
		Str("user_id", req.UserID).
		Int("cost", cost).
		Msg("team created")
	return team, nil
}

func (s *TeamService) ListUserTeams(ctx context.Context, userID string) ([]domain.Team, error) {
	return s.teams.ListByUser(ctx, userID)
}

func (s *TeamService) ListTeams(ctx context.Context) ([]domain.Team, error) {
	return s.teams.ListAll(ctx)
}

// ValidateTeam checks a draft against the players eligible for the match and
// returns its total cost.
func ValidateTeam(name string, players []string, captain, viceCaptain string, eligible map[string]roster.MatchPlayer) (int, error) {
	if strings.TrimSpace(name) == "" {
		return 0, domain.ErrMissingTeamName
	}
	if len(players) != constants.TeamSize {
		return 0, fmt.Errorf("got %d: %w", len(players), domain.ErrWrongTeamSize)
	}

	cost := 0
	picked := make(map[string]bool, len(players))
	for _, player := range players {
		if picked[player] {
			return 0, fmt.Errorf("%s: %w", player, domain.ErrDuplicatePlayer)
		}
		picked[player] = true

		p, ok := eligible[player]
		if !ok {
			return 0, fmt.Errorf("%s: %w", player, domain.ErrPlayerNotInMatch)
		}
		cost += p.Price
	}

	if cost > constants.TeamBudget {
		return 0, fmt.Errorf("cost %d over %d: %w", cost, constants.TeamBudget, domain.ErrOverBudget)
	}
	if captain == viceCaptain {
		return 0, domain.ErrCaptainIsViceCaptain
	}
	if !picked[captain] {
		return 0, fmt.Errorf("%s: %w", captain, domain.ErrCaptainNotInTeam)
	}
	if !picked[viceCaptain] {
		return 0, fmt.Errorf("%s: %w", viceCaptain, domain.ErrViceCaptainNotInTeam)
	}
	return cost, nil
}

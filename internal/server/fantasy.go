package server

import (
	"context"
	"errors"
	"net/http"

	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/service"

	"connectrpc.com/connect"
	"github.com/rs/zerolog"
)

const FantasyServiceName = "cricket.v1.FantasyService"

// FantasyServicePath is the mux prefix every procedure lives under.
const FantasyServicePath = "/" + FantasyServiceName + "/"

const (
	SavePerformanceProcedure  = FantasyServicePath + "SavePerformance"
	ListPerformancesProcedure = FantasyServicePath + "ListPerformances"
	ScorePreviewProcedure     = FantasyServicePath + "ScorePreview"
	CreateContestProcedure    = FantasyServicePath + "CreateContest"
	ListContestsProcedure     = FantasyServicePath + "ListContests"
	CancelContestProcedure    = FantasyServicePath + "CancelContest"
	CompleteContestProcedure  = FantasyServicePath + "CompleteContest"
	GetPayoutsProcedure       = FantasyServicePath + "GetPayouts"
	CreateTeamProcedure       = FantasyServicePath + "CreateTeam"
	ListUserTeamsProcedure    = FantasyServicePath + "ListUserTeams"
	ListTeamsProcedure        = FantasyServicePath + "ListTeams"
	GetLeaderboardProcedure   = FantasyServicePath + "GetLeaderboard"
	StartMatchProcedure       = FantasyServicePath + "StartMatch"
	CompleteMatchProcedure    = FantasyServicePath + "CompleteMatch"
	RecomputeMatchProcedure   = FantasyServicePath + "RecomputeMatch"
	ListFixturesProcedure     = FantasyServicePath + "ListFixtures"
)

type FantasyServer struct {
	scoringSvc *service.ScoringService
	teamSvc    *service.TeamService
	contestSvc *service.ContestService
	matchSvc   *service.MatchService
	logger     zerolog.Logger
}

func NewFantasyServer(
	scoringSvc *service.ScoringService,
	teamSvc *service.TeamService,
	contestSvc *service.ContestService,
	matchSvc *service.MatchService,
	logger zerolog.Logger,
) *FantasyServer {
	return &FantasyServer{
		scoringSvc: scoringSvc,
		teamSvc:    teamSvc,
		contestSvc: contestSvc,
		matchSvc:   matchSvc,
		logger:     logger,
	}
}

// NewFantasyServiceHandler builds an http.Handler serving every procedure and
// returns the path to mount it on.
func NewFantasyServiceHandler(s *FantasyServer, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)

	mux := http.NewServeMux()
	mux.Handle(SavePerformanceProcedure, connect.NewUnaryHandler(SavePerformanceProcedure, s.SavePerformance, opts...))
	mux.Handle(ListPerformancesProcedure, connect.NewUnaryHandler(ListPerformancesProcedure, s.ListPerformances, opts...))
	mux.Handle(ScorePreviewProcedure, connect.NewUnaryHandler(ScorePreviewProcedure, s.ScorePreview, opts...))
	mux.Handle(CreateContestProcedure, connect.NewUnaryHandler(CreateContestProcedure, s.CreateContest, opts...))
	mux.Handle(ListContestsProcedure, connect.NewUnaryHandler(ListContestsProcedure, s.ListContests, opts...))
	mux.Handle(CancelContestProcedure, connect.NewUnaryHandler(CancelContestProcedure, s.CancelContest, opts...))
	mux.Handle(CompleteContestProcedure, connect.NewUnaryHandler(CompleteContestProcedure, s.CompleteContest, opts...))
	mux.Handle(GetPayoutsProcedure, connect.NewUnaryHandler(GetPayoutsProcedure, s.GetPayouts, opts...))
	mux.Handle(CreateTeamProcedure, connect.NewUnaryHandler(CreateTeamProcedure, s.CreateTeam, opts...))
	mux.Handle(ListUserTeamsProcedure, connect.NewUnaryHandler(ListUserTeamsProcedure, s.ListUserTeams, opts...))
	mux.Handle(ListTeamsProcedure, connect.NewUnaryHandler(ListTeamsProcedure, s.ListTeams, opts...))
	mux.Handle(GetLeaderboardProcedure, connect.NewUnaryHandler(GetLeaderboardProcedure, s.GetLeaderboard, opts...))
	mux.Handle(StartMatchProcedure, connect.NewUnaryHandler(StartMatchProcedure, s.StartMatch, opts...))
	mux.Handle(CompleteMatchProcedure, connect.NewUnaryHandler(CompleteMatchProcedure, s.CompleteMatch, opts...))
	mux.Handle(RecomputeMatchProcedure, connect.NewUnaryHandler(RecomputeMatchProcedure, s.RecomputeMatch, opts...))
	mux.Handle(ListFixturesProcedure, connect.NewUnaryHandler(ListFixturesProcedure, s.ListFixtures, opts...))
	return FantasyServicePath, mux
}

func (s *FantasyServer) SavePerformance(ctx context.Context, req *connect.Request[SavePerformanceRequest]) (*connect.Response[SavePerformanceResponse], error) {
	perf, err := s.scoringSvc.SavePerformance(ctx, req.Msg.MatchID, req.Msg.PlayerName, req.Msg.Stats)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&SavePerformanceResponse{Performance: toPerformance(*perf)}), nil
}

func (s *FantasyServer) ListPerformances(ctx context.Context, req *connect.Request[ListPerformancesRequest]) (*connect.Response[ListPerformancesResponse], error) {
	perfs, err := s.scoringSvc.ListPerformances(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	out := make([]Performance, 0, len(perfs))
	for _, p := range perfs {
		out = append(out, toPerformance(p))
	}
	return connect.NewResponse(&ListPerformancesResponse{Performances: out}), nil
}

func (s *FantasyServer) ScorePreview(_ context.Context, req *connect.Request[ScorePreviewRequest]) (*connect.Response[ScorePreviewResponse], error) {
	return connect.NewResponse(&ScorePreviewResponse{Points: s.scoringSvc.Preview(req.Msg.Stats)}), nil
}

func (s *FantasyServer) CreateContest(ctx context.Context, req *connect.Request[CreateContestRequest]) (*connect.Response[ContestResponse], error) {
	contest, err := s.contestSvc.CreateContest(ctx, service.CreateContestRequest{
		Name:            req.Msg.Name,
		MatchID:         req.Msg.MatchID,
		EntryFee:        req.Msg.EntryFee,
		PrizePool:       req.Msg.PrizePool,
		MaxParticipants: req.Msg.MaxParticipants,
		CreatedBy:       req.Msg.CreatedBy,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&ContestResponse{Contest: toContest(*contest)}), nil
}

func (s *FantasyServer) ListContests(ctx context.Context, _ *connect.Request[ListContestsRequest]) (*connect.Response[ListContestsResponse], error) {
	contests, err := s.contestSvc.ListContests(ctx)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	out := make([]Contest, 0, len(contests))
	for _, c := range contests {
		out = append(out, toContest(c))
	}
	return connect.NewResponse(&ListContestsResponse{Contests: out}), nil
}

func (s *FantasyServer) CancelContest(ctx context.Context, req *connect.Request[CancelContestRequest]) (*connect.Response[CancelContestResponse], error) {
	if err := s.contestSvc.Cancel(ctx, req.Msg.ContestID); err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&CancelContestResponse{
		ContestID: req.Msg.ContestID,
		Status:    string(domain.ContestCancelled),
	}), nil
}

func (s *FantasyServer) CompleteContest(ctx context.Context, req *connect.Request[ContestIDRequest]) (*connect.Response[PayoutsResponse], error) {
	payouts, err := s.contestSvc.Complete(ctx, req.Msg.ContestID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&PayoutsResponse{Payouts: toPayouts(payouts)}), nil
}

func (s *FantasyServer) GetPayouts(ctx context.Context, req *connect.Request[ContestIDRequest]) (*connect.Response[PayoutsResponse], error) {
	payouts, err := s.contestSvc.Payouts(ctx, req.Msg.ContestID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&PayoutsResponse{Payouts: toPayouts(payouts)}), nil
}

func (s *FantasyServer) CreateTeam(ctx context.Context, req *connect.Request[CreateTeamRequest]) (*connect.Response[TeamResponse], error) {
	team, err := s.teamSvc.CreateTeam(ctx, service.CreateTeamRequest{
		ContestID:   req.Msg.ContestID,
		UserID:      req.Msg.UserID,
		Name:        req.Msg.Name,
		Players:     req.Msg.Players,
		Captain:     req.Msg.Captain,
		ViceCaptain: req.Msg.ViceCaptain,
	})
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&TeamResponse{Team: toTeam(*team)}), nil
}

func (s *FantasyServer) ListUserTeams(ctx context.Context, req *connect.Request[ListUserTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.teamSvc.ListUserTeams(ctx, req.Msg.UserID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListTeamsResponse{Teams: toTeams(teams)}), nil
}

func (s *FantasyServer) ListTeams(ctx context.Context, _ *connect.Request[ListTeamsRequest]) (*connect.Response[ListTeamsResponse], error) {
	teams, err := s.teamSvc.ListTeams(ctx)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&ListTeamsResponse{Teams: toTeams(teams)}), nil
}

func (s *FantasyServer) GetLeaderboard(ctx context.Context, req *connect.Request[GetLeaderboardRequest]) (*connect.Response[GetLeaderboardResponse], error) {
	entries, err := s.contestSvc.Leaderboard(ctx, req.Msg.ContestID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}

	out := make([]LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, LeaderboardEntry{Rank: e.Rank, Team: toTeam(e.Team)})
	}
	return connect.NewResponse(&GetLeaderboardResponse{Entries: out}), nil
}

func (s *FantasyServer) StartMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchStatusResponse], error) {
	fixture, err := s.matchSvc.Start(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&MatchStatusResponse{Fixture: fixture}), nil
}

func (s *FantasyServer) CompleteMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[MatchStatusResponse], error) {
	fixture, updated, err := s.matchSvc.Complete(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&MatchStatusResponse{Fixture: fixture, TeamsUpdated: updated}), nil
}

// RecomputeMatch re-aggregates team totals for a match, e.g. after a failed
// recompute during SavePerformance.
func (s *FantasyServer) RecomputeMatch(ctx context.Context, req *connect.Request[MatchRequest]) (*connect.Response[RecomputeMatchResponse], error) {
	updated, err := s.matchSvc.Recompute(ctx, req.Msg.MatchID)
	if err != nil {
		return nil, s.toConnectError(ctx, err)
	}
	return connect.NewResponse(&RecomputeMatchResponse{TeamsUpdated: updated}), nil
}

func (s *FantasyServer) ListFixtures(_ context.Context, _ *connect.Request[ListFixturesRequest]) (*connect.Response[ListFixturesResponse], error) {
	return connect.NewResponse(&ListFixturesResponse{Fixtures: s.matchSvc.Fixtures()}), nil
}

var invalidArgument = []error{
	domain.ErrInvalidInput,
	domain.ErrMissingTeamName,
	domain.ErrWrongTeamSize,
	domain.ErrDuplicatePlayer,
	domain.ErrOverBudget,
	domain.ErrPlayerNotInMatch,
	domain.ErrCaptainNotInTeam,
	domain.ErrViceCaptainNotInTeam,
	domain.ErrCaptainIsViceCaptain,
}

var failedPrecondition = []error{
	domain.ErrContestFull,
	domain.ErrContestClosed,
	domain.ErrInvalidTransition,
	domain.ErrMatchNotCompleted,
}

// codeOf maps a service error onto a connect code.
func codeOf(err error) connect.Code {
	for _, target := range invalidArgument {
		if errors.Is(err, target) {
			return connect.CodeInvalidArgument
		}
	}
	for _, target := range failedPrecondition {
		if errors.Is(err, target) {
			return connect.CodeFailedPrecondition
		}
	}

	switch {
	case errors.Is(err, domain.ErrTeamExists):
		return connect.CodeAlreadyExists
	case errors.Is(err, domain.ErrNotFound):
		return connect.CodeNotFound
	case errors.Is(err, context.DeadlineExceeded):
		return connect.CodeDeadlineExceeded
	case errors.Is(err, context.Canceled):
		return connect.CodeCanceled
	}
	return connect.CodeInternal
}

func (s *FantasyServer) toConnectError(ctx context.Context, err error) error {
	code := codeOf(err)
	if code == connect.CodeInternal {
		logger := zerolog.Ctx(ctx)
		if logger.GetLevel() == zerolog.Disabled {
			logger = &s.logger
		}
		logger.Error().Err(err).Msg("request failed")
	}
	return connect.NewError(code, err)
}

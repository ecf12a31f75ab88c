package fx

import (
	"fantasy-cricket/internal/api"
	"fantasy-cricket/internal/config"
	"fantasy-cricket/internal/database"
	"fantasy-cricket/internal/logger"
	"fantasy-cricket/internal/repository"
	"fantasy-cricket/internal/roster"
	"fantasy-cricket/internal/server"
	"fantasy-cricket/internal/service"

	"go.uber.org/fx"
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	fx.Provide(database.New),
	// repos
	fx.Provide(
		fx.Annotate(repository.NewPerformanceRepository, fx.As(new(service.PerformanceStore))),
		fx.Annotate(repository.NewTeamRepository, fx.As(new(service.TeamStore))),
		fx.Annotate(repository.NewContestRepository, fx.As(new(service.ContestStore))),
		fx.Annotate(repository.NewPayoutRepository, fx.As(new(service.PayoutStore))),
		fx.Annotate(repository.NewFixtureStatusRepository, fx.As(new(roster.StatusStore))),
	),
	// roster feed + catalog
	fx.Provide(api.NewRosterClient),
	fx.Provide(fx.Annotate(roster.New, fx.As(new(service.FixtureCatalog)))),
	// svc
	fx.Provide(service.NewScoringService),
	fx.Provide(service.NewTeamService),
	fx.Provide(service.NewContestService),
	fx.Provide(service.NewMatchService),
	// server
	fx.Provide(server.NewFantasyServer),
)

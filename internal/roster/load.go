package roster

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"fantasy-cricket/internal/api"
	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

//go:embed season.json
var seasonJSON []byte

// EmbeddedSeason returns the squads and fixtures shipped with the binary.
func EmbeddedSeason() (Season, error) {
	var s Season
	if err := json.Unmarshal(seasonJSON, &s); err != nil {
		return Season{}, fmt.Errorf("failed to decode embedded season: %w", err)
	}
	return s, nil
}

// New builds the catalog from the remote roster feed when one is configured
// and from the embedded season otherwise, then restores fixture statuses
// saved in store.
func New(client *api.RosterClient, store StatusStore, logger zerolog.Logger) (*Catalog, error) {
	ctx, cancel := context.WithTimeout(context.Background(), constants.ExternalAPITimeout)
	defer cancel()

	season, err := loadSeason(ctx, client, logger)
	if err != nil {
		return nil, err
	}

	catalog := NewCatalog(season, logger)
	if err := catalog.Attach(ctx, store); err != nil {
		logger.Error().Err(err).Msg("failed to restore fixture statuses")
		return nil, fmt.Errorf("failed to restore fixture statuses: %w", err)
	}
	return catalog, nil
}

func loadSeason(ctx context.Context, client *api.RosterClient, logger zerolog.Logger) (Season, error) {
	if !client.Enabled() {
		season, err := EmbeddedSeason()
		if err != nil {
			return Season{}, err
		}
		logger.Info().Int("squads", len(season.Squads)).Int("fixtures", len(season.Fixtures)).Msg("loaded embedded season")
		return season, nil
	}

	season, err := FetchSeason(ctx, client)
	if err != nil {
		logger.Error().Err(err).Msg("failed to fetch roster feed")
		return Season{}, fmt.Errorf("failed to fetch roster feed: %w", err)
	}

	logger.Info().Int("squads", len(season.Squads)).Int("fixtures", len(season.Fixtures)).Msg("loaded remote season")
	return season, nil
}

// FetchSeason loads squads and fixtures from the feed concurrently.
func FetchSeason(ctx context.Context, client *api.RosterClient) (Season, error) {
	g, gCtx := errgroup.WithContext(ctx)
	var squads *api.SquadsResponse
	var fixtures *api.FixturesResponse

	g.Go(func() error {
		var err error
		squads, err = client.GetSquads(gCtx)
		return err
	})

	g.Go(func() error {
		var err error
		fixtures, err = client.GetFixtures(gCtx)
		return err
	})

	if err := g.Wait(); err != nil {
		return Season{}, err
	}

	var season Season
	for _, s := range squads.Data {
		squad := domain.Squad{Name: s.Name}
		for _, p := range s.Players {
			squad.Players = append(squad.Players, domain.RosterPlayer{Name: p.Name, Price: p.Price})
		}
		season.Squads = append(season.Squads, squad)
	}
	for _, f := range fixtures.Data {
		if len(f.Teams) != 2 {
			return Season{}, fmt.Errorf("fixture %s lists %d sides: %w", f.MatchID, len(f.Teams), domain.ErrInvalidInput)
		}
		status := domain.FixtureStatus(f.Status)
		if status == "" {
			status = domain.FixtureUpcoming
		}
		if !status.Valid() {
			return Season{}, fmt.Errorf("fixture %s has status %q: %w", f.MatchID, f.Status, domain.ErrInvalidInput)
		}
		season.Fixtures = append(season.Fixtures, domain.Fixture{
			MatchID: f.MatchID,
			MatchNo: f.MatchNo,
			Sides:   [2]string{f.Teams[0], f.Teams[1]},
			Time:    f.Time,
			Day:     f.Day,
			Status:  status,
		})
	}
	return season, nil
}

// Package roster holds the season's reference data: which squads exist,
// what each player costs, and the fixture list with its match status.
package roster

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"fantasy-cricket/internal/domain"

	"github.com/rs/zerolog"
)

type Season struct {
	Squads   []domain.Squad   `json:"squads"`
	Fixtures []domain.Fixture `json:"fixtures"`
}

// MatchPlayer is a player eligible for a fixture, with the side they play for.
type MatchPlayer struct {
	Name  string
	Side  string
	Price int
}

// StatusStore persists fixture status so it survives a restart.
type StatusStore interface {
	SaveStatus(ctx context.Context, matchID string, status domain.FixtureStatus) error
	LoadStatuses(ctx context.Context) (map[string]domain.FixtureStatus, error)
}

// Catalog is the in-memory store of squads and fixtures. Fixture status only
// changes through SetFixtureStatus.
type Catalog struct {
	mu       sync.RWMutex
	squads   map[string]domain.Squad
	fixtures map[string]domain.Fixture
	store    StatusStore
	logger   zerolog.Logger
}

func NewCatalog(season Season, logger zerolog.Logger) *Catalog {
	c := &Catalog{
		squads:   make(map[string]domain.Squad, len(season.Squads)),
		fixtures: make(map[string]domain.Fixture, len(season.Fixtures)),
		logger:   logger,
	}
	for _, s := range season.Squads {
		c.squads[s.Name] = s
	}
	for _, f := range season.Fixtures {
		if !f.Status.Valid() {
			f.Status = domain.FixtureUpcoming
		}
		c.fixtures[f.MatchID] = f
	}
	return c
}

func (c *Catalog) Fixture(matchID string) (domain.Fixture, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, ok := c.fixtures[matchID]
	if !ok {
		return domain.Fixture{}, fmt.Errorf("fixture %s: %w", matchID, domain.ErrNotFound)
	}
	return f, nil
}

// Fixtures returns all fixtures ordered by match number.
func (c *Catalog) Fixtures() []domain.Fixture {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]domain.Fixture, 0, len(c.fixtures))
	for _, f := range c.fixtures {
		out = append(out, f)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].MatchNo < out[j].MatchNo })
	return out
}

func (c *Catalog) Squad(name string) (domain.Squad, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	s, ok := c.squads[name]
	if !ok {
		return domain.Squad{}, fmt.Errorf("squad %s: %w", name, domain.ErrNotFound)
	}
	return s, nil
}

// MatchPlayers returns every player from both sides of matchID keyed by name.
func (c *Catalog) MatchPlayers(matchID string) (map[string]MatchPlayer, error) {
	f, err := c.Fixture(matchID)
	if err != nil {
		return nil, err
	}

	out := make(map[string]MatchPlayer)
	for _, side := range f.Sides {
		squad, err := c.Squad(side)
		if err != nil {
			return nil, err
		}
		for _, p := range squad.Players {
			out[p.Name] = MatchPlayer{Name: p.Name, Side: side, Price: p.Price}
		}
	}
	return out, nil
}

// Attach loads saved statuses over the season defaults and makes every later
// status change persist to store.
func (c *Catalog) Attach(ctx context.Context, store StatusStore) error {
	saved, err := store.LoadStatuses(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for matchID, status := range saved {
		f, ok := c.fixtures[matchID]
		if !ok {
			continue
		}
		if !status.Valid() {
			c.logger.Warn().Str("match_id", matchID).Str("status", string(status)).Msg("ignoring unknown saved fixture status")
			continue
		}
		f.Status = status
		c.fixtures[matchID] = f
	}
	c.store = store
	return nil
}

// SetFixtureStatus moves a fixture along upcoming -> live -> completed. With a
// store attached the change is saved before it becomes visible.
func (c *Catalog) SetFixtureStatus(ctx context.Context, matchID string, next domain.FixtureStatus) (domain.Fixture, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	f, ok := c.fixtures[matchID]
	if !ok {
		return domain.Fixture{}, fmt.Errorf("fixture %s: %w", matchID, domain.ErrNotFound)
	}

	status, err := f.Status.Transition(next)
	if err != nil {
		return f, err
	}
	if c.store != nil {
		if err := c.store.SaveStatus(ctx, matchID, status); err != nil {
			return f, err
		}
	}
	f.Status = status
	c.fixtures[matchID] = f

	c.logger.Info().Str("match_id", matchID).Str("status", string(status)).Msg("fixture status changed")
	return f, nil
}

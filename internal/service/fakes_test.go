package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"testing"
	"time"

	"fantasy-cricket/internal/config"
	"fantasy-cricket/internal/domain"
	"fantasy-cricket/internal/roster"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

// In-memory stores. They keep the same uniqueness and capacity rules the
// SQLite repositories enforce.

type fakePerformances struct {
	mu   sync.Mutex
	rows map[string]domain.Performance
	seq  int
}

func newFakePerformances() *fakePerformances {
	return &fakePerformances{rows: make(map[string]domain.Performance)}
}

func (f *fakePerformances) Upsert(_ context.Context, p *domain.Performance) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	key := p.MatchID + "/" + p.PlayerName
	now := time.Now()
	if existing, ok := f.rows[key]; ok {
		p.ID = existing.ID
		p.CreatedAt = existing.CreatedAt
	} else {
		f.seq++
		p.ID = fmt.Sprintf("perf-%d", f.seq)
		p.CreatedAt = now
	}
	p.UpdatedAt = now
	f.rows[key] = *p
	return nil
}

func (f *fakePerformances) ListByMatch(_ context.Context, matchID string) ([]domain.Performance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Performance{}
	for _, p := range f.rows {
		if p.MatchID == matchID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerName < out[j].PlayerName })
	return out, nil
}

type fakeContests struct {
	mu   sync.Mutex
	rows map[string]domain.Contest
	seq  int
}

func newFakeContests() *fakeContests {
	return &fakeContests{rows: make(map[string]domain.Contest)}
}

func (f *fakeContests) Create(_ context.Context, c *domain.Contest) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.seq++
	c.ID = fmt.Sprintf("contest-%d", f.seq)
	if c.Status == "" {
		c.Status = domain.ContestActive
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	f.rows[c.ID] = *c
	return nil
}

func (f *fakeContests) Get(_ context.Context, id string) (*domain.Contest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.rows[id]
	if !ok {
		return nil, fmt.Errorf("contest %s: %w", id, domain.ErrNotFound)
	}
	return &c, nil
}

func (f *fakeContests) List(_ context.Context) ([]domain.Contest, error) {
	return f.filter(func(domain.Contest) bool { return true }), nil
}

func (f *fakeContests) ListByMatch(_ context.Context, matchID string) ([]domain.Contest, error) {
	return f.filter(func(c domain.Contest) bool { return c.MatchID == matchID }), nil
}

func (f *fakeContests) UpdateStatus(_ context.Context, id string, status domain.ContestStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	c, ok := f.rows[id]
	if !ok {
		return fmt.Errorf("contest %s: %w", id, domain.ErrNotFound)
	}
	c.Status = status
	f.rows[id] = c
	return nil
}

func (f *fakeContests) filter(keep func(domain.Contest) bool) []domain.Contest {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Contest{}
	for _, c := range f.rows {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type fakeTeams struct {
	mu       sync.Mutex
	rows     []domain.Team
	contests *fakeContests
	clock    time.Time

	// failUpdates makes the next n UpdatePoints calls fail.
	failUpdates int
}

func newFakeTeams(contests *fakeContests) *fakeTeams {
	return &fakeTeams{contests: contests, clock: time.Date(2025, 6, 7, 6, 0, 0, 0, time.UTC)}
}

func (f *fakeTeams) Create(_ context.Context, t *domain.Team, maxParticipants int) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	contest, err := f.contests.Get(context.Background(), t.ContestID)
	if err != nil {
		return err
	}
	if !contest.Status.Joinable() {
		return domain.ErrContestClosed
	}

	entered := 0
	for _, existing := range f.rows {
		if existing.ContestID != t.ContestID {
			continue
		}
		if existing.UserID == t.UserID {
			return domain.ErrTeamExists
		}
		entered++
	}
	if entered >= maxParticipants {
		return domain.ErrContestFull
	}

	// Strictly increasing timestamps keep the tie-break deterministic.
	f.clock = f.clock.Add(time.Second)
	t.ID = fmt.Sprintf("team-%d", len(f.rows)+1)
	t.CreatedAt = f.clock
	t.UpdatedAt = f.clock
	f.rows = append(f.rows, *t)
	return nil
}

func (f *fakeTeams) ListAll(_ context.Context) ([]domain.Team, error) {
	return f.filter(func(domain.Team) bool { return true }), nil
}

func (f *fakeTeams) ListByContest(_ context.Context, contestID string) ([]domain.Team, error) {
	return f.filter(func(t domain.Team) bool { return t.ContestID == contestID }), nil
}

func (f *fakeTeams) ListByUser(_ context.Context, userID string) ([]domain.Team, error) {
	return f.filter(func(t domain.Team) bool { return t.UserID == userID }), nil
}

func (f *fakeTeams) ListByMatch(ctx context.Context, matchID string) ([]domain.Team, error) {
	contests, err := f.contests.ListByMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	onMatch := make(map[string]bool, len(contests))
	for _, c := range contests {
		onMatch[c.ID] = true
	}
	return f.filter(func(t domain.Team) bool { return onMatch[t.ContestID] }), nil
}

func (f *fakeTeams) UpdatePoints(_ context.Context, teamID string, points float64) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.failUpdates > 0 {
		f.failUpdates--
		return errors.New("disk full")
	}
	for i := range f.rows {
		if f.rows[i].ID == teamID {
			f.rows[i].TotalPoints = points
			return nil
		}
	}
	return fmt.Errorf("team %s: %w", teamID, domain.ErrNotFound)
}

func (f *fakeTeams) filter(keep func(domain.Team) bool) []domain.Team {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := []domain.Team{}
	for _, t := range f.rows {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

type fakePayouts struct {
	mu   sync.Mutex
	rows map[string][]domain.Payout
}

func newFakePayouts() *fakePayouts {
	return &fakePayouts{rows: make(map[string][]domain.Payout)}
}

func (f *fakePayouts) ReplaceForContest(_ context.Context, contestID string, payouts []domain.Payout) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	stored := make([]domain.Payout, len(payouts))
	for i, p := range payouts {
		p.ID = fmt.Sprintf("%s-payout-%d", contestID, p.Rank)
		stored[i] = p
	}
	f.rows[contestID] = stored
	return nil
}

func (f *fakePayouts) ListByContest(_ context.Context, contestID string) ([]domain.Payout, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	return append([]domain.Payout{}, f.rows[contestID]...), nil
}

// harness wires every service over fresh fakes and the embedded season.
type harness struct {
	perfs    *fakePerformances
	contests *fakeContests
	teams    *fakeTeams
	payouts  *fakePayouts
	catalog  *roster.Catalog

	scoring    *ScoringService
	teamSvc    *TeamService
	contestSvc *ContestService
	matchSvc   *MatchService
}

func newHarness(t *testing.T, cfg *config.Config) *harness {
	t.Helper()

	season, err := roster.EmbeddedSeason()
	require.NoError(t, err)

	logger := zerolog.Nop()
	h := &harness{
		perfs:    newFakePerformances(),
		contests: newFakeContests(),
		payouts:  newFakePayouts(),
		catalog:  roster.NewCatalog(season, logger),
	}
	h.teams = newFakeTeams(h.contests)

	h.scoring = NewScoringService(h.perfs, h.teams, h.catalog, cfg, logger)
	h.teamSvc = NewTeamService(h.teams, h.contests, h.catalog, logger)
	h.contestSvc = NewContestService(h.contests, h.teams, h.payouts, h.catalog, logger)
	h.matchSvc = NewMatchService(h.catalog, h.contestSvc, h.scoring, logger)
	return h
}

func defaultConfig() *config.Config {
	return &config.Config{AwardAbsentParticipation: true}
}

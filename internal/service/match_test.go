package service

import (
	"context"
	"testing"

	"fantasy-cricket/internal/config"
	"fantasy-cricket/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchService_StartMovesContestsLive(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultConfig())
	open := createContest(t, h, 1000, 10)
	cancelled := createContest(t, h, 1000, 10)
	require.NoError(t, h.contestSvc.Cancel(ctx, cancelled.ID))

	fixture, err := h.matchSvc.Start(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, domain.FixtureLive, fixture.Status)

	got, err := h.contests.Get(ctx, open.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestLive, got.Status)

	got, err = h.contests.Get(ctx, cancelled.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ContestCancelled, got.Status)
}

func TestMatchService_StatusOrder(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultConfig())

	_, _, err := h.matchSvc.Complete(ctx, "M001")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = h.matchSvc.Start(ctx, "M001")
	require.NoError(t, err)
	_, err = h.matchSvc.Start(ctx, "M001")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, _, err = h.matchSvc.Complete(ctx, "M001")
	require.NoError(t, err)

	_, err = h.matchSvc.Start(ctx, "M999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMatchService_Fixtures(t *testing.T) {
	h := newHarness(t, defaultConfig())
	fixtures := h.matchSvc.Fixtures()
	require.NotEmpty(t, fixtures)
	assert.Equal(t, "M001", fixtures[0].MatchID)
}

func finishMatch(t *testing.T, h *harness, matchID string) {
	t.Helper()
	ctx := context.Background()
	_, err := h.matchSvc.Start(ctx, matchID)
	require.NoError(t, err)
	_, _, err = h.matchSvc.Complete(ctx, matchID)
	require.NoError(t, err)
}

func TestMatchService_CompleteRetriesAfterFailedRecompute(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, &config.Config{AwardAbsentParticipation: false})
	contest := createContest(t, h, 1000, 10)
	_, err := h.teamSvc.CreateTeam(ctx, withContest(draftA, contest.ID))
	require.NoError(t, err)

	_, err = h.matchSvc.Start(ctx, "M001")
	require.NoError(t, err)

	h.teams.failUpdates = 1
	_, err = h.scoring.SavePerformance(ctx, "M001", "Sri", domain.Stats{Runs: 50, BallsFaced: 20})
	require.Error(t, err)

	h.teams.failUpdates = 1
	_, _, err = h.matchSvc.Complete(ctx, "M001")
	require.Error(t, err)

	f, err := h.catalog.Fixture("M001")
	require.NoError(t, err)
	assert.Equal(t, domain.FixtureLive, f.Status)

	fixture, updated, err := h.matchSvc.Complete(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, domain.FixtureCompleted, fixture.Status)
	assert.Equal(t, 1, updated)
	assert.Equal(t, map[string]float64{"u1": 136}, teamPoints(t, h, contest.ID))
}

func TestMatchService_RecomputeKeepsStatus(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, &config.Config{AwardAbsentParticipation: false})
	contest := createContest(t, h, 1000, 10)
	_, err := h.teamSvc.CreateTeam(ctx, withContest(draftB, contest.ID))
	require.NoError(t, err)
	finishMatch(t, h, "M001")

	h.teams.failUpdates = 1
	_, err = h.scoring.SavePerformance(ctx, "M001", "Azar", domain.Stats{Runs: 36})
	require.Error(t, err)
	assert.Equal(t, 0.0, teamPoints(t, h, contest.ID)["u2"])

	updated, err := h.matchSvc.Recompute(ctx, "M001")
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	assert.Equal(t, 40.0, teamPoints(t, h, contest.ID)["u2"])

	f, err := h.catalog.Fixture("M001")
	require.NoError(t, err)
	assert.Equal(t, domain.FixtureCompleted, f.Status)

	_, err = h.matchSvc.Recompute(ctx, "M999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

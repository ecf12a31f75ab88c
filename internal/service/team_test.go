package service

import (
	"context"
	"testing"

	"fantasy-cricket/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Both drafts are from the M001 sides, Clutch Knights and Friendz Titans.
var (
	draftA = CreateTeamRequest{
		UserID:      "u1",
		Name:        "Night Owls",
		Players:     []string{"Sri", "Sathiya", "Halith", "Alfar", "Chintu", "Rasool", "Gopal"},
		Captain:     "Sri",
		ViceCaptain: "Alfar",
	}
	draftB = CreateTeamRequest{
		UserID:      "u2",
		Name:        "Early Birds",
		Players:     []string{"Azar", "Suriya VKS", "Akash Randy", "Dhavuth", "Mappi", "Bastin", "GopiR"},
		Captain:     "Mappi",
		ViceCaptain: "Dhavuth",
	}
)

func withContest(req CreateTeamRequest, contestID string) CreateTeamRequest {
	req.ContestID = contestID
	req.Players = append([]string(nil), req.Players...)
	return req
}

func createContest(t *testing.T, h *harness, pool int64, maxParticipants int) *domain.Contest {
	t.Helper()
	c, err := h.contestSvc.CreateContest(context.Background(), CreateContestRequest{
		Name:            "Saturday Special",
		MatchID:         "M001",
		EntryFee:        decimal.NewFromInt(100),
		PrizePool:       decimal.NewFromInt(pool),
		MaxParticipants: maxParticipants,
		CreatedBy:       "admin",
	})
	require.NoError(t, err)
	return c
}

func TestValidateTeam(t *testing.T) {
	h := newHarness(t, defaultConfig())
	eligible, err := h.catalog.MatchPlayers("M001")
	require.NoError(t, err)

	tests := []struct {
		name    string
		mutate  func(r *CreateTeamRequest)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(r *CreateTeamRequest) {},
		},
		{
			name:    "missing name",
			mutate:  func(r *CreateTeamRequest) { r.Name = "  " },
			wantErr: domain.ErrMissingTeamName,
		},
		{
			name:    "six players",
			mutate:  func(r *CreateTeamRequest) { r.Players = r.Players[:6] },
			wantErr: domain.ErrWrongTeamSize,
		},
		{
			name:    "duplicate player",
			mutate:  func(r *CreateTeamRequest) { r.Players[6] = "Sri" },
			wantErr: domain.ErrDuplicatePlayer,
		},
		{
			name:    "player from another fixture",
			mutate:  func(r *CreateTeamRequest) { r.Players[6] = "Rajadurai" },
			wantErr: domain.ErrPlayerNotInMatch,
		},
		{
			name: "over budget",
			mutate: func(r *CreateTeamRequest) {
				r.Players = []string{"Sri", "Sathiya", "Azar", "Prasanth rio", "Halith", "Alfar", "Akash Randy"}
			},
			wantErr: domain.ErrOverBudget,
		},
		{
			name:    "captain is vice-captain",
			mutate:  func(r *CreateTeamRequest) { r.ViceCaptain = r.Captain },
			wantErr: domain.ErrCaptainIsViceCaptain,
		},
		{
			name:    "captain not picked",
			mutate:  func(r *CreateTeamRequest) { r.Captain = "Azar" },
			wantErr: domain.ErrCaptainNotInTeam,
		},
		{
			name:    "vice-captain not picked",
			mutate:  func(r *CreateTeamRequest) { r.ViceCaptain = "Azar" },
			wantErr: domain.ErrViceCaptainNotInTeam,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := withContest(draftA, "")
			tt.mutate(&req)

			cost, err := ValidateTeam(req.Name, req.Players, req.Captain, req.ViceCaptain, eligible)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, cost)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 4340, cost)
		})
	}
}

func TestCreateTeam(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultConfig())
	contest := createContest(t, h, 1000, 2)

	team, err := h.teamSvc.CreateTeam(ctx, withContest(draftA, contest.ID))
	require.NoError(t, err)
	assert.NotEmpty(t, team.ID)
	assert.Equal(t, 4340, team.Cost)
	assert.Zero(t, team.TotalPoints)

	t.Run("second team for the same user", func(t *testing.T) {
		again := withContest(draftB, contest.ID)
		again.UserID = draftA.UserID
		_, err := h.teamSvc.CreateTeam(ctx, again)
		assert.ErrorIs(t, err, domain.ErrTeamExists)
	})

	_, err = h.teamSvc.CreateTeam(ctx, withContest(draftB, contest.ID))
	require.NoError(t, err)

	t.Run("contest full", func(t *testing.T) {
		late := withContest(draftB, contest.ID)
		late.UserID = "u3"
		_, err := h.teamSvc.CreateTeam(ctx, late)
		assert.ErrorIs(t, err, domain.ErrContestFull)
	})

	t.Run("unknown contest", func(t *testing.T) {
		_, err := h.teamSvc.CreateTeam(ctx, withContest(draftA, "nope"))
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("invalid draft writes nothing", func(t *testing.T) {
		bad := withContest(draftA, contest.ID)
		bad.UserID = "u4"
		bad.Players = bad.Players[:5]
		_, err := h.teamSvc.CreateTeam(ctx, bad)
		assert.ErrorIs(t, err, domain.ErrWrongTeamSize)

		teams, err := h.teamSvc.ListUserTeams(ctx, "u4")
		require.NoError(t, err)
		assert.Empty(t, teams)
	})

	all, err := h.teamSvc.ListTeams(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestCreateTeam_ClosedOnceLive(t *testing.T) {
	ctx := context.Background()
	h := newHarness(t, defaultConfig())
	contest := createContest(t, h, 1000, 10)

	_, err := h.matchSvc.Start(ctx, "M001")
	require.NoError(t, err)

	_, err = h.teamSvc.CreateTeam(ctx, withContest(draftA, contest.ID))
	assert.ErrorIs(t, err, domain.ErrContestClosed)
}

package leaderboard

import (
	"testing"
	"time"

	"fantasy-cricket/internal/domain"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild_Empty(t *testing.T) {
	got := Build(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestBuild_DescendingPoints(t *testing.T) {
	teams := []domain.Team{
		{ID: "b", TotalPoints: 40},
		{ID: "a", TotalPoints: 136},
		{ID: "c", TotalPoints: -3.5},
	}

	got := Build(teams)

	ids := make([]string, len(got))
	ranks := make([]int, len(got))
	for i, e := range got {
		ids[i] = e.Team.ID
		ranks[i] = e.Rank
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, ids); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, []int{1, 2, 3}, ranks)
	assert.Equal(t, "b", teams[0].ID, "input must not be reordered")
}

func TestBuild_TiesBreakOnCreationThenID(t *testing.T) {
	base := time.Date(2025, 5, 3, 6, 0, 0, 0, time.UTC)
	teams := []domain.Team{
		{ID: "late", TotalPoints: 50, CreatedAt: base.Add(time.Minute)},
		{ID: "zz", TotalPoints: 50, CreatedAt: base},
		{ID: "aa", TotalPoints: 50, CreatedAt: base},
	}

	got := Build(teams)

	require.Len(t, got, 3)
	assert.Equal(t, "aa", got[0].Team.ID)
	assert.Equal(t, "zz", got[1].Team.ID)
	assert.Equal(t, "late", got[2].Team.ID)
	assert.Equal(t, 3, got[2].Rank)
}

func TestBuild_RanksAreContiguous(t *testing.T) {
	faker := gofakeit.New(42)
	for range 20 {
		n := faker.IntRange(1, 50)
		teams := make([]domain.Team, n)
		for i := range teams {
			teams[i] = domain.Team{
				ID:          faker.UUID(),
				TotalPoints: float64(faker.IntRange(-20, 400)) / 2,
				CreatedAt:   faker.Date(),
			}
		}

		got := Build(teams)

		require.Len(t, got, n)
		for i, e := range got {
			assert.Equal(t, i+1, e.Rank)
			if i > 0 {
				assert.GreaterOrEqual(t, got[i-1].Team.TotalPoints, e.Team.TotalPoints)
			}
		}
	}
}

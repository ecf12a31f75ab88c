// Package leaderboard ranks a contest's teams by points.
package leaderboard

import (
	"sort"

	"fantasy-cricket/internal/domain"
)

// Build orders teams by TotalPoints descending and ranks them 1..N by
// position. Equal totals still get distinct consecutive ranks; the team
// created first goes higher, then the lower team ID.
func Build(teams []domain.Team) []domain.LeaderboardEntry {
	if len(teams) == 0 {
		return []domain.LeaderboardEntry{}
	}

	sorted := make([]domain.Team, len(teams))
	copy(sorted, teams)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.TotalPoints != b.TotalPoints {
			return a.TotalPoints > b.TotalPoints
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	entries := make([]domain.LeaderboardEntry, len(sorted))
	for i, team := range sorted {
		entries[i] = domain.LeaderboardEntry{Team: team, Rank: i + 1}
	}
	return entries
}

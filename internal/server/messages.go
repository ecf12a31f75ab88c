package server

import (
	"time"

	"fantasy-cricket/internal/domain"

	"github.com/shopspring/decimal"
)

type Performance struct {
	ID          string       `json:"id"`
	MatchID     string       `json:"match_id"`
	PlayerName  string       `json:"player_name"`
	TeamName    string       `json:"team_name"`
	Stats       domain.Stats `json:"stats"`
	TotalPoints int          `json:"total_points"`
	UpdatedAt   string       `json:"updated_at"`
}

type Team struct {
	ID          string   `json:"id"`
	ContestID   string   `json:"contest_id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Players     []string `json:"players"`
	Captain     string   `json:"captain"`
	ViceCaptain string   `json:"vice_captain"`
	Cost        int      `json:"cost"`
	TotalPoints float64  `json:"total_points"`
	CreatedAt   string   `json:"created_at"`
}

type Contest struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	MatchID         string          `json:"match_id"`
	EntryFee        decimal.Decimal `json:"entry_fee"`
	PrizePool       decimal.Decimal `json:"prize_pool"`
	MaxParticipants int             `json:"max_participants"`
	CreatedBy       string          `json:"created_by"`
	Status          string          `json:"status"`
	CreatedAt       string          `json:"created_at"`
}

type LeaderboardEntry struct {
	Rank int  `json:"rank"`
	Team Team `json:"team"`
}

type Payout struct {
	Rank   int             `json:"rank"`
	TeamID string          `json:"team_id"`
	UserID string          `json:"user_id"`
	Points float64         `json:"points"`
	Amount decimal.Decimal `json:"amount"`
}

type SavePerformanceRequest struct {
	MatchID    string       `json:"match_id"`
	PlayerName string       `json:"player_name"`
	Stats      domain.Stats `json:"stats"`
}

type SavePerformanceResponse struct {
	Performance Performance `json:"performance"`
}

type ListPerformancesRequest struct {
	MatchID string `json:"match_id"`
}

type ListPerformancesResponse struct {
	Performances []Performance `json:"performances"`
}

type ScorePreviewRequest struct {
	Stats domain.Stats `json:"stats"`
}

type ScorePreviewResponse struct {
	Points int `json:"points"`
}

type CreateContestRequest struct {
	Name            string          `json:"name"`
	MatchID         string          `json:"match_id"`
	EntryFee        decimal.Decimal `json:"entry_fee"`
	PrizePool       decimal.Decimal `json:"prize_pool"`
	MaxParticipants int             `json:"max_participants"`
	CreatedBy       string          `json:"created_by"`
}

type ContestResponse struct {
	Contest Contest `json:"contest"`
}

type ListContestsRequest struct{}

type ListContestsResponse struct {
	Contests []Contest `json:"contests"`
}

type CancelContestRequest struct {
	ContestID string `json:"contest_id"`
}

type CancelContestResponse struct {
	ContestID string `json:"contest_id"`
	Status    string `json:"status"`
}

type CreateTeamRequest struct {
	ContestID   string   `json:"contest_id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Players     []string `json:"players"`
	Captain     string   `json:"captain"`
	ViceCaptain string   `json:"vice_captain"`
}

type TeamResponse struct {
	Team Team `json:"team"`
}

type ListUserTeamsRequest struct {
	UserID string `json:"user_id"`
}

type ListTeamsRequest struct{}

type ListTeamsResponse struct {
	Teams []Team `json:"teams"`
}

type GetLeaderboardRequest struct {
	ContestID string `json:"contest_id"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type MatchRequest struct {
	MatchID string `json:"match_id"`
}

type MatchStatusResponse struct {
	Fixture      domain.Fixture `json:"fixture"`
	TeamsUpdated int            `json:"teams_updated"`
}

type RecomputeMatchResponse struct {
	TeamsUpdated int `json:"teams_updated"`
}

type ContestIDRequest struct {
	ContestID string `json:"contest_id"`
}

type PayoutsResponse struct {
	Payouts []Payout `json:"payouts"`
}

type ListFixturesRequest struct{}

type ListFixturesResponse struct {
	Fixtures []domain.Fixture `json:"fixtures"`
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}

func toPerformance(p domain.Performance) Performance {
	return Performance{
		ID:          p.ID,
		MatchID:     p.MatchID,
		PlayerName:  p.PlayerName,
		TeamName:    p.TeamName,
		Stats:       p.Stats,
		TotalPoints: p.TotalPoints,
		UpdatedAt:   formatTime(p.UpdatedAt),
	}
}

func toTeam(t domain.Team) Team {
	return Team{
		ID:          t.ID,
		ContestID:   t.ContestID,
		UserID:      t.UserID,
		Name:        t.Name,
		Players:     t.Players,
		Captain:     t.Captain,
		ViceCaptain: t.ViceCaptain,
		Cost:        t.Cost,
		TotalPoints: t.TotalPoints,
		CreatedAt:   formatTime(t.CreatedAt),
	}
}

func toTeams(teams []domain.Team) []Team {
	out := make([]Team, 0, len(teams))
	for _, t := range teams {
		out = append(out, toTeam(t))
	}
	return out
}

func toContest(c domain.Contest) Contest {
	return Contest{
		ID:              c.ID,
		Name:            c.Name,
		MatchID:         c.MatchID,
		EntryFee:        c.EntryFee,
		PrizePool:       c.PrizePool,
		MaxParticipants: c.MaxParticipants,
		CreatedBy:       c.CreatedBy,
		Status:          string(c.Status),
		CreatedAt:       formatTime(c.CreatedAt),
	}
}

func toPayouts(payouts []domain.Payout) []Payout {
	out := make([]Payout, 0, len(payouts))
	for _, p := range payouts {
		out = append(out, Payout{
			Rank:   p.Rank,
			TeamID: p.TeamID,
			UserID: p.UserID,
			Points: p.Points,
			Amount: p.Amount,
		})
	}
	return out
}

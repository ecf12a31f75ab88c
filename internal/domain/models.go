package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stats are the raw numbers an admin enters for one player in one match.
// Zero values mean "did not happen".
type Stats struct {
	Runs         int     `json:"runs"`
	BallsFaced   int     `json:"balls_faced"`
	Fours        int     `json:"fours"`
	Sixes        int     `json:"sixes"`
	IsOut        bool    `json:"is_out"`
	Wickets      int     `json:"wickets"`
	OversBowled  float64 `json:"overs_bowled"`
	RunsConceded int     `json:"runs_conceded"`
	Maidens      int     `json:"maidens"`
	Catches      int     `json:"catches"`
	Stumpings    int     `json:"stumpings"`
	RunOuts      int     `json:"run_outs"`
}

type Performance struct {
	ID          string // nanoid
	MatchID     string
	PlayerName  string
	TeamName    string // side the player turned out for
	Stats       Stats
	TotalPoints int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Team struct {
	ID          string // uuid
	ContestID   string
	UserID      string
	Name        string
	Players     []string
	Captain     string
	ViceCaptain string
	Cost        int
	TotalPoints float64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Contest struct {
	ID              string // uuid
	Name            string
	MatchID         string
	EntryFee        decimal.Decimal
	PrizePool       decimal.Decimal
	MaxParticipants int
	CreatedBy       string
	Status          ContestStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LeaderboardEntry is computed on read and never stored.
type LeaderboardEntry struct {
	Team Team
	Rank int
}

type Payout struct {
	ID        string // nanoid
	ContestID string
	Rank      int
	TeamID    string
	UserID    string
	Points    float64
	Amount    decimal.Decimal
	CreatedAt time.Time
}

type Fixture struct {
	MatchID string        `json:"match_id"`
	MatchNo int           `json:"match_no"`
	Sides   [2]string     `json:"teams"`
	Time    string        `json:"time"`
	Day     string        `json:"day"`
	Status  FixtureStatus `json:"status"`
}

// HasSide reports whether side is one of the two sides playing.
func (f Fixture) HasSide(side string) bool {
	return f.Sides[0] == side || f.Sides[1] == side
}

type RosterPlayer struct {
	Name  string `json:"name"`
	Price int    `json:"price"`
}

type Squad struct {
	Name    string         `json:"name"`
	Players []RosterPlayer `json:"players"`
}

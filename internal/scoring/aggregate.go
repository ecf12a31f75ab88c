package scoring

import (
	"fantasy-cricket/internal/constants"
	"fantasy-cricket/internal/domain"
)

// MissingPerformancePolicy decides how a drafted player with no recorded
// performance is scored.
type MissingPerformancePolicy int

const (
	// ScoreAsZero scores the player as an all-zero stat line, which still
	// earns the playing-seven bonus.
	ScoreAsZero MissingPerformancePolicy = iota
	// SkipMissing makes the player contribute nothing.
	SkipMissing
)

type Aggregator struct {
	engine  *Engine
	missing MissingPerformancePolicy
}

func NewAggregator(engine *Engine, missing MissingPerformancePolicy) *Aggregator {
	return &Aggregator{engine: engine, missing: missing}
}

// Multiplier returns the captaincy multiplier for player in team.
func Multiplier(team domain.Team, player string) float64 {
	switch player {
	case team.Captain:
		return constants.CaptainMultiplier
	case team.ViceCaptain:
		return constants.ViceCaptainMultiplier
	}
	return 1.0
}

// Aggregate sums the multiplied scores of the team's players. performances
// is keyed by player name.
func (a *Aggregator) Aggregate(team domain.Team, performances map[string]domain.Performance) float64 {
	var total float64
	for _, player := range team.Players {
		perf, ok := performances[player]
		if !ok && a.missing == SkipMissing {
			continue
		}
		points := a.engine.Score(perf.Stats)
		total += float64(points) * Multiplier(team, player)
	}
	return total
}

// ByPlayer indexes performances by player name. A later record for the same
// player replaces an earlier one.
func ByPlayer(performances []domain.Performance) map[string]domain.Performance {
	out := make(map[string]domain.Performance, len(performances))
	for _, p := range performances {
		out[p.PlayerName] = p
	}
	return out
}

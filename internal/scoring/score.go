package scoring

import "fantasy-cricket/internal/domain"

// Engine scores performances against a fixed Rules table. The zero value is
// not usable; build one with NewEngine.
type Engine struct {
	rules Rules
}

func NewEngine(rules Rules) *Engine {
	return &Engine{rules: rules}
}

// Score returns the total points for one player's stats. It never fails and
// the result may be negative.
func (e *Engine) Score(s domain.Stats) int {
	return e.Batting(s) + e.Bowling(s) + e.Fielding(s) + e.rules.PlayingSeven
}

func (e *Engine) Batting(s domain.Stats) int {
	r := e.rules
	points := s.Runs*r.Run + s.Fours*r.Four + s.Sixes*r.Six

	if s.Runs >= 100 {
		points += r.Century
	} else if s.Runs >= 50 {
		points += r.Fifty
	}

	if s.IsOut && s.Runs == 0 {
		points += r.Duck
	}

	if s.BallsFaced >= r.StrikeRateMinBalls && s.BallsFaced > 0 {
		sr := float64(s.Runs) / float64(s.BallsFaced) * 100
		points += firstTier(r.StrikeRate, sr)
	}

	return points
}

func (e *Engine) Bowling(s domain.Stats) int {
	r := e.rules
	points := s.Wickets * r.Wicket

	switch {
	case s.Wickets >= 5:
		points += r.FiveWickets
	case s.Wickets >= 4:
		points += r.FourWickets
	case s.Wickets >= 3:
		points += r.ThreeWickets
	}

	points += s.Maidens * r.MaidenOver

	if s.OversBowled >= r.EconomyMinOvers && s.OversBowled > 0 {
		er := float64(s.RunsConceded) / s.OversBowled
		points += firstTier(r.Economy, er)
	}

	return points
}

func (e *Engine) Fielding(s domain.Stats) int {
	r := e.rules
	points := s.Catches * r.Catch
	if s.Catches >= 3 {
		points += r.ThreeCatches
	}
	points += s.Stumpings * r.Stumping
	points += s.RunOuts * r.RunOutDirect
	return points
}

var defaultEngine = NewEngine(DefaultRules())

// Score scores s with DefaultRules.
func Score(s domain.Stats) int {
	return defaultEngine.Score(s)
}

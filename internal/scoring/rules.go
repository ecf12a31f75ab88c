// Package scoring turns raw match stats into fantasy points.
//
// Rate-based adjustments (strike rate, economy rate) are ordered tier lists
// evaluated top to bottom; the first tier whose predicate holds is applied
// and the rest are skipped. The order is part of the rule table, so callers
// who supply their own Rules control which tier wins at overlapping bounds.
package scoring

// Tier is one rate band: Points is awarded when Applies holds.
type Tier struct {
	Name    string
	Applies func(rate float64) bool
	Points  int
}

// Rules is the full point table used by Score.
type Rules struct {
	Run     int
	Four    int
	Six     int
	Fifty   int
	Century int
	Duck    int

	Wicket         int
	ThreeWickets   int
	FourWickets    int
	FiveWickets    int
	MaidenOver     int
	Catch          int
	ThreeCatches   int
	Stumping       int
	RunOutDirect   int
	RunOutIndirect int // not applied; run-outs are not split by kind yet

	PlayingSeven int

	// StrikeRateMinBalls and EconomyMinOvers gate the rate tiers.
	StrikeRateMinBalls int
	EconomyMinOvers    float64
	StrikeRate         []Tier
	Economy            []Tier
}

// DefaultRules returns the league's point table. The low strike-rate
// penalties keep their historical order (<=70 is tested first), which means
// any qualifying strike rate at or below 70 gets -2.
func DefaultRules() Rules {
	return Rules{
		Run:     1,
		Four:    1,
		Six:     2,
		Fifty:   8,
		Century: 16,
		Duck:    -2,

		Wicket:         25,
		ThreeWickets:   4,
		FourWickets:    8,
		FiveWickets:    16,
		MaidenOver:     12,
		Catch:          8,
		ThreeCatches:   4,
		Stumping:       12,
		RunOutDirect:   12,
		RunOutIndirect: 6,

		PlayingSeven: 4,

		StrikeRateMinBalls: 10,
		EconomyMinOvers:    2,
		StrikeRate: []Tier{
			{Name: "above_170", Applies: func(sr float64) bool { return sr > 170 }, Points: 6},
			{Name: "150_to_170", Applies: func(sr float64) bool { return sr >= 150 }, Points: 4},
			{Name: "130_to_150", Applies: func(sr float64) bool { return sr >= 130 }, Points: 2},
			{Name: "60_to_70", Applies: func(sr float64) bool { return sr <= 70 }, Points: -2},
			{Name: "50_to_60", Applies: func(sr float64) bool { return sr <= 60 }, Points: -4},
			{Name: "below_50", Applies: func(sr float64) bool { return sr < 50 }, Points: -6},
		},
		Economy: []Tier{
			{Name: "below_5", Applies: func(er float64) bool { return er < 5 }, Points: 6},
			{Name: "5_to_599", Applies: func(er float64) bool { return er < 6 }, Points: 4},
			{Name: "6_to_7", Applies: func(er float64) bool { return er <= 7 }, Points: 2},
			{Name: "10_to_11", Applies: func(er float64) bool { return er >= 10 && er <= 11 }, Points: -2},
			{Name: "11_to_12", Applies: func(er float64) bool { return er > 11 && er <= 12 }, Points: -4},
			{Name: "above_12", Applies: func(er float64) bool { return er > 12 }, Points: -6},
		},
	}
}

// BandedRules is DefaultRules with the low strike-rate penalties checked
// most severe first, so 50-60 earns -4 and below 50 earns -6.
func BandedRules() Rules {
	r := DefaultRules()
	r.StrikeRate = []Tier{
		r.StrikeRate[0],
		r.StrikeRate[1],
		r.StrikeRate[2],
		r.StrikeRate[5],
		r.StrikeRate[4],
		r.StrikeRate[3],
	}
	return r
}

// firstTier returns the points of the first tier matching rate, or 0.
func firstTier(tiers []Tier, rate float64) int {
	for _, t := range tiers {
		if t.Applies(rate) {
			return t.Points
		}
	}
	return 0
}

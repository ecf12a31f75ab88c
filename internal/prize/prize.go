// Package prize splits a contest's prize pool across the final standings.
package prize

import "github.com/shopspring/decimal"

// shares lists the fraction of the pool paid to ranks 1, 2, 3... for a
// given participant count. Counts of 3 or more use the last entry.
var shares = [][]decimal.Decimal{
	1: {decimal.NewFromInt(1)},
	2: {decimal.RequireFromString("0.7"), decimal.RequireFromString("0.3")},
	3: {decimal.RequireFromString("0.5"), decimal.RequireFromString("0.3"), decimal.RequireFromString("0.2")},
}

// Distribute maps rank to prize amount. Ranks that win nothing are absent.
// Ranks below first are truncated to cents and first place takes the
// remainder, so the amounts always add up to exactly pool.
func Distribute(pool decimal.Decimal, participants int) map[int]decimal.Decimal {
	payouts := make(map[int]decimal.Decimal)
	if participants <= 0 || pool.Sign() <= 0 {
		return payouts
	}

	split := shares[min(participants, len(shares)-1)]
	rest := decimal.Zero
	for i := 1; i < len(split); i++ {
		amount := pool.Mul(split[i]).Truncate(2)
		payouts[i+1] = amount
		rest = rest.Add(amount)
	}
	payouts[1] = pool.Sub(rest)
	return payouts
}

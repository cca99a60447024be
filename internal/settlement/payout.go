package settlement

import "github.com/shopspring/decimal"

// Payouts splits the losing pool across the winning stakes in proportion
// to each winner's own stake. Shares are rounded to two decimal places;
// the last winner absorbs the rounding remainder so the distributed total
// equals the pool exactly. With one winner per side and equal stakes this
// degenerates to a 1:1 transfer.
func Payouts(winningStakes []decimal.Decimal, losingPool decimal.Decimal) []decimal.Decimal {
	n := len(winningStakes)
	if n == 0 {
		return nil
	}

	winningPool := decimal.Zero
	for _, s := range winningStakes {
		winningPool = winningPool.Add(s)
	}

	payouts := make([]decimal.Decimal, n)
	distributed := decimal.Zero
	for i := 0; i < n-1; i++ {
		share := losingPool.Mul(winningStakes[i]).Div(winningPool).Round(2)
		payouts[i] = share
		distributed = distributed.Add(share)
	}
	payouts[n-1] = losingPool.Sub(distributed)
	return payouts
}

// Pool sums a set of stakes.
func Pool(stakes []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range stakes {
		total = total.Add(s)
	}
	return total
}

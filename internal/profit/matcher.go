package profit

import (
	"log/slog"
	"math"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// matchAcquisitions decomposes a swap's bought legs into acquisitions by
// pairing each bought leg with the first sold leg of roughly equal USD value.
// Bought legs with no pairing are dropped with a diagnostic; acquisitions of
// ignored reference assets (stables, wrapped native) are filtered out after
// matching.
func (c *Calculator) matchAcquisitions(swap *domain.TokenSwap) []domain.Acquisition {
	var matched []domain.Acquisition
	for _, bought := range swap.BoughtTokens {
		acq, ok := matchBoughtLeg(swap, bought, c.cfg.ValueDiffDivider)
		if !ok {
			slog.Warn("no sold leg pairs with bought leg, dropping",
				"token", bought.Symbol,
				"value_usd", bought.ValueUSD,
				"tx", swap.TxHash,
			)
			continue
		}
		matched = append(matched, acq)
	}
	return c.filterIgnored(matched)
}

// matchBoughtLeg scans the swap's sold legs in declaration order and builds
// an acquisition from the first one whose USD value is within tolerance of
// the bought leg's.
func matchBoughtLeg(swap *domain.TokenSwap, bought domain.TradedToken, divider float64) (domain.Acquisition, bool) {
	for _, sold := range swap.SoldTokens {
		if !valuesRoughlyEqual(bought.ValueUSD, sold.ValueUSD, divider) {
			continue
		}
		return domain.Acquisition{
			BuyTime:     swap.Time,
			BuyPriceUSD: bought.ValueUSD / bought.Amount,
			Amount:      bought.Amount,
			ValueUSD:    bought.ValueUSD,
			TxHash:      swap.TxHash,
			Token:       bought.Token,
		}, true
	}
	return domain.Acquisition{}, false
}

// filterIgnored drops acquisitions of tokens in the ignored-symbols set.
// Acquiring a numéraire asset is receiving change, not opening a position.
func (c *Calculator) filterIgnored(acqs []domain.Acquisition) []domain.Acquisition {
	kept := acqs[:0]
	for _, acq := range acqs {
		if _, skip := c.ignored[acq.Token.Symbol]; skip {
			continue
		}
		kept = append(kept, acq)
	}
	return kept
}

// valuesRoughlyEqual scales both values by divider and treats them as equal
// when their absolute difference is below the mean of the scaled values.
// Deliberately loose: slippage and rounding across legs of the same swap
// make exact USD equality unreliable. Tunable via Config.ValueDiffDivider.
func valuesRoughlyEqual(a, b, divider float64) bool {
	scaledA := a / divider
	scaledB := b / divider
	maxDifference := (scaledA + scaledB) / 2.0
	return math.Abs(scaledA-scaledB) < maxDifference
}

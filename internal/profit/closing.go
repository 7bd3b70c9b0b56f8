package profit

import (
	"log/slog"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// closeAgainstLedger decides whether the swap closes an open position.
// Sold legs are scanned in order; the first leg whose token has an open
// position produces the realized trade and scanning stops — at most one
// position is closed per swap, remaining legs are left untouched even if
// they match other positions.
func (c *Calculator) closeAgainstLedger(swap *domain.TokenSwap) (domain.RealizedTrade, bool, error) {
	for i := range swap.SoldTokens {
		sold := &swap.SoldTokens[i]
		pos, ok := c.ledger.Get(sold.Address)
		if !ok {
			continue
		}

		trade := realizeTrade(pos, sold, swap)
		if err := c.ledger.Reduce(sold.Address, sold.Amount); err != nil {
			return domain.RealizedTrade{}, false, err
		}
		return trade, true, nil
	}
	return domain.RealizedTrade{}, false, nil
}

// realizeTrade computes the realized result of selling against a position.
// A sell larger than the held amount is clamped — the wallet cannot realize
// profit on more than it holds — and the leg's recorded amount is rewritten
// to the clamped value so the emitted trade and the swap stay consistent.
// Fees are not modeled.
func realizeTrade(pos domain.Position, sold *domain.TradedToken, swap *domain.TokenSwap) domain.RealizedTrade {
	amountSold := sold.Amount
	if amountSold > pos.HeldAmount {
		slog.Warn("sell exceeds held amount, clamping to position size",
			"token", sold.Symbol,
			"sold", amountSold,
			"held", pos.HeldAmount,
			"tx", swap.TxHash,
		)
		amountSold = pos.HeldAmount
		sold.Amount = amountSold
	}

	buyPrice := pos.AvgBuyPriceUSD
	sellPrice := sold.PriceUSD
	buyValue := amountSold * buyPrice
	sellValue := amountSold * sellPrice

	return domain.RealizedTrade{
		Token:        pos.Token,
		Amount:       amountSold,
		BuyPriceUSD:  buyPrice,
		SellPriceUSD: sellPrice,
		BuyValueUSD:  buyValue,
		SellValueUSD: sellValue,
		ProfitUSD:    sellValue - buyValue,
		SellTime:     swap.Time,
		SellTx:       swap.TxHash,
	}
}

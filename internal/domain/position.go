package domain

import "time"

// Acquisition is a single buy of one token, derived from one swap leg.
// Immutable once created.
type Acquisition struct {
	BuyTime     time.Time
	BuyPriceUSD float64
	Amount      float64
	ValueUSD    float64
	TxHash      string
	Token       Token
}

// Position is the open holding of one token, tracked from first acquisition
// until fully sold. Updates never mutate in place: Extended and Reduced
// return new values so that ledger entries have a single unambiguous owner.
type Position struct {
	Token          Token
	HeldAmount     float64
	AvgBuyPriceUSD float64
	Acquisitions   []Acquisition
}

// NewPosition opens a position from its first acquisition.
func NewPosition(acq Acquisition) Position {
	return Position{
		Token:          acq.Token,
		HeldAmount:     acq.Amount,
		AvgBuyPriceUSD: acq.BuyPriceUSD,
		Acquisitions:   []Acquisition{acq},
	}
}

// Extended returns the position with one more acquisition folded in and the
// quantity-weighted average buy price recomputed:
//
//	newAvg = (oldAvg*oldAmount + price*amount) / (oldAmount + amount)
func (p Position) Extended(acq Acquisition) Position {
	total := p.HeldAmount + acq.Amount
	avg := (p.AvgBuyPriceUSD*p.HeldAmount + acq.BuyPriceUSD*acq.Amount) / total

	history := make([]Acquisition, 0, len(p.Acquisitions)+1)
	history = append(history, p.Acquisitions...)
	history = append(history, acq)

	return Position{
		Token:          p.Token,
		HeldAmount:     total,
		AvgBuyPriceUSD: avg,
		Acquisitions:   history,
	}
}

// Reduced returns the position with amount subtracted from the held quantity.
// Partial sells leave the average buy price untouched — the cost basis of the
// remaining lot does not change when part of it is sold.
func (p Position) Reduced(amount float64) Position {
	return Position{
		Token:          p.Token,
		HeldAmount:     p.HeldAmount - amount,
		AvgBuyPriceUSD: p.AvgBuyPriceUSD,
		Acquisitions:   p.Acquisitions,
	}
}

// CostBasis is the USD value attributed to the currently held quantity.
func (p Position) CostBasis() float64 {
	return p.HeldAmount * p.AvgBuyPriceUSD
}

// RealizedTrade is the profit/loss outcome recorded when part or all of a
// position is sold. Immutable once emitted.
type RealizedTrade struct {
	Token        Token
	Amount       float64
	BuyPriceUSD  float64
	SellPriceUSD float64
	BuyValueUSD  float64
	SellValueUSD float64
	ProfitUSD    float64
	SellTime     time.Time
	SellTx       string
}

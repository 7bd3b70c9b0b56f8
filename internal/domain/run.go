package domain

import (
	"time"

	"github.com/ethereum/go-ethereum/common"
)

// Run summarizes one complete processing pass over a trader's swap history:
// every realized trade plus the snapshot of positions still open at the end.
type Run struct {
	ID        string
	Trader    common.Address
	StartedAt time.Time
	Swaps     int // swaps fed to the calculator
	Realized  []RealizedTrade
	Open      []Position
}

// TotalProfitUSD sums realized profit across the run.
func (r Run) TotalProfitUSD() float64 {
	total := 0.0
	for _, t := range r.Realized {
		total += t.ProfitUSD
	}
	return total
}

// WinningTrades counts realized trades that closed in profit.
func (r Run) WinningTrades() int {
	wins := 0
	for _, t := range r.Realized {
		if t.ProfitUSD > 0 {
			wins++
		}
	}
	return wins
}

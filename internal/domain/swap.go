package domain

import "time"

// TokenSwap is one on-chain transaction seen from the tracked wallet:
// value leaving the wallet (SoldTokens) exchanged for value entering it
// (BoughtTokens), with aggregate USD totals across all legs.
//
// Swaps with UsdPaid == 0 carry no signal and are never produced by the
// extraction layer.
type TokenSwap struct {
	Time         time.Time
	UsdPaid      float64
	UsdReceived  float64
	SoldTokens   []TradedToken
	BoughtTokens []TradedToken
	TxHash       string
}

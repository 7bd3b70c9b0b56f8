package ports

import "github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"

// SwapProcessor consumes one swap at a time, in chronological order.
// Implementations accumulate whatever state the processing needs; the
// caller is responsible for preserving the order of the swap stream.
type SwapProcessor interface {
	// ReceiveSwap routes one swap into the processor. A non-nil error
	// signals an internal invariant violation, not a data problem —
	// malformed or unmatchable legs are absorbed and logged.
	ReceiveSwap(swap *domain.TokenSwap) error
}

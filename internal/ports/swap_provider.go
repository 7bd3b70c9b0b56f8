package ports

import (
	"context"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// SwapProvider produces the validated swap stream for a trader address.
type SwapProvider interface {
	// FetchSwaps returns the swaps extracted from one page of the trader's
	// transaction history, oldest first. The bool reports whether more
	// pages remain; a page full of non-swap transactions yields an empty
	// slice with more still true, so callers must page on the bool, not
	// on the slice length.
	FetchSwaps(ctx context.Context, trader common.Address, page, pageSize int) ([]domain.TokenSwap, bool, error)
}

// Package profit implements the average-cost-basis position ledger and the
// matching/closing algorithm that turns a chronological swap stream into
// realized trades.
package profit

import (
	"log/slog"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/ports"
)

var _ ports.SwapProcessor = (*Calculator)(nil)

// DefaultValueDiffDivider is the scaling divisor of the approximate-equality
// test used to pair bought and sold legs. Empirical heuristic, not a law of
// nature — tune via Config if pairings misfire on small-value trades.
const DefaultValueDiffDivider = 10.0

// DefaultIgnoredSymbols are reference assets treated as medium of exchange
// rather than speculative holdings: acquiring them never opens a position.
var DefaultIgnoredSymbols = []string{"WETH", "USDT", "USDC", "DAI", "RAI"}

// Config tunes the calculator's matching behavior.
type Config struct {
	ValueDiffDivider float64
	IgnoredSymbols   []string
}

// DefaultConfig returns the production defaults.
func DefaultConfig() Config {
	return Config{
		ValueDiffDivider: DefaultValueDiffDivider,
		IgnoredSymbols:   DefaultIgnoredSymbols,
	}
}

// Calculator receives one trader's swaps in chronological order and
// accumulates realized trades and open positions. It implements
// ports.SwapProcessor. Not safe for concurrent use; run one Calculator
// per trader address.
type Calculator struct {
	cfg      Config
	ledger   *Ledger
	realized []domain.RealizedTrade
	ignored  map[string]struct{}
}

// New creates a Calculator with an empty ledger.
func New(cfg Config) *Calculator {
	if cfg.ValueDiffDivider <= 0 {
		cfg.ValueDiffDivider = DefaultValueDiffDivider
	}
	if cfg.IgnoredSymbols == nil {
		cfg.IgnoredSymbols = DefaultIgnoredSymbols
	}
	ignored := make(map[string]struct{}, len(cfg.IgnoredSymbols))
	for _, sym := range cfg.IgnoredSymbols {
		ignored[sym] = struct{}{}
	}
	return &Calculator{
		cfg:     cfg,
		ledger:  NewLedger(),
		ignored: ignored,
	}
}

// ReceiveSwap routes one swap: if any sold leg closes an open position the
// realized trade is recorded and nothing else happens — a closing swap never
// also opens a position. Otherwise the bought legs are matched into
// acquisitions and the ledger is extended with each.
//
// Swaps must arrive in non-decreasing timestamp order; average cost and
// closing math are order-dependent. A non-nil error means an internal
// invariant was violated and the ledger can no longer be trusted.
func (c *Calculator) ReceiveSwap(swap *domain.TokenSwap) error {
	if swap.UsdPaid <= 0 {
		slog.Warn("swap with no paid value, skipping", "tx", swap.TxHash)
		return nil
	}

	trade, closed, err := c.closeAgainstLedger(swap)
	if err != nil {
		return err
	}
	if closed {
		c.realized = append(c.realized, trade)
		return nil
	}

	for _, acq := range c.matchAcquisitions(swap) {
		c.ledger.Extend(acq)
	}
	return nil
}

// RealizedTrades returns the trades realized so far, in processing order.
func (c *Calculator) RealizedTrades() []domain.RealizedTrade {
	out := make([]domain.RealizedTrade, len(c.realized))
	copy(out, c.realized)
	return out
}

// OpenPositions returns a snapshot of the open positions keyed by token
// address.
func (c *Calculator) OpenPositions() map[common.Address]domain.Position {
	out := make(map[common.Address]domain.Position, c.ledger.Len())
	for _, pos := range c.ledger.Snapshot() {
		out[pos.Token.Address] = pos
	}
	return out
}

// Positions returns the open positions ordered for reporting.
func (c *Calculator) Positions() []domain.Position {
	return c.ledger.Snapshot()
}

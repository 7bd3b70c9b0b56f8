package profit

import (
	"fmt"
	"sort"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// Ledger holds the open positions of one trader, keyed by token address.
// At most one position exists per token; entries are removed, never kept
// at zero. Only the Calculator mutates it.
type Ledger struct {
	positions map[common.Address]domain.Position
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{positions: make(map[common.Address]domain.Position)}
}

// Get returns the open position for a token address, if any.
func (l *Ledger) Get(addr common.Address) (domain.Position, bool) {
	pos, ok := l.positions[addr]
	return pos, ok
}

// Len returns the number of open positions.
func (l *Ledger) Len() int {
	return len(l.positions)
}

// Extend folds an acquisition into the ledger: opens a new position for a
// token seen for the first time, otherwise recomputes the weighted-average
// buy price of the existing one.
func (l *Ledger) Extend(acq domain.Acquisition) {
	addr := acq.Token.Address
	if pos, ok := l.positions[addr]; ok {
		l.positions[addr] = pos.Extended(acq)
		return
	}
	l.positions[addr] = domain.NewPosition(acq)
}

// Reduce subtracts amount from the position's held quantity. The position is
// removed entirely when the remainder reaches zero. Reducing by more than is
// held is a contract violation — the closing engine clamps before calling —
// so it surfaces as an error instead of corrupting the ledger.
func (l *Ledger) Reduce(addr common.Address, amount float64) error {
	pos, ok := l.positions[addr]
	if !ok {
		return fmt.Errorf("profit.Reduce: no open position for %s", addr.Hex())
	}
	if amount > pos.HeldAmount {
		return fmt.Errorf("profit.Reduce: %s: reducing %v exceeds held %v",
			pos.Token.Symbol, amount, pos.HeldAmount)
	}

	reduced := pos.Reduced(amount)
	if reduced.HeldAmount > 0 {
		l.positions[addr] = reduced
		return nil
	}
	delete(l.positions, addr)
	return nil
}

// Snapshot returns a copy of the open positions, ordered by symbol and
// address for deterministic reporting.
func (l *Ledger) Snapshot() []domain.Position {
	out := make([]domain.Position, 0, len(l.positions))
	for _, pos := range l.positions {
		out = append(out, pos)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Token.Symbol != out[j].Token.Symbol {
			return out[i].Token.Symbol < out[j].Token.Symbol
		}
		return out[i].Token.Address.Hex() < out[j].Token.Address.Hex()
	})
	return out
}

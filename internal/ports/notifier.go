package ports

import (
	"context"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// Notifier presents the results of a run to the user.
type Notifier interface {
	// Notify reports the realized trades and open positions of a run.
	// The console implementation prints formatted tables.
	Notify(ctx context.Context, run domain.Run) error
}

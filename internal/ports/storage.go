package ports

import (
	"context"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// Storage persists the results of a processing run.
type Storage interface {
	// SaveRun persists the run summary, its realized trades and the
	// open-positions snapshot in one transaction.
	SaveRun(ctx context.Context, run domain.Run) error

	// GetTrades returns the realized trades recorded for a run,
	// in the order they were realized.
	GetTrades(ctx context.Context, runID string) ([]domain.RealizedTrade, error)

	// Close releases the underlying database connection.
	Close() error
}

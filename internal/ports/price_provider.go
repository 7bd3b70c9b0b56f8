package ports

import (
	"context"
	"time"
)

// PriceProvider resolves the USD spot price of a token symbol at a point in
// time. Used to price native-token deposits/withdrawals that carry no USD
// quote of their own.
type PriceProvider interface {
	PriceOf(ctx context.Context, symbol string, at time.Time) (float64, error)
}

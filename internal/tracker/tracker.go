package tracker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/ports"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/profit"
)

const (
	defaultPageSize = 100
	defaultMaxPages = 50
)

// Config contains the tracker run parameters.
type Config struct {
	Trader   common.Address
	PageSize int
	MaxPages int
}

// DefaultConfig returns sane run parameters.
func DefaultConfig(trader common.Address) Config {
	return Config{
		Trader:   trader,
		PageSize: defaultPageSize,
		MaxPages: defaultMaxPages,
	}
}

// Tracker orchestrates one full pass over a trader's swap history.
type Tracker struct {
	cfg      Config
	swaps    ports.SwapProvider
	storage  ports.Storage
	notifier ports.Notifier
	calc     *profit.Calculator
}

// New creates a Tracker with all dependencies injected. storage may be nil.
func New(
	cfg Config,
	swaps ports.SwapProvider,
	calc *profit.Calculator,
	storage ports.Storage,
	notifier ports.Notifier,
) *Tracker {
	if cfg.PageSize <= 0 {
		cfg.PageSize = defaultPageSize
	}
	if cfg.MaxPages <= 0 {
		cfg.MaxPages = defaultMaxPages
	}
	return &Tracker{
		cfg:      cfg,
		swaps:    swaps,
		calc:     calc,
		storage:  storage,
		notifier: notifier,
	}
}

// RunOnce walks the trader's swaps in chronological order, feeds them to the
// calculator and reports the resulting run.
func (t *Tracker) RunOnce(ctx context.Context) (domain.Run, error) {
	start := time.Now()

	slog.Info("tracker starting",
		"trader", t.cfg.Trader.Hex(),
		"page_size", t.cfg.PageSize,
		"max_pages", t.cfg.MaxPages,
	)

	processed, err := t.ingest(ctx)
	if err != nil {
		return domain.Run{}, err
	}

	run := domain.Run{
		ID:        uuid.New().String(),
		Trader:    t.cfg.Trader,
		StartedAt: start,
		Swaps:     processed,
		Realized:  t.calc.RealizedTrades(),
		Open:      t.calc.Positions(),
	}

	if err := t.notifier.Notify(ctx, run); err != nil {
		slog.Warn("notifier error", "err", err)
	}

	if t.storage != nil {
		if err := t.storage.SaveRun(ctx, run); err != nil {
			slog.Warn("storage error", "err", err)
		}
	}

	slog.Info("tracker run complete",
		"swaps", processed,
		"realized", len(run.Realized),
		"open", len(run.Open),
		"profit_usd", run.TotalProfitUSD(),
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return run, nil
}

// ingest pages through the swap history and feeds each swap to the
// calculator. Order matters: cost basis depends on it. Paging stops on the
// provider's has-more signal, never on the extracted-swap count: a page of
// approvals or plain transfers yields zero swaps while history remains.
func (t *Tracker) ingest(ctx context.Context) (int, error) {
	processed := 0
	for page := 0; page < t.cfg.MaxPages; page++ {
		swaps, more, err := t.swaps.FetchSwaps(ctx, t.cfg.Trader, page, t.cfg.PageSize)
		if err != nil {
			return processed, fmt.Errorf("tracker.ingest: fetch page %d: %w", page, err)
		}

		for i := range swaps {
			if err := t.calc.ReceiveSwap(&swaps[i]); err != nil {
				return processed, fmt.Errorf("tracker.ingest: swap %s: %w", swaps[i].TxHash, err)
			}
			processed++
		}

		slog.Debug("page ingested", "page", page, "swaps", len(swaps), "has_more", more)

		if !more {
			break
		}
	}
	return processed, nil
}

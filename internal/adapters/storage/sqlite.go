package storage

// sqlite.go — run history persistence.
//
// One row per run in `runs`, plus the realized trades and the open-positions
// snapshot taken at the end of the run. Pure-Go SQLite, no CGo.

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
	_ "modernc.org/sqlite"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id            TEXT PRIMARY KEY,
    trader        TEXT     NOT NULL,
    started_at    DATETIME NOT NULL,
    swaps         INTEGER  NOT NULL DEFAULT 0,
    trades        INTEGER  NOT NULL DEFAULT 0,
    open_count    INTEGER  NOT NULL DEFAULT 0,
    total_profit  REAL     NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS realized_trades (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id         TEXT NOT NULL,
    token_address  TEXT NOT NULL,
    token_symbol   TEXT NOT NULL,
    amount         REAL NOT NULL,
    buy_price_usd  REAL NOT NULL,
    sell_price_usd REAL NOT NULL,
    buy_value_usd  REAL NOT NULL,
    sell_value_usd REAL NOT NULL,
    profit_usd     REAL NOT NULL,
    sell_time      DATETIME NOT NULL,
    sell_tx        TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS open_positions (
    id             INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id         TEXT NOT NULL,
    token_address  TEXT NOT NULL,
    token_symbol   TEXT NOT NULL,
    held_amount    REAL NOT NULL,
    avg_buy_price  REAL NOT NULL,
    cost_basis     REAL NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_trades_run    ON realized_trades(run_id);
CREATE INDEX IF NOT EXISTS idx_positions_run ON open_positions(run_id);
CREATE INDEX IF NOT EXISTS idx_runs_trader   ON runs(trader);
`

// SQLiteStorage implements ports.Storage using SQLite.
type SQLiteStorage struct {
	db *sql.DB
}

// NewSQLiteStorage opens (or creates) the database at the given path and
// applies the schema.
func NewSQLiteStorage(path string) (*SQLiteStorage, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("storage.NewSQLiteStorage: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage.NewSQLiteStorage: apply schema: %w", err)
	}
	return &SQLiteStorage{db: db}, nil
}

// SaveRun persists the run summary, its trades and the positions snapshot
// in a single transaction.
func (s *SQLiteStorage) SaveRun(ctx context.Context, run domain.Run) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, trader, started_at, swaps, trades, open_count, total_profit)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Trader.Hex(), run.StartedAt.UTC().Format(time.RFC3339),
		run.Swaps, len(run.Realized), len(run.Open), run.TotalProfitUSD(),
	); err != nil {
		return fmt.Errorf("storage.SaveRun: insert run: %w", err)
	}

	tradeStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO realized_trades
			(run_id, token_address, token_symbol, amount, buy_price_usd,
			 sell_price_usd, buy_value_usd, sell_value_usd, profit_usd,
			 sell_time, sell_tx)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare trades: %w", err)
	}
	defer tradeStmt.Close()

	for _, t := range run.Realized {
		if _, err := tradeStmt.ExecContext(ctx,
			run.ID, t.Token.Address.Hex(), t.Token.Symbol, t.Amount,
			t.BuyPriceUSD, t.SellPriceUSD, t.BuyValueUSD, t.SellValueUSD,
			t.ProfitUSD, t.SellTime.UTC().Format(time.RFC3339), t.SellTx,
		); err != nil {
			return fmt.Errorf("storage.SaveRun: insert trade %s: %w", t.SellTx, err)
		}
	}

	posStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO open_positions
			(run_id, token_address, token_symbol, held_amount, avg_buy_price, cost_basis)
		VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("storage.SaveRun: prepare positions: %w", err)
	}
	defer posStmt.Close()

	for _, p := range run.Open {
		if _, err := posStmt.ExecContext(ctx,
			run.ID, p.Token.Address.Hex(), p.Token.Symbol,
			p.HeldAmount, p.AvgBuyPriceUSD, p.CostBasis(),
		); err != nil {
			return fmt.Errorf("storage.SaveRun: insert position %s: %w", p.Token.Symbol, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("storage.SaveRun: commit: %w", err)
	}
	return nil
}

// GetTrades returns the realized trades of a run in the order they were
// realized.
func (s *SQLiteStorage) GetTrades(ctx context.Context, runID string) ([]domain.RealizedTrade, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT token_address, token_symbol, amount, buy_price_usd, sell_price_usd,
		       buy_value_usd, sell_value_usd, profit_usd, sell_time, sell_tx
		FROM realized_trades
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("storage.GetTrades: query: %w", err)
	}
	defer rows.Close()

	var trades []domain.RealizedTrade
	for rows.Next() {
		var t domain.RealizedTrade
		var addr, sellTime string
		if err := rows.Scan(
			&addr, &t.Token.Symbol, &t.Amount, &t.BuyPriceUSD, &t.SellPriceUSD,
			&t.BuyValueUSD, &t.SellValueUSD, &t.ProfitUSD, &sellTime, &t.SellTx,
		); err != nil {
			return nil, fmt.Errorf("storage.GetTrades: scan row: %w", err)
		}
		t.Token.Address = common.HexToAddress(addr)
		t.SellTime, _ = time.Parse(time.RFC3339, sellTime)
		trades = append(trades, t)
	}
	return trades, rows.Err()
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

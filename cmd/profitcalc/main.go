package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/config"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/covalent"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/notify"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/pricing"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/storage"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/ports"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/profit"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/tracker"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to config file")
	address := flag.String("address", "", "trader address to analyze (overrides config)")
	noStore := flag.Bool("no-store", false, "skip persisting the run to SQLite")
	verbose := flag.Bool("verbose", false, "set log level to debug and print tx hashes")
	logFormat := flag.String("format", "", "log format: text|json (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load config", "err", err, "path", *configPath)
		os.Exit(1)
	}

	if *verbose {
		cfg.Log.Level = "debug"
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}
	setupLogger(cfg.Log)

	if *address != "" {
		cfg.Tracker.TraderAddress = *address
	}
	if !common.IsHexAddress(cfg.Tracker.TraderAddress) {
		slog.Error("invalid trader address", "address", cfg.Tracker.TraderAddress)
		os.Exit(1)
	}
	trader := common.HexToAddress(cfg.Tracker.TraderAddress)

	if cfg.API.CovalentKey == "" {
		slog.Error("missing Covalent API key: set COVALENT_KEY or api.covalent_key")
		os.Exit(1)
	}

	slog.Info("profitcalc starting",
		"config", *configPath,
		"trader", trader.Hex(),
		"page_size", cfg.Tracker.PageSize,
	)

	prices := pricing.NewBinance(cfg.API.BinanceBase)
	swaps := covalent.NewClient(cfg.API.CovalentBase, cfg.API.CovalentKey, prices)

	var store ports.Storage
	if !*noStore {
		sqlite, err := storage.NewSQLiteStorage(cfg.Storage.DSN)
		if err != nil {
			slog.Error("failed to open storage", "err", err, "dsn", cfg.Storage.DSN)
			os.Exit(1)
		}
		defer sqlite.Close()
		store = sqlite
	}

	notifier := notify.NewConsole(*verbose)

	calcCfg := profit.DefaultConfig()
	if cfg.Tracker.ValueDiffDivider > 0 {
		calcCfg.ValueDiffDivider = cfg.Tracker.ValueDiffDivider
	}
	if len(cfg.Tracker.IgnoredSymbols) > 0 {
		calcCfg.IgnoredSymbols = cfg.Tracker.IgnoredSymbols
	}
	calc := profit.New(calcCfg)

	trackCfg := tracker.DefaultConfig(trader)
	trackCfg.PageSize = cfg.Tracker.PageSize
	trackCfg.MaxPages = cfg.Tracker.MaxPages

	t := tracker.New(trackCfg, swaps, calc, store, notifier)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if _, err := t.RunOnce(ctx); err != nil {
		slog.Error("run failed", "err", err)
		os.Exit(1)
	}

	slog.Info("profitcalc done")
}

func setupLogger(cfg config.LogConfig) {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	slog.SetDefault(slog.New(handler))
}

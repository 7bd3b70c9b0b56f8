// Package pricing resolves USD spot prices for tokens that carry no USD
// quote in the transaction data itself.
package pricing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

const defaultBaseURL = "https://api.binance.com"

// Binance implements ports.PriceProvider against the Binance klines
// endpoint, using the 1-minute candle covering the requested time. Prices
// are cached per symbol and minute — swap extraction asks for the same
// block-minute repeatedly.
type Binance struct {
	http    *http.Client
	baseURL string

	mu    sync.Mutex
	cache map[string]float64 // "SYMBOL@unixMinute" → price
}

// NewBinance creates a provider. An empty baseURL falls back to production.
func NewBinance(baseURL string) *Binance {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Binance{
		http:    &http.Client{Timeout: 10 * time.Second},
		baseURL: baseURL,
		cache:   make(map[string]float64),
	}
}

// PriceOf returns the USD(T) price of a symbol at the given time.
func (b *Binance) PriceOf(ctx context.Context, symbol string, at time.Time) (float64, error) {
	minute := at.UTC().Truncate(time.Minute)
	key := symbol + "@" + strconv.FormatInt(minute.Unix(), 10)

	b.mu.Lock()
	cached, ok := b.cache[key]
	b.mu.Unlock()
	if ok {
		return cached, nil
	}

	price, err := b.fetchKlineOpen(ctx, symbol+"USDT", minute)
	if err != nil {
		return 0, fmt.Errorf("pricing.PriceOf: %s at %s: %w", symbol, minute, err)
	}

	b.mu.Lock()
	b.cache[key] = price
	b.mu.Unlock()
	return price, nil
}

// fetchKlineOpen requests a single 1m candle and returns its open price.
func (b *Binance) fetchKlineOpen(ctx context.Context, pair string, start time.Time) (float64, error) {
	url := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=1m&startTime=%d&limit=1",
		b.baseURL, pair, start.UnixMilli())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, err
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return 0, fmt.Errorf("klines status %d: %s", resp.StatusCode, string(body))
	}

	// Klines come as arrays: [openTime, open, high, low, close, ...]
	var candles [][]any
	if err := json.NewDecoder(resp.Body).Decode(&candles); err != nil {
		return 0, fmt.Errorf("decode klines: %w", err)
	}
	if len(candles) == 0 || len(candles[0]) < 2 {
		return 0, fmt.Errorf("no candle for %s at %s", pair, start)
	}

	open, ok := candles[0][1].(string)
	if !ok {
		return 0, fmt.Errorf("unexpected kline open type %T", candles[0][1])
	}
	price, err := strconv.ParseFloat(open, 64)
	if err != nil {
		return 0, fmt.Errorf("parse open price %q: %w", open, err)
	}
	return price, nil
}

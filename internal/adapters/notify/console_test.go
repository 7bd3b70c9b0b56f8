package notify_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/notify"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

func sampleRun() domain.Run {
	sellTime := time.Date(2022, 3, 15, 10, 30, 0, 0, time.UTC)
	spex := domain.Token{
		Address: common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Symbol:  "SPEX",
	}
	bao := domain.Token{
		Address: common.HexToAddress("0x0000000000000000000000000000000000000003"),
		Symbol:  "BAO",
	}

	return domain.Run{
		ID:        "run-1",
		Trader:    common.HexToAddress("0x00000000000000000000000000000000000000aa"),
		StartedAt: sellTime.Add(-time.Hour),
		Swaps:     4,
		Realized: []domain.RealizedTrade{
			{
				Token:        spex,
				Amount:       50,
				BuyPriceUSD:  2.0,
				SellPriceUSD: 2.4,
				BuyValueUSD:  100,
				SellValueUSD: 120,
				ProfitUSD:    20,
				SellTime:     sellTime,
				SellTx:       "0xabc",
			},
		},
		Open: []domain.Position{
			{
				Token:          bao,
				HeldAmount:     10,
				AvgBuyPriceUSD: 1.5,
				Acquisitions: []domain.Acquisition{
					{Token: bao, Amount: 10, BuyPriceUSD: 1.5, ValueUSD: 15},
				},
			},
		},
	}
}

func TestNotify_PrintsRealizedTrades(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	err := console.Notify(context.Background(), sampleRun())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "PROFIT REPORT")
	assert.Contains(t, out, "SPEX")
	assert.Contains(t, out, "+20.00")
	assert.Contains(t, out, "2022-03-15 10:30")
}

func TestNotify_PrintsOpenPositions(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	err := console.Notify(context.Background(), sampleRun())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "OPEN POSITIONS")
	assert.Contains(t, out, "BAO")
	assert.Contains(t, out, "15.00")
}

func TestNotify_Summary(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	err := console.Notify(context.Background(), sampleRun())
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "TOTAL PROFIT:     $+20.00")
	assert.Contains(t, out, "Realized trades:  1 (1 winning)")
	assert.Contains(t, out, "Win rate:         100.0%")
}

func TestNotify_EmptyRun(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, false)

	run := domain.Run{ID: "run-2", Swaps: 0}
	err := console.Notify(context.Background(), run)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "no realized trades")
	assert.NotContains(t, out, "OPEN POSITIONS")
}

func TestNotify_VerbosePrintsTxHashes(t *testing.T) {
	var buf bytes.Buffer
	console := notify.NewConsoleWriter(&buf, true)

	err := console.Notify(context.Background(), sampleRun())
	require.NoError(t, err)

	assert.Contains(t, buf.String(), "0xabc")
}

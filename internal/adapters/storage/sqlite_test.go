package storage_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/adapters/storage"
	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

func memoryStorage(t *testing.T) *storage.SQLiteStorage {
	t.Helper()
	s, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveRun_RoundTrip(t *testing.T) {
	s := memoryStorage(t)
	ctx := context.Background()

	token := domain.Token{
		Address: common.HexToAddress("0x0000000000000000000000000000000000000001"),
		Symbol:  "SPEX",
	}
	sellTime := time.Date(2022, 1, 1, 1, 1, 2, 0, time.UTC)
	run := domain.Run{
		ID:        uuid.New().String(),
		Trader:    common.HexToAddress("0xEeE7FA9f2148e9499D6d857DC09E29864203b138"),
		StartedAt: time.Now(),
		Swaps:     2,
		Realized: []domain.RealizedTrade{{
			Token:        token,
			Amount:       1.0,
			BuyPriceUSD:  100.0,
			SellPriceUSD: 120.0,
			BuyValueUSD:  100.0,
			SellValueUSD: 120.0,
			ProfitUSD:    20.0,
			SellTime:     sellTime,
			SellTx:       "0x123457",
		}},
		Open: []domain.Position{{
			Token:          token,
			HeldAmount:     3.0,
			AvgBuyPriceUSD: 50.0,
		}},
	}

	require.NoError(t, s.SaveRun(ctx, run))

	trades, err := s.GetTrades(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, trades, 1)
	assert.Equal(t, token, trades[0].Token)
	assert.Equal(t, 20.0, trades[0].ProfitUSD)
	assert.Equal(t, sellTime, trades[0].SellTime.UTC())
	assert.Equal(t, "0x123457", trades[0].SellTx)
}

func TestGetTrades_PreservesRealizationOrder(t *testing.T) {
	s := memoryStorage(t)
	ctx := context.Background()

	run := domain.Run{
		ID:        uuid.New().String(),
		Trader:    common.HexToAddress("0x0000000000000000000000000000000000000009"),
		StartedAt: time.Now(),
	}
	for i, tx := range []string{"0xaaa", "0xbbb", "0xccc"} {
		run.Realized = append(run.Realized, domain.RealizedTrade{
			Token:     domain.Token{Symbol: "SPEX"},
			ProfitUSD: float64(i),
			SellTime:  time.Now(),
			SellTx:    tx,
		})
	}
	require.NoError(t, s.SaveRun(ctx, run))

	trades, err := s.GetTrades(ctx, run.ID)
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "0xaaa", trades[0].SellTx)
	assert.Equal(t, "0xccc", trades[2].SellTx)
}

func TestGetTrades_UnknownRunEmpty(t *testing.T) {
	s := memoryStorage(t)
	trades, err := s.GetTrades(context.Background(), "nope")
	require.NoError(t, err)
	assert.Empty(t, trades)
}

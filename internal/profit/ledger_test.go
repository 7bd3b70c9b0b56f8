package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

func makeAcquisition(amount, priceUSD float64) domain.Acquisition {
	return domain.Acquisition{
		BuyTime:     baseTime,
		BuyPriceUSD: priceUSD,
		Amount:      amount,
		ValueUSD:    amount * priceUSD,
		TxHash:      "0x123456",
		Token:       domain.Token{Address: spexAddr, Symbol: "SPEX"},
	}
}

func TestLedger_ExtendOpensNewPosition(t *testing.T) {
	l := NewLedger()
	l.Extend(makeAcquisition(2.0, 50.0))

	pos, ok := l.Get(spexAddr)
	require.True(t, ok)
	assert.Equal(t, 2.0, pos.HeldAmount)
	assert.Equal(t, 50.0, pos.AvgBuyPriceUSD)
	assert.Equal(t, 1, l.Len())
}

func TestLedger_ExtendRecomputesAverage(t *testing.T) {
	l := NewLedger()
	l.Extend(makeAcquisition(1.0, 100.0))
	l.Extend(makeAcquisition(3.0, 200.0))

	pos, _ := l.Get(spexAddr)
	assert.Equal(t, 4.0, pos.HeldAmount)
	assert.InDelta(t, 175.0, pos.AvgBuyPriceUSD, 1e-9) // (100*1 + 200*3) / 4
	assert.Len(t, pos.Acquisitions, 2)
}

func TestLedger_ExtendManySmallBuys(t *testing.T) {
	l := NewLedger()
	for i := 0; i < 1000; i++ {
		l.Extend(makeAcquisition(0.001, 100.0))
	}
	pos, _ := l.Get(spexAddr)
	assert.InDelta(t, 1.0, pos.HeldAmount, 1e-9)
	assert.InDelta(t, 100.0, pos.AvgBuyPriceUSD, 1e-9)
}

func TestLedger_ReducePartialKeepsAverage(t *testing.T) {
	l := NewLedger()
	l.Extend(makeAcquisition(10.0, 7.0))

	require.NoError(t, l.Reduce(spexAddr, 4.0))

	pos, ok := l.Get(spexAddr)
	require.True(t, ok)
	assert.Equal(t, 6.0, pos.HeldAmount)
	assert.Equal(t, 7.0, pos.AvgBuyPriceUSD)
}

func TestLedger_ReduceToZeroRemovesPosition(t *testing.T) {
	l := NewLedger()
	l.Extend(makeAcquisition(2.5, 10.0))

	require.NoError(t, l.Reduce(spexAddr, 2.5))

	_, ok := l.Get(spexAddr)
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestLedger_ReduceBeyondHeldFails(t *testing.T) {
	l := NewLedger()
	l.Extend(makeAcquisition(1.0, 10.0))

	err := l.Reduce(spexAddr, 1.5)
	require.Error(t, err)

	// Ledger untouched after the failed reduce.
	pos, ok := l.Get(spexAddr)
	require.True(t, ok)
	assert.Equal(t, 1.0, pos.HeldAmount)
}

func TestLedger_ReduceUnknownTokenFails(t *testing.T) {
	l := NewLedger()
	assert.Error(t, l.Reduce(spexAddr, 1.0))
}

func TestLedger_SnapshotOrderedBySymbol(t *testing.T) {
	l := NewLedger()
	l.Extend(domain.Acquisition{
		Amount: 1, BuyPriceUSD: 1, ValueUSD: 1,
		Token: domain.Token{Address: usdtAddr, Symbol: "ZZZ"},
	})
	l.Extend(domain.Acquisition{
		Amount: 1, BuyPriceUSD: 1, ValueUSD: 1,
		Token: domain.Token{Address: spexAddr, Symbol: "AAA"},
	})

	snap := l.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, "AAA", snap[0].Token.Symbol)
	assert.Equal(t, "ZZZ", snap[1].Token.Symbol)
}

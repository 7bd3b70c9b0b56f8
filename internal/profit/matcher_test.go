package profit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

func TestValuesRoughlyEqual(t *testing.T) {
	cases := []struct {
		name  string
		a, b  float64
		equal bool
	}{
		{"identical", 100, 100, true},
		{"small slippage", 100, 120, true},
		{"wide but within mean", 100, 250, true}, // |10-25| = 15 < 17.5
		{"beyond mean", 100, 400, false},         // |10-40| = 30 > 25
		{"one side zero", 100, 0, false},
		{"both zero", 0, 0, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.equal, valuesRoughlyEqual(tc.a, tc.b, DefaultValueDiffDivider))
			assert.Equal(t, tc.equal, valuesRoughlyEqual(tc.b, tc.a, DefaultValueDiffDivider), "test must be symmetric")
		})
	}
}

func TestMatchBoughtLeg_FirstSoldLegWithinToleranceWins(t *testing.T) {
	bought := makeLeg("SPEX", spexAddr, 2.0, 100.0)
	swap := domain.TokenSwap{
		Time:    baseTime,
		UsdPaid: 100.0,
		SoldTokens: []domain.TradedToken{
			makeLeg("USDT", usdtAddr, 5.0, 5.0), // far off, skipped
			makeLeg("DAI", baoAddr, 98.0, 98.0),
		},
		BoughtTokens: []domain.TradedToken{bought},
		TxHash:       "0xabc",
	}

	acq, ok := matchBoughtLeg(&swap, bought, DefaultValueDiffDivider)
	require.True(t, ok)
	assert.Equal(t, 2.0, acq.Amount)
	assert.Equal(t, 50.0, acq.BuyPriceUSD) // bought leg's own per-unit price
	assert.Equal(t, 100.0, acq.ValueUSD)
	assert.Equal(t, "0xabc", acq.TxHash)
	assert.Equal(t, baseTime, acq.BuyTime)
}

func TestMatchBoughtLeg_NoSoldLegWithinTolerance(t *testing.T) {
	bought := makeLeg("SPEX", spexAddr, 1.0, 100.0)
	swap := domain.TokenSwap{
		Time:         baseTime,
		UsdPaid:      5.0,
		SoldTokens:   []domain.TradedToken{makeLeg("USDT", usdtAddr, 5.0, 5.0)},
		BoughtTokens: []domain.TradedToken{bought},
	}

	_, ok := matchBoughtLeg(&swap, bought, DefaultValueDiffDivider)
	assert.False(t, ok)
}

func TestFilterIgnored(t *testing.T) {
	calc := New(DefaultConfig())
	acqs := []domain.Acquisition{
		{Token: domain.Token{Symbol: "SPEX"}},
		{Token: domain.Token{Symbol: "WETH"}},
		{Token: domain.Token{Symbol: "USDC"}},
		{Token: domain.Token{Symbol: "BAO"}},
	}

	kept := calc.filterIgnored(acqs)
	require.Len(t, kept, 2)
	assert.Equal(t, "SPEX", kept[0].Token.Symbol)
	assert.Equal(t, "BAO", kept[1].Token.Symbol)
}

func TestFilterIgnored_CustomSet(t *testing.T) {
	calc := New(Config{IgnoredSymbols: []string{"BAO"}})
	acqs := []domain.Acquisition{
		{Token: domain.Token{Symbol: "WETH"}},
		{Token: domain.Token{Symbol: "BAO"}},
	}

	kept := calc.filterIgnored(acqs)
	require.Len(t, kept, 1)
	assert.Equal(t, "WETH", kept[0].Token.Symbol)
}

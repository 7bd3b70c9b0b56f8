package domain

import "github.com/ethereum/go-ethereum/common"

// Token identifies an ERC-20 token by contract address and symbol.
type Token struct {
	Address common.Address
	Symbol  string
}

// TradedToken is a token amount observed on one leg of a swap,
// already priced in USD by the upstream pipeline.
type TradedToken struct {
	Token
	Amount   float64
	ValueUSD float64
	PriceUSD float64 // ValueUSD / Amount at swap time
}

// NewTradedToken builds a leg with the per-unit price derived from its USD value.
func NewTradedToken(token Token, amount, valueUSD float64) TradedToken {
	price := 0.0
	if amount > 0 {
		price = valueUSD / amount
	}
	return TradedToken{
		Token:    token,
		Amount:   amount,
		ValueUSD: valueUSD,
		PriceUSD: price,
	}
}

package covalent

// extract.go — turns decoded Covalent log events into domain.TokenSwap.
//
// Per transaction: ERC-20 Transfer events touching the trader become sold or
// bought legs depending on direction; WETH Deposit/Withdrawal events (native
// ETH wraps/unwraps) are priced with the spot provider and join the sold or
// bought side respectively. Transactions where nothing of USD value left the
// wallet produce no swap.

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

// transactionMoves collects the per-transaction token flows before they are
// assembled into a swap.
type transactionMoves struct {
	sent        []domain.TradedToken
	received    []domain.TradedToken
	deposits    []domain.TradedToken
	withdrawals []domain.TradedToken
}

// extractSwap builds a TokenSwap from one transaction item, or nil when the
// transaction is not a swap from the trader's perspective. An undecodable
// log event disqualifies the whole transaction.
func (c *Client) extractSwap(ctx context.Context, item transactionItem, trader common.Address) (*domain.TokenSwap, error) {
	var moves transactionMoves

	for _, event := range item.LogEvents {
		if event.Decoded == nil {
			slog.Debug("undecoded log event, skipping transaction", "tx", item.TxHash)
			return nil, nil
		}
		if err := c.extractEvent(ctx, item, event, trader, &moves); err != nil {
			return nil, fmt.Errorf("covalent.extractSwap: tx %s: %w", item.TxHash, err)
		}
	}

	return assembleSwap(moves, item.BlockSignedAt, item.TxHash), nil
}

// extractEvent routes one decoded log event into the transaction's moves.
func (c *Client) extractEvent(ctx context.Context, item transactionItem, event logEvent, trader common.Address, moves *transactionMoves) error {
	switch event.Decoded.Name {
	case "Transfer":
		c.extractTransfer(item, event, trader, moves)
	case "Deposit":
		return c.extractWrap(ctx, item, event, moves, true)
	case "Withdrawal":
		return c.extractWrap(ctx, item, event, moves, false)
	}
	return nil
}

// extractTransfer classifies an ERC-20 transfer as sold or bought. Transfers
// between third-party contracts are ignored; a leg the transaction-level USD
// quote cannot price is dropped with a diagnostic.
func (c *Client) extractTransfer(item transactionItem, event logEvent, trader common.Address, moves *transactionMoves) {
	from, to, raw, ok := transferParams(event.Decoded.Params)
	if !ok {
		slog.Warn("transfer event missing params, skipping leg", "tx", item.TxHash)
		return
	}

	traderHex := strings.ToLower(trader.Hex())
	traderSends := strings.ToLower(from) == traderHex
	traderReceives := strings.ToLower(to) == traderHex
	if !traderSends && !traderReceives {
		return
	}

	amount := raw / math.Pow10(event.SenderContractDecimals)
	if amount <= 0 {
		return
	}
	if item.ValueQuote <= 0 {
		slog.Warn("no USD quote for transaction, dropping transfer leg",
			"tx", item.TxHash, "token", event.SenderContractTickerSymbol)
		return
	}

	leg := domain.NewTradedToken(domain.Token{
		Address: common.HexToAddress(event.SenderAddress),
		Symbol:  event.SenderContractTickerSymbol,
	}, amount, item.ValueQuote)

	if traderSends && !traderReceives {
		moves.sent = append(moves.sent, leg)
	} else {
		moves.received = append(moves.received, leg)
	}
}

// extractWrap handles WETH Deposit/Withdrawal events. The wrapped amount has
// no per-event USD quote, so it is priced with the ETH spot price at block
// time.
func (c *Client) extractWrap(ctx context.Context, item transactionItem, event logEvent, moves *transactionMoves, isDeposit bool) error {
	raw, ok := paramFloat(event.Decoded.Params, "wad")
	if !ok {
		slog.Warn("wrap event missing wad param, skipping leg", "tx", item.TxHash)
		return nil
	}

	amount := raw / math.Pow10(event.SenderContractDecimals)
	price, err := c.prices.PriceOf(ctx, "ETH", item.BlockSignedAt)
	if err != nil {
		return fmt.Errorf("price ETH at %s: %w", item.BlockSignedAt, err)
	}

	leg := domain.NewTradedToken(domain.Token{
		Address: common.HexToAddress(event.SenderAddress),
		Symbol:  event.SenderContractTickerSymbol,
	}, amount, amount*price)

	if isDeposit {
		moves.deposits = append(moves.deposits, leg)
	} else {
		moves.withdrawals = append(moves.withdrawals, leg)
	}
	return nil
}

// assembleSwap combines the transaction's moves into a swap: sent transfers
// and deposits paid for the trade, received transfers and withdrawals were
// obtained by it. A transaction that paid nothing is not a swap.
func assembleSwap(moves transactionMoves, blockTime time.Time, txHash string) *domain.TokenSwap {
	var sold, bought []domain.TradedToken
	usdPaid, usdReceived := 0.0, 0.0

	for _, leg := range moves.sent {
		usdPaid += leg.ValueUSD
		sold = append(sold, leg)
	}
	for _, leg := range moves.received {
		usdReceived += leg.ValueUSD
		bought = append(bought, leg)
	}
	for _, leg := range moves.deposits {
		usdPaid += leg.ValueUSD
		sold = append(sold, leg)
	}
	for _, leg := range moves.withdrawals {
		usdReceived += leg.ValueUSD
		bought = append(bought, leg)
	}

	if usdPaid == 0 {
		return nil
	}
	return &domain.TokenSwap{
		Time:         blockTime,
		UsdPaid:      usdPaid,
		UsdReceived:  usdReceived,
		SoldTokens:   sold,
		BoughtTokens: bought,
		TxHash:       txHash,
	}
}

// transferParams pulls from/to/value out of a decoded Transfer event.
func transferParams(params []decodedParam) (from, to string, value float64, ok bool) {
	from, fromOK := paramString(params, "from")
	to, toOK := paramString(params, "to")
	value, valueOK := paramFloat(params, "value")
	return from, to, value, fromOK && toOK && valueOK
}

func paramString(params []decodedParam, name string) (string, bool) {
	for _, p := range params {
		if p.Name != name {
			continue
		}
		s, ok := p.Value.(string)
		return s, ok && s != ""
	}
	return "", false
}

// paramFloat parses a numeric param that Covalent encodes as a decimal
// string for uint256 values.
func paramFloat(params []decodedParam, name string) (float64, bool) {
	for _, p := range params {
		if p.Name != name {
			continue
		}
		switch v := p.Value.(type) {
		case string:
			f, err := strconv.ParseFloat(v, 64)
			return f, err == nil
		case float64:
			return v, true
		}
		return 0, false
	}
	return 0, false
}

package covalent

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"

	"github.com/ethereum/go-ethereum/common"

	"github.com/tomastoth/uniswap-trader-profit-calculator/internal/domain"
)

const transactionsPath = "/address/%s/transactions_v2/"

// FetchSwaps fetches one page of the trader's transaction history and
// extracts the token swaps from it, oldest first. Transactions that cannot
// be extracted (missing price data, undecoded logs) are skipped with a
// diagnostic — one bad transaction never aborts the page. The returned bool
// comes from the API's pagination: a page of approvals or plain transfers
// extracts zero swaps yet can still have pages behind it.
func (c *Client) FetchSwaps(ctx context.Context, trader common.Address, page, pageSize int) ([]domain.TokenSwap, bool, error) {
	resp, err := c.fetchTransactions(ctx, trader, page, pageSize)
	if err != nil {
		return nil, false, fmt.Errorf("covalent.FetchSwaps: %w", err)
	}
	if resp.Error {
		return nil, false, fmt.Errorf("covalent.FetchSwaps: api error: %s", resp.ErrorMessage)
	}

	var swaps []domain.TokenSwap
	for _, item := range resp.Data.Items {
		swap, err := c.extractSwap(ctx, item, trader)
		if err != nil {
			slog.Warn("could not extract swap, skipping transaction",
				"tx", item.TxHash, "err", err)
			continue
		}
		if swap == nil {
			continue
		}
		swaps = append(swaps, *swap)
	}

	more := hasMore(resp, pageSize)

	slog.Debug("swaps extracted from page",
		"page", page,
		"transactions", len(resp.Data.Items),
		"swaps", len(swaps),
		"has_more", more,
	)
	return swaps, more, nil
}

// hasMore reads the pagination block; a missing block falls back to whether
// the page came back full.
func hasMore(resp *transactionsResponse, pageSize int) bool {
	if resp.Data.Pagination != nil {
		return resp.Data.Pagination.HasMore
	}
	return len(resp.Data.Items) == pageSize && pageSize > 0
}

// fetchTransactions requests one page in chronological (block-signed-at
// ascending) order, preserving the swap stream's ordering invariant.
func (c *Client) fetchTransactions(ctx context.Context, trader common.Address, page, pageSize int) (*transactionsResponse, error) {
	params := url.Values{}
	params.Set("quote-currency", "USD")
	params.Set("format", "JSON")
	params.Set("block-signed-at-asc", "true")
	params.Set("no-logs", "false")
	params.Set("page-number", strconv.Itoa(page))
	params.Set("page-size", strconv.Itoa(pageSize))
	params.Set("key", c.apiKey)

	endpoint := c.baseURL + fmt.Sprintf(transactionsPath, trader.Hex()) + "?" + params.Encode()

	var resp transactionsResponse
	if err := c.get(ctx, endpoint, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

package covalent

import "time"

// Response shapes for the /address/{addr}/transactions_v2/ endpoint.
// Only the fields the extraction needs are mapped.

type transactionsResponse struct {
	Data         transactionsData `json:"data"`
	Error        bool             `json:"error"`
	ErrorMessage string           `json:"error_message"`
}

type transactionsData struct {
	Items      []transactionItem `json:"items"`
	Pagination *pagination       `json:"pagination"`
}

type pagination struct {
	HasMore bool `json:"has_more"`
}

type transactionItem struct {
	BlockSignedAt time.Time  `json:"block_signed_at"`
	TxHash        string     `json:"tx_hash"`
	ValueQuote    float64    `json:"value_quote"` // USD value of the transaction
	LogEvents     []logEvent `json:"log_events"`
}

type logEvent struct {
	SenderAddress              string        `json:"sender_address"` // emitting token contract
	SenderContractDecimals     int           `json:"sender_contract_decimals"`
	SenderContractTickerSymbol string        `json:"sender_contract_ticker_symbol"`
	Decoded                    *decodedEvent `json:"decoded"`
}

type decodedEvent struct {
	Name   string         `json:"name"`
	Params []decodedParam `json:"params"`
}

// decodedParam values arrive as strings for addresses and uint256 amounts.
type decodedParam struct {
	Name  string `json:"name"`
	Value any    `json:"value"`
}

package models

import "time"

// Order is a single fill inside an order-matching run. Ephemeral: it lives
// only in a processor's working memory during one import.
type Order struct {
	Quantity   float64   `json:"quantity"`
	Price      float64   `json:"price"`
	Commission float64   `json:"commission"`
	Timestamp  time.Time `json:"timestamp"`
	OrderID    string    `json:"order_id"`
	Side       Side      `json:"side"`
}

// OpenPosition is the running net position for one (account, instrument)
// key. Fills mutate it in timestamp order until the net quantity reaches
// zero or flips sign, at which point a Trade is emitted.
type OpenPosition struct {
	AccountNumber     string    `json:"account_number"`
	Instrument        string    `json:"instrument"`
	Side              Side      `json:"side"`
	Quantity          float64   `json:"quantity"`
	EntryOrders       []Order   `json:"entry_orders"`
	ExitOrders        []Order   `json:"exit_orders"`
	AverageEntryPrice float64   `json:"average_entry_price"`
	EntryDate         time.Time `json:"entry_date"`
	TotalCommission   float64   `json:"total_commission"`
	OriginalQuantity  float64   `json:"original_quantity"`
}

// Key returns the arena key for this position.
func (p *OpenPosition) Key() string {
	return p.AccountNumber + "|" + p.Instrument
}

// PositionKey builds the arena key for an (account, instrument) pair.
func PositionKey(account, instrument string) string {
	return account + "|" + instrument
}

// ExtractedOrder is the structured-orders-out contract of the PDF
// order-extraction collaborator: a fill tagged with the account and symbol
// the statement reported it under.
type ExtractedOrder struct {
	AccountNumber string `json:"account_number"`
	Symbol        string `json:"symbol"`
	Order
}

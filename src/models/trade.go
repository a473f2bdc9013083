package models

import "time"

// Side is the direction of a position.
type Side string

const (
	SideLong  Side = "long"
	SideShort Side = "short"
)

// Flip returns the opposite direction.
func (s Side) Flip() Side {
	if s == SideLong {
		return SideShort
	}
	return SideLong
}

// Trade is the canonical output of every platform processor. Each parser is
// responsible for populating as many of these fields as possible directly
// from the source file; the commission resolver and hasher fill in the rest.
type Trade struct {
	// ID is a deterministic content hash of the identity fields. Two imports
	// of the same logical trade always produce the same ID, which the
	// persistence layer relies on to skip duplicates.
	ID             string   `json:"id"`
	AccountNumber  string   `json:"account_number"`
	Instrument     string   `json:"instrument"`
	Side           Side     `json:"side"`
	Quantity       float64  `json:"quantity"`
	EntryPrice     string   `json:"entry_price"`
	ClosePrice     string   `json:"close_price,omitempty"`
	EntryDate      string   `json:"entry_date"` // RFC3339 with explicit offset
	CloseDate      string   `json:"close_date,omitempty"`
	PnL            float64  `json:"pnl"`
	Commission     float64  `json:"commission"`
	TimeInPosition int64    `json:"time_in_position"` // whole seconds
	EntryID        string   `json:"entry_id,omitempty"`
	CloseID        string   `json:"close_id,omitempty"`
	Comment        string   `json:"comment,omitempty"`
	Tags           []string `json:"tags,omitempty"`
}

// EntryTime parses the trade's entry date. Returns zero time when absent or
// malformed; callers that already validated the trade never see that.
func (t *Trade) EntryTime() time.Time {
	ts, _ := time.Parse(time.RFC3339, t.EntryDate)
	return ts
}

// CloseTime parses the trade's close date, zero time when open.
func (t *Trade) CloseTime() time.Time {
	if t.CloseDate == "" {
		return time.Time{}
	}
	ts, _ := time.Parse(time.RFC3339, t.CloseDate)
	return ts
}

// SameExecution reports whether two trades describe the same fill set. Used
// by direct-field processors to drop in-batch repeats before hashing.
func (t *Trade) SameExecution(o *Trade) bool {
	return t.AccountNumber == o.AccountNumber &&
		t.Instrument == o.Instrument &&
		t.EntryDate == o.EntryDate &&
		t.CloseDate == o.CloseDate &&
		t.Quantity == o.Quantity
}

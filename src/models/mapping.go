package models

import (
	"fmt"
	"strings"
)

// Destination is a canonical trade field a source column can be mapped to.
type Destination string

const (
	DestAccountNumber  Destination = "accountNumber"
	DestInstrument     Destination = "instrument"
	DestEntryID        Destination = "entryId"
	DestCloseID        Destination = "closeId"
	DestQuantity       Destination = "quantity"
	DestEntryPrice     Destination = "entryPrice"
	DestClosePrice     Destination = "closePrice"
	DestEntryDate      Destination = "entryDate"
	DestCloseDate      Destination = "closeDate"
	DestPnL            Destination = "pnl"
	DestTimeInPosition Destination = "timeInPosition"
	DestSide           Destination = "side"
	DestCommission     Destination = "commission"
)

// Destinations lists every canonical field, in display order.
var Destinations = []Destination{
	DestAccountNumber, DestInstrument, DestEntryID, DestCloseID,
	DestQuantity, DestEntryPrice, DestClosePrice, DestEntryDate,
	DestCloseDate, DestPnL, DestTimeInPosition, DestSide, DestCommission,
}

// IsValidDestination reports whether s names a canonical field.
func IsValidDestination(s string) bool {
	for _, d := range Destinations {
		if string(d) == s {
			return true
		}
	}
	return false
}

// ColumnID identifies a source column by header text plus positional index,
// so duplicate header names stay distinguishable.
type ColumnID struct {
	Header string `json:"header"`
	Index  int    `json:"index"`
}

// Key is the map key form of a ColumnID.
func (c ColumnID) Key() string {
	return fmt.Sprintf("%s#%d", strings.TrimSpace(c.Header), c.Index)
}

// ColumnMapping assigns source columns to canonical destinations.
// Invariant: a destination is claimed by at most one column. Every mutation
// goes through Set, which evicts the previous claimant.
type ColumnMapping struct {
	byColumn map[string]Destination
	columns  map[string]ColumnID
}

// NewColumnMapping returns an empty mapping.
func NewColumnMapping() *ColumnMapping {
	return &ColumnMapping{
		byColumn: make(map[string]Destination),
		columns:  make(map[string]ColumnID),
	}
}

// Set maps col to dest. Any other column currently holding dest is
// unclaimed first (last write wins), and any previous destination of col is
// replaced.
func (m *ColumnMapping) Set(col ColumnID, dest Destination) {
	for key, d := range m.byColumn {
		if d == dest && key != col.Key() {
			delete(m.byColumn, key)
			delete(m.columns, key)
		}
	}
	m.byColumn[col.Key()] = dest
	m.columns[col.Key()] = col
}

// Clear removes any destination assigned to col.
func (m *ColumnMapping) Clear(col ColumnID) {
	delete(m.byColumn, col.Key())
	delete(m.columns, col.Key())
}

// DestinationOf returns the destination assigned to col, if any.
func (m *ColumnMapping) DestinationOf(col ColumnID) (Destination, bool) {
	d, ok := m.byColumn[col.Key()]
	return d, ok
}

// ColumnFor returns the source column claiming dest, if any.
func (m *ColumnMapping) ColumnFor(dest Destination) (ColumnID, bool) {
	for key, d := range m.byColumn {
		if d == dest {
			return m.columns[key], true
		}
	}
	return ColumnID{}, false
}

// IndexFor returns the positional index of the column claiming dest, -1 when
// the destination is unmapped.
func (m *ColumnMapping) IndexFor(dest Destination) int {
	if col, ok := m.ColumnFor(dest); ok {
		return col.Index
	}
	return -1
}

// Len reports how many columns carry a destination.
func (m *ColumnMapping) Len() int { return len(m.byColumn) }

// Project reads the cells a row maps to, keyed by destination. Missing or
// out-of-range columns yield absent keys.
func (m *ColumnMapping) Project(row []string) map[Destination]string {
	out := make(map[Destination]string, len(m.byColumn))
	for key, dest := range m.byColumn {
		col := m.columns[key]
		if col.Index >= 0 && col.Index < len(row) {
			out[dest] = strings.TrimSpace(row[col.Index])
		}
	}
	return out
}

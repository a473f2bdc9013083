// Package rowparse carries the row-conversion steps every direct-field
// platform processor shares: tolerant field access, side derivation, and
// in-batch dedup. A bad row is a skip, never an abort.
package rowparse

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/utils"
)

// Price renders a parsed price the way canonical trades carry them: a
// plain decimal string.
func Price(p float64) string {
	return decimal.NewFromFloat(p).String()
}

// PriceString normalizes a raw price cell to a decimal string, empty when
// the cell is empty or unparseable.
func PriceString(raw string) string {
	d, err := utils.ParseDecimal(raw)
	if err != nil {
		return ""
	}
	return d.String()
}

// Fields is one row projected through the column mapping.
type Fields map[models.Destination]string

// Get returns the raw cell for a destination, empty when unmapped.
func (f Fields) Get(dest models.Destination) string {
	return strings.TrimSpace(f[dest])
}

// Require returns the cell for dest or an error naming the missing field.
func (f Fields) Require(dest models.Destination) (string, error) {
	v := f.Get(dest)
	if v == "" {
		return "", fmt.Errorf("missing required field %s", dest)
	}
	return v, nil
}

// Float parses a locale-tolerant number from dest.
func (f Fields) Float(dest models.Destination) (float64, error) {
	v, err := f.Require(dest)
	if err != nil {
		return 0, err
	}
	n, err := utils.ParseFloat(v)
	if err != nil {
		return 0, fmt.Errorf("field %s: %w", dest, err)
	}
	return n, nil
}

// Quantity parses a volume field and rejects zero. Statements mix trade
// rows with balance and summary lines that carry no volume; those are not
// trades and must not reach the output, where quantity is always nonzero.
func (f Fields) Quantity(dest models.Destination) (float64, error) {
	n, err := f.Float(dest)
	if err != nil {
		return 0, err
	}
	if n == 0 {
		return 0, fmt.Errorf("field %s: zero quantity", dest)
	}
	return n, nil
}

// FloatOr parses dest, returning def when the field is empty or bad.
func (f Fields) FloatOr(dest models.Destination, def float64) float64 {
	n, err := f.Float(dest)
	if err != nil {
		return def
	}
	return n
}

// Date parses a timestamp from dest using the shared layout set.
func (f Fields) Date(dest models.Destination) (time.Time, error) {
	v, err := f.Require(dest)
	if err != nil {
		return time.Time{}, err
	}
	t, err := utils.ParseDate(v)
	if err != nil {
		return time.Time{}, fmt.Errorf("field %s: %w", dest, err)
	}
	return t, nil
}

// sideTokens maps the side spellings the supported platforms use,
// including the French NinjaTrader set.
var sideTokens = map[string]models.Side{
	"long":  models.SideLong,
	"buy":   models.SideLong,
	"b":     models.SideLong,
	"achat": models.SideLong,
	"bot":   models.SideLong,
	"short": models.SideShort,
	"sell":  models.SideShort,
	"s":     models.SideShort,
	"vente": models.SideShort,
	"sld":   models.SideShort,
}

// ParseSide resolves an explicit side token.
func ParseSide(s string) (models.Side, bool) {
	side, ok := sideTokens[strings.ToLower(strings.TrimSpace(s))]
	return side, ok
}

// ApplyTimes stamps entry/close dates and duration onto a trade. When the
// close precedes the entry chronologically the source listed the legs in
// reverse: the trade is treated as short and the legs are swapped.
func ApplyTimes(t *models.Trade, entry, close time.Time) {
	if !close.IsZero() && close.Before(entry) {
		entry, close = close, entry
		t.EntryPrice, t.ClosePrice = t.ClosePrice, t.EntryPrice
		t.EntryID, t.CloseID = t.CloseID, t.EntryID
		t.Side = models.SideShort
	}
	t.EntryDate = utils.FormatDate(entry)
	if !close.IsZero() {
		t.CloseDate = utils.FormatDate(close)
		t.TimeInPosition = utils.SecondsBetween(entry, close)
	}
}

// AppendUnique drops in-batch repeats (same account, instrument, entry and
// close dates, quantity) before appending.
func AppendUnique(trades []models.Trade, t models.Trade) ([]models.Trade, bool) {
	for i := range trades {
		if trades[i].SameExecution(&t) {
			return trades, false
		}
	}
	return append(trades, t), true
}

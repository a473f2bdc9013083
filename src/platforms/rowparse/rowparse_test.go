package rowparse

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradevault/backend/src/models"
)

func TestFields_Access(t *testing.T) {
	f := Fields{
		models.DestInstrument: " ES ",
		models.DestQuantity:   "2,5",
		models.DestPnL:        "bad",
	}

	assert.Equal(t, "ES", f.Get(models.DestInstrument))
	assert.Equal(t, "", f.Get(models.DestSide))

	_, err := f.Require(models.DestSide)
	assert.Error(t, err)

	qty, err := f.Float(models.DestQuantity)
	require.NoError(t, err)
	assert.Equal(t, 2.5, qty)

	assert.Equal(t, 0.0, f.FloatOr(models.DestPnL, 0))
	assert.Equal(t, 1.0, f.FloatOr(models.DestCommission, 1))
}

func TestFields_Quantity(t *testing.T) {
	f := Fields{
		models.DestQuantity:   "0",
		models.DestCommission: "-3",
	}

	_, err := f.Quantity(models.DestQuantity)
	assert.ErrorContains(t, err, "zero quantity")

	_, err = f.Quantity(models.DestPnL)
	assert.Error(t, err) // missing field still reported as such

	// Sign is preserved; callers that derive direction from it need it.
	qty, err := f.Quantity(models.DestCommission)
	require.NoError(t, err)
	assert.Equal(t, -3.0, qty)
}

func TestFields_Date(t *testing.T) {
	f := Fields{models.DestEntryDate: "10.03.2025 14:00:00"}
	ts, err := f.Date(models.DestEntryDate)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC), ts)

	_, err = f.Date(models.DestCloseDate)
	assert.Error(t, err)
}

func TestParseSide(t *testing.T) {
	long := []string{"long", "Buy", "B", "Achat", "BOT", " long "}
	short := []string{"short", "Sell", "S", "Vente", "SLD"}

	for _, tok := range long {
		side, ok := ParseSide(tok)
		assert.True(t, ok, "token %q", tok)
		assert.Equal(t, models.SideLong, side, "token %q", tok)
	}
	for _, tok := range short {
		side, ok := ParseSide(tok)
		assert.True(t, ok, "token %q", tok)
		assert.Equal(t, models.SideShort, side, "token %q", tok)
	}

	_, ok := ParseSide("sideways")
	assert.False(t, ok)
}

func TestApplyTimes(t *testing.T) {
	entry := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	close := entry.Add(5 * time.Minute)

	trade := &models.Trade{Side: models.SideLong}
	ApplyTimes(trade, entry, close)

	assert.Equal(t, "2025-03-10T14:00:00Z", trade.EntryDate)
	assert.Equal(t, "2025-03-10T14:05:00Z", trade.CloseDate)
	assert.Equal(t, int64(300), trade.TimeInPosition)
	assert.Equal(t, models.SideLong, trade.Side)
}

func TestApplyTimes_ReversedLegs(t *testing.T) {
	entry := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	close := entry.Add(-5 * time.Minute)

	// Close before entry: the source listed the legs backwards, so the trade
	// is a short with the legs swapped.
	trade := &models.Trade{
		Side:       models.SideLong,
		EntryPrice: "5000", ClosePrice: "5001",
		EntryID: "e1", CloseID: "c1",
	}
	ApplyTimes(trade, entry, close)

	assert.Equal(t, models.SideShort, trade.Side)
	assert.Equal(t, "5001", trade.EntryPrice)
	assert.Equal(t, "5000", trade.ClosePrice)
	assert.Equal(t, "c1", trade.EntryID)
	assert.Equal(t, "e1", trade.CloseID)
	assert.Equal(t, "2025-03-10T13:55:00Z", trade.EntryDate)
	assert.Equal(t, "2025-03-10T14:00:00Z", trade.CloseDate)
	assert.Equal(t, int64(300), trade.TimeInPosition)
}

func TestApplyTimes_OpenTrade(t *testing.T) {
	entry := time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC)
	trade := &models.Trade{Side: models.SideLong}
	ApplyTimes(trade, entry, time.Time{})

	assert.Equal(t, "2025-03-10T14:00:00Z", trade.EntryDate)
	assert.Equal(t, "", trade.CloseDate)
	assert.Equal(t, int64(0), trade.TimeInPosition)
}

func TestPriceString(t *testing.T) {
	assert.Equal(t, "5000.25", PriceString("5000.25"))
	assert.Equal(t, "5000.25", PriceString("5 000,25"))
	assert.Equal(t, "", PriceString(""))
	assert.Equal(t, "", PriceString("n/a"))
}

func TestAppendUnique(t *testing.T) {
	a := models.Trade{
		AccountNumber: "ACC1", Instrument: "ES", Quantity: 2,
		EntryDate: "2025-03-10T14:00:00Z", CloseDate: "2025-03-10T14:05:00Z",
	}
	dup := a
	dup.PnL = 50 // same execution regardless of non-identity fields
	b := a
	b.Quantity = 3

	trades, added := AppendUnique(nil, a)
	assert.True(t, added)
	trades, added = AppendUnique(trades, dup)
	assert.False(t, added)
	trades, added = AppendUnique(trades, b)
	assert.True(t, added)
	assert.Len(t, trades, 2)
}

// Package tradovate converts Tradovate performance exports into canonical
// trades. Each row carries a bought leg and a sold leg; whichever timestamp
// comes first is the entry, and a sold-first row is a short.
package tradovate

import (
	"math"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/symbols"
	"github.com/username/tradevault/backend/src/utils"
)

var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"symbol", "Contract"},
	models.DestQuantity:      {"qty", "Qty"},
	models.DestEntryPrice:    {"buyPrice", "Buy Price"},
	models.DestClosePrice:    {"sellPrice", "Sell Price"},
	models.DestEntryDate:     {"boughtTimestamp", "Bought Timestamp"},
	models.DestCloseDate:     {"soldTimestamp", "Sold Timestamp"},
	models.DestPnL:           {"pnl", "P/L"},
	models.DestCommission:    {"commission"},
}

// Process converts mapped rows one trade per row.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	var res models.ProcessResult
	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		trade, err := tradeFromRow(fields)
		if err != nil {
			logger.L.Warn("Tradovate: skipping row", "row", i+1, "error", err)
			res.RowsSkipped++
			continue
		}

		var added bool
		res.Trades, added = rowparse.AppendUnique(res.Trades, *trade)
		if !added {
			res.RowsSkipped++
		}
	}
	return res, nil
}

func tradeFromRow(f rowparse.Fields) (*models.Trade, error) {
	instrument, err := f.Require(models.DestInstrument)
	if err != nil {
		return nil, err
	}
	quantity, err := f.Quantity(models.DestQuantity)
	if err != nil {
		return nil, err
	}
	// The bought timestamp fills entryDate, the sold one closeDate. A
	// missing bought leg means the file predates the position; skip.
	boughtTime, err := f.Date(models.DestEntryDate)
	if err != nil {
		return nil, err
	}
	soldTime, err := f.Date(models.DestCloseDate)
	if err != nil {
		return nil, err
	}

	buyPrice := rowparse.PriceString(f.Get(models.DestEntryPrice))
	sellPrice := rowparse.PriceString(f.Get(models.DestClosePrice))

	trade := &models.Trade{
		AccountNumber: f.Get(models.DestAccountNumber),
		Instrument:    symbols.StripMonthCode(strings.ToUpper(instrument)),
		Side:          models.SideLong,
		Quantity:      math.Abs(quantity),
		PnL:           f.FloatOr(models.DestPnL, 0),
		Commission:    math.Abs(f.FloatOr(models.DestCommission, 0)),
	}

	// Sold before bought means the position was opened short: the sell leg
	// is the entry.
	if soldTime.Before(boughtTime) {
		trade.Side = models.SideShort
		trade.EntryPrice, trade.ClosePrice = sellPrice, buyPrice
		trade.EntryDate = utils.FormatDate(soldTime)
		trade.CloseDate = utils.FormatDate(boughtTime)
		trade.TimeInPosition = utils.SecondsBetween(soldTime, boughtTime)
		return trade, nil
	}

	trade.EntryPrice, trade.ClosePrice = buyPrice, sellPrice
	trade.EntryDate = utils.FormatDate(boughtTime)
	trade.CloseDate = utils.FormatDate(soldTime)
	trade.TimeInPosition = utils.SecondsBetween(boughtTime, soldTime)
	return trade, nil
}

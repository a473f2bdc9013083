// Package atas converts ATAS statistics exports (semicolon-delimited CSV,
// one closed trade per row) into canonical trades.
package atas

import (
	"math"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/symbols"
	"github.com/username/tradevault/backend/src/utils"
)

// DefaultMapping matches the header set of an ATAS "Trades" export.
var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"Instrument", "Symbol"},
	models.DestEntryDate:     {"Open time", "Time of opening"},
	models.DestCloseDate:     {"Close time", "Time of closing"},
	models.DestEntryPrice:    {"Open price", "Price of opening"},
	models.DestClosePrice:    {"Close price", "Price of closing"},
	models.DestQuantity:      {"Open volume", "Opened volume"},
	models.DestPnL:           {"PnL", "Profit"},
	models.DestCommission:    {"Commission"},
}

// Process converts mapped rows one trade per row. ATAS reports both open
// and close volume; a mismatch is logged but does not block the trade, and
// the open volume is authoritative.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	closeVolIdx := table.HeaderIndex("Close volume")
	if closeVolIdx == -1 {
		closeVolIdx = table.HeaderIndex("Closed volume")
	}

	var res models.ProcessResult
	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		trade, err := tradeFromRow(fields)
		if err != nil {
			logger.L.Warn("ATAS: skipping row", "row", i+1, "error", err)
			res.RowsSkipped++
			continue
		}

		if closeVolIdx >= 0 && closeVolIdx < len(row) {
			if closeVol, err := utils.ParseFloat(row[closeVolIdx]); err == nil &&
				math.Abs(closeVol) != math.Abs(trade.Quantity) {
				logger.L.Warn("ATAS: open/close volume mismatch, using open volume",
					"row", i+1, "open", trade.Quantity, "close", closeVol)
			}
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
	entryDate, err := f.Date(models.DestEntryDate)
	if err != nil {
		return nil, err
	}
	closeDate, err := f.Date(models.DestCloseDate)
	if err != nil {
		return nil, err
	}

	openVol, err := f.Quantity(models.DestQuantity)
	if err != nil {
		return nil, err
	}

	// The open volume sign carries the direction: positive entry means the
	// position was bought first.
	side := models.SideLong
	if openVol < 0 {
		side = models.SideShort
	}

	trade := &models.Trade{
		AccountNumber: f.Get(models.DestAccountNumber),
		Instrument:    symbols.Normalize(instrument),
		Side:          side,
		Quantity:      math.Abs(openVol),
		EntryPrice:    rowparse.PriceString(f.Get(models.DestEntryPrice)),
		ClosePrice:    rowparse.PriceString(f.Get(models.DestClosePrice)),
		PnL:           f.FloatOr(models.DestPnL, 0),
		Commission:    math.Abs(f.FloatOr(models.DestCommission, 0)),
	}
	rowparse.ApplyTimes(trade, entryDate, closeDate)
	return trade, nil
}

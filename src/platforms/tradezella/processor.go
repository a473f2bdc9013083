// Package tradezella converts Tradezella journal workbooks (.xlsx, named
// "Journal" sheet) into canonical trades. Dates arrive either formatted or
// as raw Excel serial numbers, both handled by the shared date parser.
package tradezella

import (
	"math"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/symbols"
	"github.com/username/tradevault/backend/src/utils"
)

// SheetName is the workbook sheet the journal lives in.
const SheetName = "Journal"

// RequiredColumns must be present in the detected header row; the
// extractor fails the file otherwise.
var RequiredColumns = []string{"Symbol", "Side", "Qty", "Entry Price", "Entry Date"}

var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"Symbol"},
	models.DestSide:          {"Side"},
	models.DestQuantity:      {"Qty", "Quantity"},
	models.DestEntryPrice:    {"Entry Price", "Avg Entry Price"},
	models.DestClosePrice:    {"Exit Price", "Avg Exit Price"},
	models.DestEntryDate:     {"Entry Date", "Open Date"},
	models.DestCloseDate:     {"Exit Date", "Close Date"},
	models.DestPnL:           {"Net P&L", "Net PnL", "P&L"},
	models.DestCommission:    {"Commission", "Fees"},
}

// Process converts mapped journal rows one trade per row.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	var res models.ProcessResult
	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		trade, err := tradeFromRow(fields)
		if err != nil {
			logger.L.Warn("Tradezella: skipping row", "row", i+1, "error", err)
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
	entryDate, err := f.Date(models.DestEntryDate)
	if err != nil {
		return nil, err
	}
	quantity, err := f.Quantity(models.DestQuantity)
	if err != nil {
		return nil, err
	}

	side, ok := rowparse.ParseSide(f.Get(models.DestSide))
	if !ok {
		side = models.SideLong
	}

	trade := &models.Trade{
		AccountNumber: f.Get(models.DestAccountNumber),
		Instrument:    symbols.StripMonthCode(strings.ToUpper(instrument)),
		Side:          side,
		Quantity:      math.Abs(quantity),
		EntryPrice:    rowparse.PriceString(f.Get(models.DestEntryPrice)),
		ClosePrice:    rowparse.PriceString(f.Get(models.DestClosePrice)),
		PnL:           f.FloatOr(models.DestPnL, 0),
		Commission:    math.Abs(f.FloatOr(models.DestCommission, 0)),
	}

	// Exit date is optional in the journal; an open trade stays open.
	if closeDate, err := f.Date(models.DestCloseDate); err == nil {
		rowparse.ApplyTimes(trade, entryDate, closeDate)
	} else {
		trade.EntryDate = utils.FormatDate(entryDate)
	}
	return trade, nil
}

// Package ftmo converts FTMO account statement exports (MetaTrader-style
// CSV, one closed trade per row) into canonical trades.
package ftmo

import (
	"math"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/utils"
)

// DefaultMapping matches FTMO's statement header set. The export carries
// two "Price" columns (open then close), so only the first is claimable by
// alias; Process resolves the second positionally.
var DefaultMapping = map[models.Destination][]string{
	models.DestEntryID:    {"Ticket"},
	models.DestEntryDate:  {"Open"},
	models.DestSide:       {"Type"},
	models.DestQuantity:   {"Volume", "Lots"},
	models.DestInstrument: {"Symbol"},
	models.DestEntryPrice: {"Price"},
	models.DestCloseDate:  {"Close"},
	models.DestPnL:        {"Profit"},
	models.DestCommission: {"Commission", "Commissions"},
}

// Process converts mapped rows. FTMO nets overnight financing (swap)
// against commission: net cost = |commission| - swap, so a negative swap
// increases the cost.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	closePriceIdx := m.IndexFor(models.DestClosePrice)
	if closePriceIdx == -1 {
		closePriceIdx = secondPriceColumn(table.Headers, m.IndexFor(models.DestEntryPrice))
	}
	swapIdx := table.HeaderIndex("Swap")

	var res models.ProcessResult
	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		trade, err := tradeFromRow(fields)
		if err != nil {
			logger.L.Warn("FTMO: skipping row", "row", i+1, "error", err)
			res.RowsSkipped++
			continue
		}

		if trade.ClosePrice == "" && closePriceIdx >= 0 && closePriceIdx < len(row) {
			trade.ClosePrice = rowparse.PriceString(row[closePriceIdx])
		}

		if swapIdx >= 0 && swapIdx < len(row) {
			if swap, err := utils.ParseFloat(row[swapIdx]); err == nil {
				trade.Commission = trade.Commission - swap
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

// secondPriceColumn finds the close-price column: the next header equal to
// "Price" after the one mapped as the entry price.
func secondPriceColumn(headers []string, entryPriceIdx int) int {
	for i, h := range headers {
		if i > entryPriceIdx && strings.EqualFold(strings.TrimSpace(h), "Price") {
			return i
		}
	}
	return -1
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
		Instrument:    strings.ToUpper(instrument),
		Side:          side,
		Quantity:      math.Abs(quantity),
		EntryPrice:    rowparse.PriceString(f.Get(models.DestEntryPrice)),
		ClosePrice:    rowparse.PriceString(f.Get(models.DestClosePrice)),
		PnL:           f.FloatOr(models.DestPnL, 0),
		Commission:    math.Abs(f.FloatOr(models.DestCommission, 0)),
		EntryID:       f.Get(models.DestEntryID),
	}
	rowparse.ApplyTimes(trade, entryDate, closeDate)
	return trade, nil
}

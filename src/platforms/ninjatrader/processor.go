// Package ninjatrader converts NinjaTrader trade performance exports into
// canonical trades. The export localizes its headers; English and French
// sets are auto-detected by French-only tokens.
package ninjatrader

import (
	"math"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/symbols"
)

// DefaultMapping covers the English header set.
var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"Instrument"},
	models.DestSide:          {"Market pos.", "Market position"},
	models.DestQuantity:      {"Qty", "Quantity"},
	models.DestEntryPrice:    {"Entry price"},
	models.DestClosePrice:    {"Exit price"},
	models.DestEntryDate:     {"Entry time"},
	models.DestCloseDate:     {"Exit time"},
	models.DestPnL:           {"Profit"},
	models.DestCommission:    {"Commission"},
	models.DestEntryID:       {"Entry name"},
	models.DestCloseID:       {"Exit name"},
}

// frenchMapping covers the French export. Resolved when any French-only
// token appears in the headers.
var frenchMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Compte"},
	models.DestInstrument:    {"Instrument"},
	models.DestSide:          {"Pos. marché", "Position marché"},
	models.DestQuantity:      {"Qté"},
	models.DestEntryPrice:    {"Prix d'entrée"},
	models.DestClosePrice:    {"Prix de sortie"},
	models.DestEntryDate:     {"Heure d'entrée"},
	models.DestCloseDate:     {"Heure de sortie"},
	models.DestPnL:           {"Profit"},
	models.DestCommission:    {"Commission"},
	models.DestEntryID:       {"Nom d'entrée"},
	models.DestCloseID:       {"Nom de sortie"},
}

var frenchTokens = []string{"Compte", "Qté", "Prix d'entrée", "Heure d'entrée", "Pos. marché"}

// IsFrenchExport reports whether the header row carries French-only tokens.
func IsFrenchExport(headers []string) bool {
	for _, h := range headers {
		for _, token := range frenchTokens {
			if strings.EqualFold(strings.TrimSpace(h), token) {
				return true
			}
		}
	}
	return false
}

// FrenchMapping exposes the localized alias set for the mapper.
func FrenchMapping() map[models.Destination][]string { return frenchMapping }

// Process converts mapped rows one trade per row. When the mapping missed
// columns because the export is French, the localized alias set is applied
// on top before processing.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	if IsFrenchExport(table.Headers) {
		applyAliases(table, m, frenchMapping)
	}

	var res models.ProcessResult
	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		trade, err := tradeFromRow(fields)
		if err != nil {
			logger.L.Warn("NinjaTrader: skipping row", "row", i+1, "error", err)
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

// applyAliases claims still-unmapped destinations from an alias set.
func applyAliases(table models.RawTable, m *models.ColumnMapping, aliases map[models.Destination][]string) {
	for dest, names := range aliases {
		if _, claimed := m.ColumnFor(dest); claimed {
			continue
		}
		for _, name := range names {
			if idx := table.HeaderIndex(name); idx >= 0 {
				m.Set(models.ColumnID{Header: table.Headers[idx], Index: idx}, dest)
				break
			}
		}
	}
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
		Instrument:    symbols.StripMonthCode(strings.ToUpper(instrument)),
		Side:          side,
		Quantity:      math.Abs(quantity),
		EntryPrice:    rowparse.PriceString(f.Get(models.DestEntryPrice)),
		ClosePrice:    rowparse.PriceString(f.Get(models.DestClosePrice)),
		PnL:           f.FloatOr(models.DestPnL, 0),
		Commission:    math.Abs(f.FloatOr(models.DestCommission, 0)),
		EntryID:       f.Get(models.DestEntryID),
		CloseID:       f.Get(models.DestCloseID),
	}
	rowparse.ApplyTimes(trade, entryDate, closeDate)
	return trade, nil
}

// Package rithmic converts Rithmic order exports into canonical trades.
// Each row is an order; only filled quantity enters the position engine.
// Symbols arrive as CQG codes with contract-month suffixes.
package rithmic

import (
	"math"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/processors"
)

var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"Symbol"},
	models.DestSide:          {"Buy/Sell", "Side"},
	models.DestQuantity:      {"Qty Filled", "Filled Qty"},
	models.DestEntryPrice:    {"Avg Fill Price", "Fill Price"},
	models.DestEntryDate:     {"Update Time", "Time"},
	models.DestCommission:    {"Commission Fill Rate", "Commission"},
	models.DestEntryID:       {"Order Number"},
}

// Process feeds filled orders through the position engine. Unfilled and
// cancelled orders are skipped by the status filter when the export carries
// a Status column, and by the zero-quantity check regardless.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	statusIdx := table.HeaderIndex("Status")

	engine := processors.NewPositionEngine()
	skipped := 0
	var fills []processors.Fill

	for i, row := range table.Rows {
		if statusIdx >= 0 && statusIdx < len(row) {
			status := strings.ToLower(strings.TrimSpace(row[statusIdx]))
			if status != "" && status != "filled" && status != "complete" {
				skipped++
				continue
			}
		}

		fields := rowparse.Fields(m.Project(row))
		fill, err := fillFromRow(fields)
		if err != nil {
			logger.L.Warn("Rithmic: skipping order", "row", i+1, "error", err)
			skipped++
			continue
		}
		fills = append(fills, *fill)
	}

	engine.ProcessFills(fills)
	res := engine.Result()
	res.RowsSkipped = skipped
	return res, nil
}

func fillFromRow(f rowparse.Fields) (*processors.Fill, error) {
	instrument, err := f.Require(models.DestInstrument)
	if err != nil {
		return nil, err
	}
	timestamp, err := f.Date(models.DestEntryDate)
	if err != nil {
		return nil, err
	}
	quantity, err := f.Quantity(models.DestQuantity)
	if err != nil {
		return nil, err
	}
	price, err := f.Float(models.DestEntryPrice)
	if err != nil {
		return nil, err
	}
	side, ok := rowparse.ParseSide(f.Get(models.DestSide))
	if !ok {
		return nil, errNoSide
	}

	// Commission arrives as a per-contract fill rate.
	commission := math.Abs(f.FloatOr(models.DestCommission, 0)) * math.Abs(quantity)

	return &processors.Fill{
		AccountNumber: f.Get(models.DestAccountNumber),
		Instrument:    instrument,
		Order: models.Order{
			Quantity:   math.Abs(quantity),
			Price:      price,
			Commission: commission,
			Timestamp:  timestamp,
			OrderID:    f.Get(models.DestEntryID),
			Side:       side,
		},
	}, nil
}

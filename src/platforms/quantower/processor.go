// Package quantower converts Quantower trade exports into canonical
// trades. Rows are individual fills, not closed trades: the position
// engine matches them into round trips, handling partial fills and
// reversals.
package quantower

import (
	"math"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/rowparse"
	"github.com/username/tradevault/backend/src/processors"
)

var DefaultMapping = map[models.Destination][]string{
	models.DestAccountNumber: {"Account"},
	models.DestInstrument:    {"Symbol", "Instrument"},
	models.DestSide:          {"Side", "Operation"},
	models.DestQuantity:      {"Quantity", "Qty"},
	models.DestEntryPrice:    {"Price", "Fill Price"},
	models.DestEntryDate:     {"Date/Time", "DateTime", "Time"},
	models.DestCommission:    {"Fee", "Total fee"},
	models.DestEntryID:       {"Trade ID", "Order ID"},
}

// Process feeds every fill through a fresh position engine. The engine
// sorts by timestamp; file order is not trusted.
func Process(table models.RawTable, m *models.ColumnMapping) (models.ProcessResult, error) {
	engine := processors.NewPositionEngine()
	skipped := 0
	var fills []processors.Fill

	for i, row := range table.Rows {
		fields := rowparse.Fields(m.Project(row))

		fill, err := fillFromRow(fields)
		if err != nil {
			logger.L.Warn("Quantower: skipping fill", "row", i+1, "error", err)
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
		// No explicit side column: fall back to the quantity sign.
		if quantity < 0 {
			side = models.SideShort
		} else {
			side = models.SideLong
		}
	}

	return &processors.Fill{
		AccountNumber: f.Get(models.DestAccountNumber),
		Instrument:    instrument,
		Order: models.Order{
			Quantity:   math.Abs(quantity),
			Price:      price,
			Commission: math.Abs(f.FloatOr(models.DestCommission, 0)),
			Timestamp:  timestamp,
			OrderID:    f.Get(models.DestEntryID),
			Side:       side,
		},
	}, nil
}

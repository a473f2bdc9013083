// Package ibkr converts Interactive Brokers activity statements into
// canonical trades. Statements arrive as PDFs: an external OCR service
// extracts the text and an external order-extraction service turns that
// text into structured fills. This package owns only the matching step.
package ibkr

import (
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/processors"
)

// ProcessOrders matches extracted statement fills into closed trades via
// FIFO. Fills missing a timestamp or quantity are skipped and counted;
// OCR output is never trusted blindly.
func ProcessOrders(orders []models.ExtractedOrder) (models.ProcessResult, error) {
	engine := processors.NewPositionEngine()
	skipped := 0
	var fills []processors.Fill

	for i, o := range orders {
		if o.Symbol == "" || o.Quantity == 0 || o.Timestamp.IsZero() {
			logger.L.Warn("IBKR: skipping extracted order", "index", i,
				"symbol", o.Symbol, "quantity", o.Quantity)
			skipped++
			continue
		}
		fills = append(fills, processors.Fill{
			AccountNumber: o.AccountNumber,
			Instrument:    o.Symbol,
			Order:         o.Order,
		})
	}

	engine.ProcessFills(fills)
	res := engine.Result()
	res.RowsSkipped = skipped
	return res, nil
}

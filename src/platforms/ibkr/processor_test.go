package ibkr

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func extractedOrder(minute int, side models.Side, qty, price float64) models.ExtractedOrder {
	return models.ExtractedOrder{
		AccountNumber: "U1234567",
		Symbol:        "ESZ4",
		Order: models.Order{
			Quantity:  qty,
			Price:     price,
			Timestamp: time.Date(2025, 3, 10, 14, minute, 0, 0, time.UTC),
			Side:      side,
		},
	}
}

func TestProcessOrders(t *testing.T) {
	res, err := ProcessOrders([]models.ExtractedOrder{
		extractedOrder(0, models.SideLong, 1, 5000.00),
		extractedOrder(5, models.SideShort, 1, 5002.00),
	})
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	trade := res.Trades[0]
	assert.Equal(t, "U1234567", trade.AccountNumber)
	assert.Equal(t, "ES", trade.Instrument)
	assert.InDelta(t, 100.0, trade.PnL, 1e-9)
}

func TestProcessOrders_SkipsUntrustworthyFills(t *testing.T) {
	noSymbol := extractedOrder(0, models.SideLong, 1, 5000)
	noSymbol.Symbol = ""
	zeroQty := extractedOrder(1, models.SideLong, 0, 5000)
	zeroTime := extractedOrder(2, models.SideLong, 1, 5000)
	zeroTime.Timestamp = time.Time{}

	res, err := ProcessOrders([]models.ExtractedOrder{noSymbol, zeroQty, zeroTime})
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Empty(t, res.IncompletePositions)
	assert.Equal(t, 3, res.RowsSkipped)
}

func TestProcessOrders_Empty(t *testing.T) {
	res, err := ProcessOrders(nil)
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 0, res.RowsSkipped)
}

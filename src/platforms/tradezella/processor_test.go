package tradezella

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/mapping"
	"github.com/username/tradevault/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func journalTable(rows ...[]string) models.RawTable {
	table := models.RawTable{
		Headers: []string{"Account", "Symbol", "Side", "Qty", "Entry Price",
			"Exit Price", "Entry Date", "Exit Date", "Net P&L", "Commission"},
		Rows: rows,
	}
	table.Normalize()
	return table
}

func mappedColumns(t *testing.T, table models.RawTable) *models.ColumnMapping {
	t.Helper()
	m := models.NewColumnMapping()
	mapping.ApplyDefaults(table, m, DefaultMapping)
	return m
}

func TestProcess(t *testing.T) {
	table := journalTable(
		[]string{"ACC1", "NQZ4", "Short", "1", "18010.25", "18000.25",
			"2025-03-10 14:00:00", "2025-03-10 14:05:00", "200", "2.10"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	trade := res.Trades[0]
	assert.Equal(t, "NQ", trade.Instrument)
	assert.Equal(t, models.SideShort, trade.Side)
	assert.Equal(t, 1.0, trade.Quantity)
	assert.Equal(t, "18010.25", trade.EntryPrice)
	assert.Equal(t, "18000.25", trade.ClosePrice)
	assert.Equal(t, 200.0, trade.PnL)
	assert.Equal(t, "2025-03-10T14:00:00Z", trade.EntryDate)
	assert.Equal(t, "2025-03-10T14:05:00Z", trade.CloseDate)
}

func TestProcess_ExcelSerialDates(t *testing.T) {
	// Journal cells sometimes come through as raw serial numbers.
	table := journalTable(
		[]string{"ACC1", "ES", "Long", "2", "5000", "5001", "45000", "45000.5", "100", "0"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "2023-03-15T00:00:00Z", res.Trades[0].EntryDate)
	assert.Equal(t, "2023-03-15T12:00:00Z", res.Trades[0].CloseDate)
}

func TestProcess_OpenTradeKeepsNoCloseDate(t *testing.T) {
	table := journalTable(
		[]string{"ACC1", "ES", "Long", "1", "5000", "", "2025-03-10 14:00:00", "", "0", "0"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	trade := res.Trades[0]
	assert.Equal(t, "2025-03-10T14:00:00Z", trade.EntryDate)
	assert.Equal(t, "", trade.CloseDate)
	assert.Equal(t, "", trade.ClosePrice)
	assert.Equal(t, int64(0), trade.TimeInPosition)
}

func TestProcess_SkipsRowsMissingRequiredFields(t *testing.T) {
	table := journalTable(
		[]string{"ACC1", "", "Long", "1", "5000", "", "2025-03-10 14:00:00", "", "0", "0"},
		[]string{"ACC1", "ES", "Long", "", "5000", "", "2025-03-10 14:00:00", "", "0", "0"},
		[]string{"ACC1", "ES", "Long", "1", "5000", "", "", "", "0", "0"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 3, res.RowsSkipped)
}

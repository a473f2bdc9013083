package ftmo

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

// statementTable mirrors the FTMO export layout: two "Price" columns, open
// leg then close leg.
func statementTable(rows ...[]string) models.RawTable {
	table := models.RawTable{
		Headers: []string{"Ticket", "Open", "Type", "Volume", "Symbol", "Price",
			"S/L", "T/P", "Close", "Price", "Commission", "Swap", "Profit"},
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

func TestProcess_SwapNetting(t *testing.T) {
	table := statementTable(
		[]string{"10001", "05.01.2025 09:30:00", "buy", "1.5", "eurusd", "1.0450",
			"", "", "05.01.2025 18:45:00", "1.0480", "-3.50", "-0.20", "45.00"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)

	trade := res.Trades[0]
	assert.Equal(t, "10001", trade.EntryID)
	assert.Equal(t, "EURUSD", trade.Instrument)
	assert.Equal(t, models.SideLong, trade.Side)
	assert.Equal(t, 1.5, trade.Quantity)
	assert.Equal(t, "1.045", trade.EntryPrice)
	assert.Equal(t, "1.048", trade.ClosePrice)
	assert.Equal(t, 45.0, trade.PnL)
	// Net cost is |commission| minus swap: 3.50 - (-0.20) = 3.70.
	assert.InDelta(t, 3.70, trade.Commission, 1e-9)
	assert.Equal(t, "2025-01-05T09:30:00Z", trade.EntryDate)
	assert.Equal(t, "2025-01-05T18:45:00Z", trade.CloseDate)
}

func TestProcess_PositiveSwapReducesCost(t *testing.T) {
	table := statementTable(
		[]string{"10002", "05.01.2025 09:30:00", "sell", "1", "gbpusd", "1.2500",
			"", "", "05.01.2025 10:00:00", "1.2480", "-2.00", "0.50", "20.00"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, models.SideShort, res.Trades[0].Side)
	assert.InDelta(t, 1.50, res.Trades[0].Commission, 1e-9)
}

func TestProcess_SecondPriceColumnIsClose(t *testing.T) {
	// The alias mapping can only claim the first "Price" header; the close
	// price must still come from the second one, positionally.
	table := statementTable(
		[]string{"10003", "05.01.2025 09:30:00", "buy", "2", "ES", "5000.25",
			"", "", "05.01.2025 09:45:00", "5001.75", "0", "0", "150"},
	)
	m := mappedColumns(t, table)
	assert.Equal(t, 5, m.IndexFor(models.DestEntryPrice))
	assert.Equal(t, -1, m.IndexFor(models.DestClosePrice))

	res, err := Process(table, m)
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, "5000.25", res.Trades[0].EntryPrice)
	assert.Equal(t, "5001.75", res.Trades[0].ClosePrice)
}

func TestProcess_BalanceRowsAreNotTrades(t *testing.T) {
	// Statements interleave deposits and balance adjustments with trade
	// rows. They carry no volume; the amount in Profit is not a trade PnL.
	table := statementTable(
		[]string{"10010", "05.01.2025 08:00:00", "balance", "0.00", "EURUSD", "0",
			"", "", "05.01.2025 08:00:00", "0", "0", "0", "5000.00"},
		[]string{"10011", "05.01.2025 09:30:00", "buy", "1", "eurusd", "1.0450",
			"", "", "05.01.2025 10:00:00", "1.0460", "-1.00", "0", "10.00"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	require.Len(t, res.Trades, 1)
	assert.Equal(t, 1, res.RowsSkipped)
	assert.Equal(t, "10011", res.Trades[0].EntryID)
	assert.Equal(t, 10.0, res.Trades[0].PnL)
}

func TestProcess_SkipsRowsMissingRequiredFields(t *testing.T) {
	table := statementTable(
		[]string{"10004", "not a date", "buy", "1", "EURUSD", "1.0450",
			"", "", "05.01.2025 10:00:00", "1.0460", "0", "0", "10"},
		[]string{"10005", "05.01.2025 09:30:00", "buy", "", "EURUSD", "1.0450",
			"", "", "05.01.2025 10:00:00", "1.0460", "0", "0", "10"},
	)

	res, err := Process(table, mappedColumns(t, table))
	require.NoError(t, err)
	assert.Empty(t, res.Trades)
	assert.Equal(t, 2, res.RowsSkipped)
}

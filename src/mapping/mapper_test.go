package mapping

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func TestApplyDefaults_ExactBeatsSubstring(t *testing.T) {
	table := models.RawTable{Headers: []string{"Close Price", "Price"}}
	m := models.NewColumnMapping()

	ApplyDefaults(table, m, map[models.Destination][]string{
		models.DestEntryPrice: {"Price"},
	})

	// "Close Price" contains "Price" but the exact header wins.
	assert.Equal(t, 1, m.IndexFor(models.DestEntryPrice))
}

func TestApplyDefaults_SubstringFallback(t *testing.T) {
	table := models.RawTable{Headers: []string{"Account Number", "Symbol"}}
	m := models.NewColumnMapping()

	ApplyDefaults(table, m, map[models.Destination][]string{
		models.DestAccountNumber: {"Account"},
	})

	assert.Equal(t, 0, m.IndexFor(models.DestAccountNumber))
}

func TestApplyDefaults_AliasOrderWins(t *testing.T) {
	table := models.RawTable{Headers: []string{"Time of opening", "Open time"}}
	m := models.NewColumnMapping()

	ApplyDefaults(table, m, map[models.Destination][]string{
		models.DestEntryDate: {"Open time", "Time of opening"},
	})

	assert.Equal(t, 1, m.IndexFor(models.DestEntryDate))
}

func TestApplyDefaults_KeepsExistingClaim(t *testing.T) {
	table := models.RawTable{Headers: []string{"Qty", "Quantity"}}
	m := models.NewColumnMapping()
	manual := models.ColumnID{Header: "Quantity", Index: 1}
	m.Set(manual, models.DestQuantity)

	ApplyDefaults(table, m, map[models.Destination][]string{
		models.DestQuantity: {"Qty"},
	})

	col, ok := m.ColumnFor(models.DestQuantity)
	require.True(t, ok)
	assert.Equal(t, manual, col)
}

func TestApplySuggestions(t *testing.T) {
	table := models.RawTable{Headers: []string{"Symbol", "Qty", "Price"}}
	m := models.NewColumnMapping()

	ApplySuggestions(table, m, map[string]string{
		"instrument": "Symbol",
		"quantity":   "qty", // case-insensitive
	})

	assert.Equal(t, 0, m.IndexFor(models.DestInstrument))
	assert.Equal(t, 1, m.IndexFor(models.DestQuantity))
}

func TestApplySuggestions_PositionSuffix(t *testing.T) {
	// FTMO-style export: two "Price" columns, entry then close.
	table := models.RawTable{Headers: []string{"Open", "Price", "Close", "Price"}}
	m := models.NewColumnMapping()

	ApplySuggestions(table, m, map[string]string{
		"entryPrice": "Price_2",
		"closePrice": "Price_4",
	})

	assert.Equal(t, 1, m.IndexFor(models.DestEntryPrice))
	assert.Equal(t, 3, m.IndexFor(models.DestClosePrice))
}

func TestApplySuggestions_SuffixMismatchFallsBack(t *testing.T) {
	table := models.RawTable{Headers: []string{"Symbol", "Price"}}
	m := models.NewColumnMapping()

	// Position 1 holds "Symbol", not "Price": first occurrence of the base
	// name is used instead.
	ApplySuggestions(table, m, map[string]string{"entryPrice": "Price_1"})

	assert.Equal(t, 1, m.IndexFor(models.DestEntryPrice))
}

func TestApplySuggestions_UnderscoreHeaderIsNotASuffix(t *testing.T) {
	table := models.RawTable{Headers: []string{"account_2", "Qty"}}
	m := models.NewColumnMapping()

	// "account_2" names a real header; the suffix path misses (position 2 is
	// "Qty") and full-value matching picks it up.
	ApplySuggestions(table, m, map[string]string{"accountNumber": "account_2"})

	assert.Equal(t, 0, m.IndexFor(models.DestAccountNumber))
}

func TestApplySuggestions_SkipsBadInput(t *testing.T) {
	table := models.RawTable{Headers: []string{"Symbol"}}
	m := models.NewColumnMapping()

	ApplySuggestions(table, m, map[string]string{
		"notAField":  "Symbol",  // unknown destination
		"instrument": "Missing", // header not present
	})

	assert.Equal(t, 0, m.Len())
}

func TestApplySuggestions_OverridesDefaults(t *testing.T) {
	table := models.RawTable{Headers: []string{"Profit", "Net P&L"}}
	m := models.NewColumnMapping()
	m.Set(models.ColumnID{Header: "Profit", Index: 0}, models.DestPnL)

	ApplySuggestions(table, m, map[string]string{"pnl": "Net P&L"})

	// Single-destination invariant holds after the override.
	assert.Equal(t, 1, m.IndexFor(models.DestPnL))
	assert.Equal(t, 1, m.Len())
}

package processors

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/tradevault/backend/src/models"
)

func sampleTrade() models.Trade {
	return models.Trade{
		AccountNumber: "ACC1",
		Instrument:    "ES",
		Side:          models.SideLong,
		Quantity:      2,
		EntryPrice:    "5000.25",
		ClosePrice:    "5001.00",
		EntryDate:     "2025-03-10T14:00:00Z",
		CloseDate:     "2025-03-10T14:05:00Z",
	}
}

func TestHashTrade_Deterministic(t *testing.T) {
	a := sampleTrade()
	b := sampleTrade()
	assert.Equal(t, HashTrade(&a), HashTrade(&b))
	assert.Len(t, HashTrade(&a), 64)
}

func TestHashTrade_SensitiveToIdentityFields(t *testing.T) {
	base := sampleTrade()
	baseHash := HashTrade(&base)

	mutations := map[string]func(*models.Trade){
		"account":    func(tr *models.Trade) { tr.AccountNumber = "ACC2" },
		"instrument": func(tr *models.Trade) { tr.Instrument = "NQ" },
		"entryDate":  func(tr *models.Trade) { tr.EntryDate = "2025-03-10T14:00:01Z" },
		"closeDate":  func(tr *models.Trade) { tr.CloseDate = "2025-03-10T14:05:01Z" },
		"quantity":   func(tr *models.Trade) { tr.Quantity = 3 },
		"entryPrice": func(tr *models.Trade) { tr.EntryPrice = "5000.50" },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			tr := sampleTrade()
			mutate(&tr)
			assert.NotEqual(t, baseHash, HashTrade(&tr))
		})
	}
}

func TestHashTrade_IgnoresNonIdentityFields(t *testing.T) {
	a := sampleTrade()
	b := sampleTrade()
	b.Commission = 4.50
	b.PnL = 100
	b.EntryID = "order-1"
	assert.Equal(t, HashTrade(&a), HashTrade(&b))
}

func TestStampIDs(t *testing.T) {
	// The same logical trade imported twice must collide on ID even when it
	// arrives in different batches.
	first := []models.Trade{sampleTrade()}
	second := []models.Trade{sampleTrade()}
	StampIDs(first)
	StampIDs(second)

	require.NotEmpty(t, first[0].ID)
	assert.Equal(t, first[0].ID, second[0].ID)
}

package processors

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/username/tradevault/backend/src/models"
)

// HashTrade derives the deterministic identity hash for a trade. The input
// tuple is fixed: any change to a trade-defining field changes the hash,
// and the same logical trade imported twice collides even across files,
// which is what lets the persistence layer skip duplicates.
func HashTrade(t *models.Trade) string {
	input := fmt.Sprintf("%s|%s|%s|%s|%v|%s",
		t.AccountNumber, t.Instrument, t.EntryDate, t.CloseDate, t.Quantity, t.EntryPrice)
	hash := sha256.Sum256([]byte(input))
	return hex.EncodeToString(hash[:])
}

// StampIDs assigns the identity hash to every trade in the batch.
func StampIDs(trades []models.Trade) {
	for i := range trades {
		trades[i].ID = HashTrade(&trades[i])
	}
}

package processors

import (
	"sort"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

// CommissionResolver backfills missing per-contract commission from the
// user's existing trade history. History is walked in order and the last
// observed rate per instrument wins; no averaging.
type CommissionResolver struct {
	rates map[string]float64
}

// NewCommissionResolver derives per-instrument rates from historical
// trades. Rate = commission / quantity of the most recent trade carrying a
// commission.
func NewCommissionResolver(history []models.Trade) *CommissionResolver {
	rates := make(map[string]float64)
	for _, t := range history {
		if t.Commission != 0 && t.Quantity > 0 {
			rates[t.Instrument] = t.Commission / t.Quantity
		}
	}
	return &CommissionResolver{rates: rates}
}

// Rate returns the historical per-contract rate for an instrument.
func (r *CommissionResolver) Rate(instrument string) (float64, bool) {
	rate, ok := r.rates[instrument]
	return rate, ok
}

// Resolve fills commission on trades missing it. Instruments with no
// historical rate are returned so the caller can collect explicit rates
// interactively; there is no automatic fallback to zero.
func (r *CommissionResolver) Resolve(trades []models.Trade) []string {
	missing := make(map[string]bool)
	for i := range trades {
		t := &trades[i]
		if t.Commission != 0 {
			continue
		}
		if rate, ok := r.rates[t.Instrument]; ok {
			t.Commission = rate * t.Quantity
			continue
		}
		missing[t.Instrument] = true
	}

	out := make([]string, 0, len(missing))
	for instrument := range missing {
		out = append(out, instrument)
	}
	sort.Strings(out)
	if len(out) > 0 {
		logger.L.Info("Instruments missing commission rate", "instruments", out)
	}
	return out
}

// ApplyRates sets explicit per-instrument rates supplied by the user and
// finalizes any trade still missing commission. Returns instruments that
// remain unresolved.
func (r *CommissionResolver) ApplyRates(trades []models.Trade, rates map[string]float64) []string {
	for instrument, rate := range rates {
		r.rates[instrument] = rate
	}
	return r.Resolve(trades)
}

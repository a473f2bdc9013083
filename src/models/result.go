package models

// ProcessResult is what a platform processor hands back for one file:
// closed trades, positions that never closed, and row-level bookkeeping.
type ProcessResult struct {
	Trades []Trade `json:"trades"`
	// IncompletePositions are open positions left at end of file. They are
	// surfaced so the caller can warn the user; they are never silently
	// dropped and never appear in Trades.
	IncompletePositions []OpenPosition `json:"incomplete_positions,omitempty"`
	// UnknownSymbols lists root symbols priced with the default contract
	// spec. Totals for those trades need manual correction.
	UnknownSymbols []string `json:"unknown_symbols,omitempty"`
	RowsSkipped    int      `json:"rows_skipped"`
}

// ImportOutcome mirrors the persistence collaborator's report codes.
type ImportOutcome string

const (
	OutcomeOK              ImportOutcome = "OK"
	OutcomeDuplicateTrades ImportOutcome = "DUPLICATE_TRADES"
	OutcomeNoTradesAdded   ImportOutcome = "NO_TRADES_ADDED"
)

// ImportResult is returned to the caller after a full import run.
type ImportResult struct {
	RunID               string         `json:"run_id"`
	Platform            string         `json:"platform"`
	Outcome             ImportOutcome  `json:"outcome"`
	TradesAdded         int            `json:"trades_added"`
	DuplicatesSkipped   int            `json:"duplicates_skipped"`
	RowsSkipped         int            `json:"rows_skipped"`
	IncompletePositions []OpenPosition `json:"incomplete_positions,omitempty"`
	// MissingCommission lists instruments with no historical commission
	// rate. The caller must collect explicit per-instrument rates and call
	// the correction endpoint before totals are final.
	MissingCommission []string `json:"missing_commission,omitempty"`
	UnknownSymbols    []string `json:"unknown_symbols,omitempty"`
}

package services

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/username/tradevault/backend/src/database"
	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/mapping"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/parsers"
	"github.com/username/tradevault/backend/src/processors"
)

const (
	ckLatestImportResult = "agg_latest_import_result_user_%d"
	ckUserTrades         = "res_user_trades_%d"
)

type importServiceImpl struct {
	suggestionService mapping.SuggestionService
	textExtractor     parsers.TextExtractor
	orderExtractor    parsers.OrderExtractionService
	resultCache       *cache.Cache
}

// NewImportService wires the pipeline. The suggestion, OCR, and
// order-extraction collaborators may be nil: every external service is
// advisory and its absence degrades, never blocks.
func NewImportService(
	suggestionService mapping.SuggestionService,
	textExtractor parsers.TextExtractor,
	orderExtractor parsers.OrderExtractionService,
	resultCache *cache.Cache,
) ImportService {
	return &importServiceImpl{
		suggestionService: suggestionService,
		textExtractor:     textExtractor,
		orderExtractor:    orderExtractor,
		resultCache:       resultCache,
	}
}

func (s *importServiceImpl) ProcessImport(ctx context.Context, fileReader io.Reader, userID int64, platform parsers.Platform) (*models.ImportResult, error) {
	start := time.Now()
	logger.L.Info("ProcessImport START", "userID", userID, "platform", platform)

	strategy, err := parsers.GetStrategy(platform)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	if strategy.PDFBased {
		return s.ProcessPDFImport(ctx, fileReader, userID)
	}

	table, err := strategy.Extractor.Extract(fileReader)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}

	columnMapping := models.NewColumnMapping()
	mapping.ApplyDefaults(table, columnMapping, strategy.DefaultMapping)
	// Advisory only: a slow or failed suggestion service leaves the
	// default mapping untouched.
	mapping.Suggest(ctx, s.suggestionService, table, columnMapping)

	processed, err := strategy.Process(table, columnMapping)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	return s.finalize(userID, string(platform), processed, start)
}

func (s *importServiceImpl) ProcessPDFImport(ctx context.Context, pdf io.Reader, userID int64) (*models.ImportResult, error) {
	start := time.Now()
	if s.textExtractor == nil || s.orderExtractor == nil {
		return nil, fmt.Errorf("%w: PDF import requires the OCR and order-extraction services", ErrParsingFailed)
	}

	text, err := s.textExtractor.ExtractText(ctx, pdf)
	if err != nil {
		return nil, fmt.Errorf("%w: text extraction: %v", ErrParsingFailed, err)
	}

	orders, err := s.orderExtractor.ExtractOrders(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("%w: order extraction: %v", ErrParsingFailed, err)
	}

	strategy, err := parsers.GetStrategy(parsers.PlatformIBKR)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFailed, err)
	}
	processed, err := strategy.ProcessOrders(orders)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProcessingFailed, err)
	}

	return s.finalize(userID, string(parsers.PlatformIBKR), processed, start)
}

// finalize runs the platform-independent tail of the pipeline: commission
// backfill from the user's history, identity hashing, and the bulk insert
// that skips duplicates.
func (s *importServiceImpl) finalize(userID int64, platform string, processed models.ProcessResult, start time.Time) (*models.ImportResult, error) {
	history, err := s.GetTrades(userID)
	if err != nil {
		return nil, err
	}
	resolver := processors.NewCommissionResolver(history)
	if stored, err := fetchStoredRates(userID); err == nil {
		resolver.ApplyRates(nil, stored)
	}
	missing := resolver.Resolve(processed.Trades)

	processors.StampIDs(processed.Trades)

	runID := uuid.NewString()
	added, duplicates, err := insertTrades(userID, platform, runID, processed.Trades)
	if err != nil {
		return nil, err
	}

	result := &models.ImportResult{
		RunID:               runID,
		Platform:            platform,
		Outcome:             models.OutcomeOK,
		TradesAdded:         added,
		DuplicatesSkipped:   duplicates,
		RowsSkipped:         processed.RowsSkipped,
		IncompletePositions: processed.IncompletePositions,
		MissingCommission:   missing,
		UnknownSymbols:      processed.UnknownSymbols,
	}
	switch {
	case added == 0 && duplicates > 0:
		result.Outcome = models.OutcomeDuplicateTrades
	case added == 0:
		result.Outcome = models.OutcomeNoTradesAdded
	}

	s.InvalidateUserCache(userID)
	s.resultCache.Set(fmt.Sprintf(ckLatestImportResult, userID), result, cache.DefaultExpiration)

	logger.L.Info("ProcessImport END", "userID", userID, "platform", platform,
		"added", added, "duplicates", duplicates, "skippedRows", processed.RowsSkipped,
		"incomplete", len(processed.IncompletePositions), "duration", time.Since(start))
	return result, nil
}

func insertTrades(userID int64, platform, runID string, trades []models.Trade) (added, duplicates int, err error) {
	if len(trades) == 0 {
		return 0, 0, nil
	}

	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	stmt, err := dbTx.Prepare(`INSERT INTO trades (user_id, hash_id, account_number, instrument, side, quantity, entry_price, close_price, entry_date, close_date, pnl, commission, time_in_position, entry_id, close_id, comment, tags, platform, import_run_id) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, 0, fmt.Errorf("error preparing insert statement: %w", err)
	}
	defer stmt.Close()

	for _, t := range trades {
		_, execErr := stmt.Exec(userID, t.ID, t.AccountNumber, t.Instrument, string(t.Side),
			t.Quantity, t.EntryPrice, t.ClosePrice, t.EntryDate, t.CloseDate,
			t.PnL, t.Commission, t.TimeInPosition, t.EntryID, t.CloseID,
			t.Comment, strings.Join(t.Tags, ","), platform, runID)
		if execErr != nil {
			if strings.Contains(strings.ToLower(execErr.Error()), "unique constraint failed") {
				logger.L.Debug("Skipping duplicate trade on import", "userID", userID, "hash_id", t.ID)
				duplicates++
				continue
			}
			return 0, 0, fmt.Errorf("error inserting trade (hash: %s): %w", t.ID, execErr)
		}
		added++
	}

	if err := dbTx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("error committing trades: %w", err)
	}
	return added, duplicates, nil
}

// ApplyCommissionRates stores explicit per-instrument rates and finalizes
// stored trades still missing commission. Returns how many trades were
// updated.
func (s *importServiceImpl) ApplyCommissionRates(userID int64, rates map[string]float64) (int, error) {
	dbTx, err := database.DB.Begin()
	if err != nil {
		return 0, fmt.Errorf("error beginning database transaction: %w", err)
	}
	defer dbTx.Rollback()

	updated := 0
	for instrument, rate := range rates {
		if _, err := dbTx.Exec(`INSERT INTO commission_rates (user_id, instrument, rate) VALUES (?, ?, ?)
			ON CONFLICT(user_id, instrument) DO UPDATE SET rate = excluded.rate, updated_at = CURRENT_TIMESTAMP`,
			userID, instrument, rate); err != nil {
			return 0, fmt.Errorf("error storing commission rate for %s: %w", instrument, err)
		}

		res, err := dbTx.Exec(`UPDATE trades SET commission = ? * quantity WHERE user_id = ? AND instrument = ? AND commission = 0`,
			rate, userID, instrument)
		if err != nil {
			return 0, fmt.Errorf("error backfilling commission for %s: %w", instrument, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			updated += int(n)
		}
	}

	if err := dbTx.Commit(); err != nil {
		return 0, fmt.Errorf("error committing commission rates: %w", err)
	}

	s.InvalidateUserCache(userID)
	logger.L.Info("Applied commission rates", "userID", userID, "instruments", len(rates), "tradesUpdated", updated)
	return updated, nil
}

func fetchStoredRates(userID int64) (map[string]float64, error) {
	rows, err := database.DB.Query(`SELECT instrument, rate FROM commission_rates WHERE user_id = ?`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rates := make(map[string]float64)
	for rows.Next() {
		var instrument string
		var rate float64
		if err := rows.Scan(&instrument, &rate); err != nil {
			return nil, err
		}
		rates[instrument] = rate
	}
	return rates, rows.Err()
}

func (s *importServiceImpl) GetTrades(userID int64) ([]models.Trade, error) {
	cacheKey := fmt.Sprintf(ckUserTrades, userID)
	if cached, found := s.resultCache.Get(cacheKey); found {
		return cached.([]models.Trade), nil
	}

	rows, err := database.DB.Query(`SELECT hash_id, account_number, instrument, side, quantity, entry_price, close_price, entry_date, close_date, pnl, commission, time_in_position, entry_id, close_id, comment, tags FROM trades WHERE user_id = ? ORDER BY entry_date ASC, id ASC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error querying trades for userID %d: %w", userID, err)
	}
	defer rows.Close()

	var trades []models.Trade
	for rows.Next() {
		var t models.Trade
		var side, tags string
		if err := rows.Scan(&t.ID, &t.AccountNumber, &t.Instrument, &side, &t.Quantity,
			&t.EntryPrice, &t.ClosePrice, &t.EntryDate, &t.CloseDate, &t.PnL,
			&t.Commission, &t.TimeInPosition, &t.EntryID, &t.CloseID,
			&t.Comment, &tags); err != nil {
			return nil, fmt.Errorf("error scanning trade row for userID %d: %w", userID, err)
		}
		t.Side = models.Side(side)
		if tags != "" {
			t.Tags = strings.Split(tags, ",")
		}
		trades = append(trades, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trade rows for userID %d: %w", userID, err)
	}

	s.resultCache.Set(cacheKey, trades, cache.DefaultExpiration)
	return trades, nil
}

func (s *importServiceImpl) GetLatestImportResult(userID int64) (*models.ImportResult, error) {
	if cached, found := s.resultCache.Get(fmt.Sprintf(ckLatestImportResult, userID)); found {
		return cached.(*models.ImportResult), nil
	}
	return nil, sql.ErrNoRows
}

func (s *importServiceImpl) InvalidateUserCache(userID int64) {
	s.resultCache.Delete(fmt.Sprintf(ckUserTrades, userID))
	logger.L.Debug("Invalidated trade cache for user", "userID", userID)
}

package services

import (
	"context"
	"errors"
	"io"

	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/parsers"
)

var (
	ErrParsingFailed    = errors.New("parsing failed")
	ErrProcessingFailed = errors.New("processing failed")
)

// ImportService is the core pipeline: extract, map, process, resolve
// commission, hash, persist.
type ImportService interface {
	ProcessImport(ctx context.Context, fileReader io.Reader, userID int64, platform parsers.Platform) (*models.ImportResult, error)
	ProcessPDFImport(ctx context.Context, pdf io.Reader, userID int64) (*models.ImportResult, error)
	ApplyCommissionRates(userID int64, rates map[string]float64) (int, error)
	GetTrades(userID int64) ([]models.Trade, error)
	GetLatestImportResult(userID int64) (*models.ImportResult, error)
	InvalidateUserCache(userID int64)
}

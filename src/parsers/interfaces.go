package parsers

import (
	"io"

	"github.com/username/tradevault/backend/src/models"
)

// Extractor turns a source file into a rectangular header + rows table.
type Extractor interface {
	Extract(file io.Reader) (models.RawTable, error)
}

// ProcessFunc converts mapped rows into canonical trades. Row-level
// problems are skipped and counted, never returned as errors; an error
// means the whole file is unusable.
type ProcessFunc func(table models.RawTable, mapping *models.ColumnMapping) (models.ProcessResult, error)

// OrderProcessFunc is the entry point for PDF platforms, where fills arrive
// from the order-extraction collaborator instead of a table.
type OrderProcessFunc func(orders []models.ExtractedOrder) (models.ProcessResult, error)

package parsers

import (
	"context"
	"io"

	"github.com/username/tradevault/backend/src/models"
)

// TextExtractor is the OCR collaborator boundary: PDF bytes in, plain text
// out. The implementation lives outside this module.
type TextExtractor interface {
	ExtractText(ctx context.Context, pdf io.Reader) (string, error)
}

// OrderExtractionService is the collaborator that turns OCR text from a
// broker statement into structured fills. Like the AI mapping service it is
// asynchronous and may fail; callers must degrade, not abort.
type OrderExtractionService interface {
	ExtractOrders(ctx context.Context, text string) ([]models.ExtractedOrder, error)
}

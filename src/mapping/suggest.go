package mapping

import (
	"context"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

// SuggestionRequest is the payload sent to the external mapping-suggestion
// service: the headers plus a small sample of rows for context.
type SuggestionRequest struct {
	FieldColumns []string            `json:"fieldColumns"`
	FirstRows    []map[string]string `json:"firstRows"`
}

// SuggestionService is the AI collaborator boundary. The response maps
// destination field names to header values, optionally position-suffixed
// ("Price_3") to disambiguate duplicate header text. Latency is unbounded
// and failure is expected; callers proceed without suggestions.
type SuggestionService interface {
	SuggestMapping(ctx context.Context, req SuggestionRequest) (map[string]string, error)
}

// BuildSuggestionRequest samples up to sampleRows rows from the table.
func BuildSuggestionRequest(table models.RawTable, sampleRows int) SuggestionRequest {
	if sampleRows > len(table.Rows) {
		sampleRows = len(table.Rows)
	}
	rows := make([]map[string]string, 0, sampleRows)
	for i := 0; i < sampleRows; i++ {
		row := make(map[string]string, len(table.Headers))
		for j, h := range table.Headers {
			row[h] = table.Cell(i, j)
		}
		rows = append(rows, row)
	}
	return SuggestionRequest{FieldColumns: append([]string(nil), table.Headers...), FirstRows: rows}
}

// Suggest asks the service for mapping candidates and merges whatever comes
// back. Any error degrades to "no suggestion".
func Suggest(ctx context.Context, svc SuggestionService, table models.RawTable, m *models.ColumnMapping) {
	if svc == nil {
		return
	}
	suggestions, err := svc.SuggestMapping(ctx, BuildSuggestionRequest(table, 5))
	if err != nil {
		logger.L.Warn("Mapping suggestion service unavailable, proceeding without suggestions", "error", err)
		return
	}
	ApplySuggestions(table, m, suggestions)
}

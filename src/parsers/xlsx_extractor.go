package parsers

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

// SpreadsheetExtractor reads one named sheet of an .xlsx/.xls workbook.
// Export wizards tend to put banner rows above the real header, so the
// header row is located as the first row containing any non-empty cell.
type SpreadsheetExtractor struct {
	SheetName       string
	RequiredColumns []string
}

func NewSpreadsheetExtractor(sheetName string, requiredColumns []string) *SpreadsheetExtractor {
	return &SpreadsheetExtractor{SheetName: sheetName, RequiredColumns: requiredColumns}
}

func (e *SpreadsheetExtractor) Extract(file io.Reader) (models.RawTable, error) {
	workbook, err := excelize.OpenReader(file)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	defer workbook.Close()

	sheet := e.findSheet(workbook)
	if sheet == "" {
		return models.RawTable{}, &SheetNotFoundError{Sheet: e.SheetName}
	}

	rows, err := workbook.GetRows(sheet)
	if err != nil {
		return models.RawTable{}, fmt.Errorf("%w: reading sheet %q: %v", ErrParseFailure, sheet, err)
	}

	headerIdx := -1
	for i, row := range rows {
		if rowHasContent(row) {
			headerIdx = i
			break
		}
	}
	if headerIdx == -1 || headerIdx == len(rows)-1 {
		return models.RawTable{}, fmt.Errorf("%w: sheet %q has no data rows", ErrParseFailure, sheet)
	}

	headers := trimAll(rows[headerIdx])
	if missing := e.missingColumns(headers); len(missing) > 0 {
		return models.RawTable{}, &MissingColumnsError{Columns: missing}
	}

	table := models.RawTable{Headers: headers, Rows: rows[headerIdx+1:]}
	table.Normalize()
	logger.L.Debug("Spreadsheet extracted", "sheet", sheet, "headerRow", headerIdx, "rows", len(table.Rows))
	return table, nil
}

// findSheet matches the configured sheet name case-insensitively; an empty
// configured name means the first sheet.
func (e *SpreadsheetExtractor) findSheet(workbook *excelize.File) string {
	sheets := workbook.GetSheetList()
	if e.SheetName == "" && len(sheets) > 0 {
		return sheets[0]
	}
	for _, s := range sheets {
		if strings.EqualFold(s, e.SheetName) {
			return s
		}
	}
	return ""
}

func (e *SpreadsheetExtractor) missingColumns(headers []string) []string {
	var missing []string
	for _, required := range e.RequiredColumns {
		found := false
		for _, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), required) {
				found = true
				break
			}
		}
		if !found {
			missing = append(missing, required)
		}
	}
	return missing
}

func rowHasContent(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

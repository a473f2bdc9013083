package parsers

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/username/tradevault/backend/src/models"
)

// DelimitedExtractor reads CSV-style exports. The delimiter is sniffed from
// the first line: a semicolon anywhere in it wins, otherwise comma.
type DelimitedExtractor struct{}

func NewDelimitedExtractor() *DelimitedExtractor {
	return &DelimitedExtractor{}
}

func (e *DelimitedExtractor) Extract(file io.Reader) (models.RawTable, error) {
	buffered := bufio.NewReader(file)

	firstLine, err := buffered.ReadString('\n')
	if err != nil && err != io.EOF {
		return models.RawTable{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if strings.TrimSpace(firstLine) == "" {
		return models.RawTable{}, fmt.Errorf("%w: file is empty", ErrParseFailure)
	}

	delimiter := ','
	if strings.Contains(firstLine, ";") {
		delimiter = ';'
	}

	reader := csv.NewReader(io.MultiReader(strings.NewReader(firstLine), buffered))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return models.RawTable{}, fmt.Errorf("%w: %v", ErrParseFailure, err)
	}
	if len(records) < 2 {
		return models.RawTable{}, fmt.Errorf("%w: no data rows", ErrParseFailure)
	}

	table := models.RawTable{
		Headers: trimAll(records[0]),
		Rows:    records[1:],
	}
	table.Normalize()
	return table, nil
}

func trimAll(cells []string) []string {
	out := make([]string, len(cells))
	for i, c := range cells {
		out[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
	}
	return out
}

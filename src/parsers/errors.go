package parsers

import (
	"errors"
	"fmt"
	"strings"
)

// ErrParseFailure covers files that are unreadable, empty, or have the
// wrong delimiter. Structural: the whole file is rejected.
var ErrParseFailure = errors.New("file could not be parsed")

// SheetNotFoundError is returned when a spreadsheet platform requires a
// named sheet that the workbook does not contain.
type SheetNotFoundError struct {
	Sheet string
}

func (e *SheetNotFoundError) Error() string {
	return fmt.Sprintf("sheet %q not found in workbook", e.Sheet)
}

// MissingColumnsError lists required columns absent from the detected
// header row.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return fmt.Sprintf("missing required columns: %s", strings.Join(e.Columns, ", "))
}

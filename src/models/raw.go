package models

import "strings"

// RawTable is the rectangular output of every extractor: a header row plus
// string cells. Headers may repeat; before mapping, the positional index is
// the only reliable identity of a column.
type RawTable struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// Normalize pads or truncates every row to the header width so downstream
// code can index cells by column without bounds checks.
func (t *RawTable) Normalize() {
	width := len(t.Headers)
	for i, row := range t.Rows {
		switch {
		case len(row) < width:
			padded := make([]string, width)
			copy(padded, row)
			t.Rows[i] = padded
		case len(row) > width:
			t.Rows[i] = row[:width]
		}
	}
}

// Cell returns the cell at (row, col), empty string when out of range.
func (t *RawTable) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	r := t.Rows[row]
	if col < 0 || col >= len(r) {
		return ""
	}
	return r[col]
}

// HeaderIndex returns the position of the first header equal to name
// (case-insensitive, whitespace-trimmed), or -1.
func (t *RawTable) HeaderIndex(name string) int {
	for i, h := range t.Headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(name)) {
			return i
		}
	}
	return -1
}

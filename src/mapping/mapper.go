// Package mapping assigns raw export columns to canonical trade fields.
// Three inputs feed the same ColumnMapping, in increasing authority:
// platform default alias lists, advisory AI suggestions, and manual user
// overrides. All of them funnel through ColumnMapping.Set, which keeps the
// single-destination invariant.
package mapping

import (
	"strconv"
	"strings"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
)

// ApplyDefaults matches headers against per-platform alias lists. A header
// matches an alias case-insensitively, exact first and substring second.
// Already-claimed destinations are left alone so defaults never override a
// manual or suggested assignment.
func ApplyDefaults(table models.RawTable, m *models.ColumnMapping, defaults map[models.Destination][]string) {
	for _, dest := range models.Destinations {
		aliases := defaults[dest]
		if len(aliases) == 0 {
			continue
		}
		if _, claimed := m.ColumnFor(dest); claimed {
			continue
		}
		if idx := matchHeader(table.Headers, aliases); idx >= 0 {
			m.Set(models.ColumnID{Header: table.Headers[idx], Index: idx}, dest)
		}
	}
}

func matchHeader(headers []string, aliases []string) int {
	// Exact match wins over substring so "Close Price" does not steal the
	// "Price" alias from a dedicated column.
	for _, alias := range aliases {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), alias) {
				return i
			}
		}
	}
	for _, alias := range aliases {
		lowered := strings.ToLower(alias)
		for i, h := range headers {
			if strings.Contains(strings.ToLower(h), lowered) {
				return i
			}
		}
	}
	return -1
}

// ApplySuggestions merges advisory destination→header pairs from the
// suggestion service into the mapping. A suggestion may disambiguate
// duplicate headers with a 1-based "_N" position suffix; the header at that
// position must match, otherwise the suffix is treated as part of the
// header text and first-occurrence matching applies. Unknown destinations
// and unmatched headers are skipped with a log line; suggestions never
// abort the pipeline.
func ApplySuggestions(table models.RawTable, m *models.ColumnMapping, suggestions map[string]string) {
	for destName, headerValue := range suggestions {
		if !models.IsValidDestination(destName) {
			logger.L.Warn("Ignoring suggestion for unknown destination", "destination", destName)
			continue
		}
		dest := models.Destination(destName)

		col, ok := resolveColumn(table.Headers, headerValue)
		if !ok {
			logger.L.Warn("Ignoring suggestion for unknown header", "destination", destName, "header", headerValue)
			continue
		}
		m.Set(col, dest)
	}
}

// resolveColumn finds the column a suggestion names, honoring an optional
// position suffix.
func resolveColumn(headers []string, value string) (models.ColumnID, bool) {
	if base, pos, ok := splitPositionSuffix(value); ok {
		idx := pos - 1
		if idx >= 0 && idx < len(headers) && strings.EqualFold(strings.TrimSpace(headers[idx]), base) {
			return models.ColumnID{Header: headers[idx], Index: idx}, true
		}
		// Position did not line up; fall through to first-occurrence on the
		// full value, then on the base name.
	}
	for i, h := range headers {
		if strings.EqualFold(strings.TrimSpace(h), strings.TrimSpace(value)) {
			return models.ColumnID{Header: h, Index: i}, true
		}
	}
	if base, _, ok := splitPositionSuffix(value); ok {
		for i, h := range headers {
			if strings.EqualFold(strings.TrimSpace(h), base) {
				return models.ColumnID{Header: h, Index: i}, true
			}
		}
	}
	return models.ColumnID{}, false
}

// splitPositionSuffix parses "Header_3" into ("Header", 3, true).
func splitPositionSuffix(value string) (string, int, bool) {
	i := strings.LastIndex(value, "_")
	if i <= 0 || i == len(value)-1 {
		return "", 0, false
	}
	pos, err := strconv.Atoi(value[i+1:])
	if err != nil || pos < 1 {
		return "", 0, false
	}
	return strings.TrimSpace(value[:i]), pos, true
}

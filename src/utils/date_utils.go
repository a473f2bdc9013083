package utils

import (
	"fmt"
	"strings"
	"time"
)

// Layouts the supported platforms export timestamps in. Order matters: the
// first successful parse wins, so more specific layouts come first.
var dateLayouts = []string{
	"02.01.2006 15:04:05",    // ATAS, FTMO (MetaTrader style)
	"02.01.2006 15:04",       // FTMO without seconds
	"01/02/2006 03:04:05 PM", // Tradovate AM/PM
	"01/02/2006 3:04:05 PM",
	"01/02/2006 15:04:05", // Tradovate 24h
	"2006-01-02 15:04:05", // Quantower, Rithmic
	"2006-01-02T15:04:05", // ISO without offset
	time.RFC3339,
	"01/02/2006", // date-only US
	"02.01.2006", // date-only EU
	"2006-01-02",
}

// ParseDate tries every supported platform timestamp layout and returns the
// result in UTC. Naive timestamps are taken as UTC; sources never carry a
// reliable local zone.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	// Spreadsheet exports sometimes hand over raw Excel serials.
	if serial, err := ParseFloat(s); err == nil && serial > 0 && serial < 300000 {
		return ExcelSerialToTime(serial), nil
	}
	return time.Time{}, fmt.Errorf("unparseable date %q", s)
}

// excelEpoch is 1899-12-30: the nominal 1900-01-01 epoch shifted back two
// days, one for Excel's 1-based day count and one for its phantom
// 1900-02-29 (the 1900 leap-year bug). With this epoch, serial 60 -- the
// non-existent leap day -- resolves to 1900-02-28 instead of failing.
var excelEpoch = time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)

// ExcelSerialToTime converts an Excel serial day number (fractional part is
// the time of day) to a UTC time.
func ExcelSerialToTime(serial float64) time.Time {
	days := int(serial)
	frac := serial - float64(days)
	secs := int(frac*86400 + 0.5)
	return excelEpoch.AddDate(0, 0, days).Add(time.Duration(secs) * time.Second)
}

// TimeToExcelSerial is the inverse of ExcelSerialToTime.
func TimeToExcelSerial(t time.Time) float64 {
	return t.Sub(excelEpoch).Hours() / 24
}

// FormatDate renders a timestamp the way canonical trades carry dates:
// RFC3339 with an explicit UTC offset.
func FormatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SecondsBetween returns the whole seconds from entry to close, never
// negative.
func SecondsBetween(entry, close time.Time) int64 {
	if close.Before(entry) {
		return 0
	}
	return int64(close.Sub(entry).Seconds())
}

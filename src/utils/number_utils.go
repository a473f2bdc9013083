package utils

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// cleanNumber strips the noise broker exports wrap numbers in: currency
// symbols, thousands separators, comma decimal separators, and accounting
// parentheses for negatives.
func cleanNumber(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("empty numeric value")
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	for _, sym := range []string{"$", "€", "£", " ", " "} {
		s = strings.ReplaceAll(s, sym, "")
	}

	// Decide which of '.' and ',' is the decimal separator. When both are
	// present the rightmost one wins; the other is a thousands separator.
	dot := strings.LastIndex(s, ".")
	comma := strings.LastIndex(s, ",")
	switch {
	case dot >= 0 && comma >= 0:
		if comma > dot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case comma >= 0:
		if strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	if negative {
		s = "-" + strings.TrimPrefix(s, "-")
	}
	return s, nil
}

// ParseDecimal parses a locale-tolerant numeric string into a decimal.
// Accepts "1 234,56", "$1,234.56", "(123.45)" and plain floats.
func ParseDecimal(s string) (decimal.Decimal, error) {
	cleaned, err := cleanNumber(s)
	if err != nil {
		return decimal.Zero, err
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("unparseable number %q: %w", s, err)
	}
	return d, nil
}

// ParseFloat is ParseDecimal for callers that compute in float64.
func ParseFloat(s string) (float64, error) {
	d, err := ParseDecimal(s)
	if err != nil {
		return 0, err
	}
	f, _ := d.Float64()
	return f, nil
}

// ParseFloatOr parses s, falling back to def when empty or unparseable.
func ParseFloatOr(s string, def float64) float64 {
	f, err := ParseFloat(s)
	if err != nil {
		return def
	}
	return f
}

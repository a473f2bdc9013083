// Package symbols normalizes the instrument identifiers trading platforms
// export: contract-month suffixes are stripped and broker-specific (CQG)
// codes are translated to canonical root symbols.
package symbols

import (
	"regexp"
	"strings"
)

// monthCodeRe matches a trailing futures contract-month code: a valid month
// letter followed by a 1-2 digit year, e.g. "Z4", "H25".
var monthCodeRe = regexp.MustCompile(`^(.{1,}?)([FGHJKMNQUVXZ]\d{1,2})$`)

// numericMonthRe matches the 2-digit-month style some platforms append,
// e.g. "ES 12-24" or "ES12-24".
var numericMonthRe = regexp.MustCompile(`^(.+?)\s*\d{2}-\d{2}$`)

// cqgToRoot translates CQG symbol codes to canonical root symbols. The
// reverse map is derived below.
var cqgToRoot = map[string]string{
	"EP":   "ES",
	"ENQ":  "NQ",
	"MES":  "MES",
	"MNQ":  "MNQ",
	"RTY":  "RTY",
	"M2K":  "M2K",
	"YM":   "YM",
	"MYM":  "MYM",
	"CLE":  "CL",
	"MCLE": "MCL",
	"NGE":  "NG",
	"GCE":  "GC",
	"MGC":  "MGC",
	"SIE":  "SI",
	"HGE":  "HG",
	"ZUB":  "ZB",
	"ZUN":  "ZN",
	"EU6":  "6E",
	"GBP6": "6B",
	"JY6":  "6J",
	"AD6":  "6A",
	"CD6":  "6C",
	"ZCE":  "ZC",
	"ZSE":  "ZS",
	"ZWA":  "ZW",
}

var rootToCQG = func() map[string]string {
	m := make(map[string]string, len(cqgToRoot))
	for cqg, root := range cqgToRoot {
		m[root] = cqg
	}
	return m
}()

// StripMonthCode removes a trailing contract-month code from a raw symbol.
// "ESZ4" -> "ES", "MNQH25" -> "MNQ", "NQ 12-24" -> "NQ". Symbols without a
// recognizable suffix pass through unchanged.
func StripMonthCode(symbol string) string {
	symbol = strings.TrimSpace(symbol)
	if m := numericMonthRe.FindStringSubmatch(symbol); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := monthCodeRe.FindStringSubmatch(symbol); m != nil {
		return m[1]
	}
	return symbol
}

// StripExchange removes a trailing "@EXCH" qualifier: "ESZ4@CME" -> "ESZ4".
func StripExchange(symbol string) string {
	if i := strings.Index(symbol, "@"); i >= 0 {
		return symbol[:i]
	}
	return symbol
}

// FromCQG translates a CQG code to its canonical root. Unrecognized codes
// pass through unchanged.
func FromCQG(code string) string {
	if root, ok := cqgToRoot[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return root
	}
	return strings.TrimSpace(code)
}

// ToCQG translates a canonical root to its CQG code, identity when unknown.
func ToCQG(root string) string {
	if code, ok := rootToCQG[strings.ToUpper(strings.TrimSpace(root))]; ok {
		return code
	}
	return strings.TrimSpace(root)
}

// Normalize runs the full sub-algorithm: drop the exchange qualifier, strip
// the contract-month code, then translate any CQG code to its root.
func Normalize(symbol string) string {
	return FromCQG(StripMonthCode(StripExchange(symbol)))
}

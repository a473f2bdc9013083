package parsers

import (
	"fmt"

	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/platforms/atas"
	"github.com/username/tradevault/backend/src/platforms/ftmo"
	"github.com/username/tradevault/backend/src/platforms/ibkr"
	"github.com/username/tradevault/backend/src/platforms/ninjatrader"
	"github.com/username/tradevault/backend/src/platforms/quantower"
	"github.com/username/tradevault/backend/src/platforms/rithmic"
	"github.com/username/tradevault/backend/src/platforms/tradezella"
	"github.com/username/tradevault/backend/src/platforms/tradovate"
)

// Platform identifies a supported trading platform export format.
type Platform string

const (
	PlatformATAS        Platform = "atas"
	PlatformFTMO        Platform = "ftmo"
	PlatformTradezella  Platform = "tradezella"
	PlatformNinjaTrader Platform = "ninjatrader"
	PlatformTradovate   Platform = "tradovate"
	PlatformQuantower   Platform = "quantower"
	PlatformRithmic     Platform = "rithmicorders"
	PlatformIBKR        Platform = "ibkr"
)

// Strategy bundles everything the pipeline needs for one platform. Resolved
// once at import start; no platform conditionals elsewhere.
type Strategy struct {
	Extractor      Extractor
	DefaultMapping map[models.Destination][]string
	Process        ProcessFunc
	// PDF platforms skip Extractor/Process and route extracted fills
	// through ProcessOrders instead.
	PDFBased      bool
	ProcessOrders OrderProcessFunc
}

var registry = map[Platform]Strategy{
	PlatformATAS: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: atas.DefaultMapping,
		Process:        atas.Process,
	},
	PlatformFTMO: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: ftmo.DefaultMapping,
		Process:        ftmo.Process,
	},
	PlatformTradezella: {
		Extractor:      NewSpreadsheetExtractor(tradezella.SheetName, tradezella.RequiredColumns),
		DefaultMapping: tradezella.DefaultMapping,
		Process:        tradezella.Process,
	},
	PlatformNinjaTrader: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: ninjatrader.DefaultMapping,
		Process:        ninjatrader.Process,
	},
	PlatformTradovate: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: tradovate.DefaultMapping,
		Process:        tradovate.Process,
	},
	PlatformQuantower: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: quantower.DefaultMapping,
		Process:        quantower.Process,
	},
	PlatformRithmic: {
		Extractor:      NewDelimitedExtractor(),
		DefaultMapping: rithmic.DefaultMapping,
		Process:        rithmic.Process,
	},
	PlatformIBKR: {
		PDFBased:      true,
		ProcessOrders: ibkr.ProcessOrders,
	},
}

// GetStrategy resolves the strategy for a platform identifier.
func GetStrategy(p Platform) (Strategy, error) {
	s, ok := registry[p]
	if !ok {
		return Strategy{}, fmt.Errorf("no import strategy available for platform: %s", p)
	}
	return s, nil
}

// Platforms lists every registered platform identifier.
func Platforms() []Platform {
	out := make([]Platform, 0, len(registry))
	for p := range registry {
		out = append(out, p)
	}
	return out
}

package models

// ContractSpec converts a tick price difference into currency P&L for one
// futures root symbol.
type ContractSpec struct {
	TickSize  float64 `json:"tick_size"`
	TickValue float64 `json:"tick_value"`
}

// PointValue is the currency value of a full point move for one contract.
func (c ContractSpec) PointValue() float64 {
	if c.TickSize == 0 {
		return 0
	}
	return c.TickValue / c.TickSize
}

// DefaultContractSpec is the placeholder used for unrecognized symbols. A
// trade priced with it is flagged in the import result so the user can
// supply the real spec before trusting totals.
var DefaultContractSpec = ContractSpec{TickSize: 0.25, TickValue: 1.25}

// ContractSpecs holds tick data for the common CME/CBOT/NYMEX/COMEX and
// Eurex futures roots the supported platforms export.
var ContractSpecs = map[string]ContractSpec{
	// Equity index
	"ES":  {TickSize: 0.25, TickValue: 12.50},
	"MES": {TickSize: 0.25, TickValue: 1.25},
	"NQ":  {TickSize: 0.25, TickValue: 5.00},
	"MNQ": {TickSize: 0.25, TickValue: 0.50},
	"RTY": {TickSize: 0.10, TickValue: 5.00},
	"M2K": {TickSize: 0.10, TickValue: 0.50},
	"YM":  {TickSize: 1.00, TickValue: 5.00},
	"MYM": {TickSize: 1.00, TickValue: 0.50},
	"NKD": {TickSize: 5.00, TickValue: 25.00},
	// Energy
	"CL":  {TickSize: 0.01, TickValue: 10.00},
	"MCL": {TickSize: 0.01, TickValue: 1.00},
	"QM":  {TickSize: 0.025, TickValue: 12.50},
	"NG":  {TickSize: 0.001, TickValue: 10.00},
	"RB":  {TickSize: 0.0001, TickValue: 4.20},
	"HO":  {TickSize: 0.0001, TickValue: 4.20},
	// Metals
	"GC":  {TickSize: 0.10, TickValue: 10.00},
	"MGC": {TickSize: 0.10, TickValue: 1.00},
	"SI":  {TickSize: 0.005, TickValue: 25.00},
	"SIL": {TickSize: 0.005, TickValue: 5.00},
	"HG":  {TickSize: 0.0005, TickValue: 12.50},
	"PL":  {TickSize: 0.10, TickValue: 5.00},
	// Rates
	"ZB": {TickSize: 0.03125, TickValue: 31.25},
	"ZN": {TickSize: 0.015625, TickValue: 15.625},
	"ZF": {TickSize: 0.0078125, TickValue: 7.8125},
	"ZT": {TickSize: 0.00390625, TickValue: 7.8125},
	// FX
	"6E": {TickSize: 0.00005, TickValue: 6.25},
	"6B": {TickSize: 0.0001, TickValue: 6.25},
	"6J": {TickSize: 0.0000005, TickValue: 6.25},
	"6A": {TickSize: 0.0001, TickValue: 10.00},
	"6C": {TickSize: 0.00005, TickValue: 5.00},
	// Agriculture
	"ZC": {TickSize: 0.25, TickValue: 12.50},
	"ZS": {TickSize: 0.25, TickValue: 12.50},
	"ZW": {TickSize: 0.25, TickValue: 12.50},
	// Eurex
	"FDAX": {TickSize: 1.00, TickValue: 25.00},
	"FDXM": {TickSize: 1.00, TickValue: 5.00},
	"FESX": {TickSize: 1.00, TickValue: 10.00},
	"FGBL": {TickSize: 0.01, TickValue: 10.00},
}

// LookupContractSpec returns the spec for a root symbol. The second result
// is false when the symbol is unknown and the default placeholder was used.
func LookupContractSpec(root string) (ContractSpec, bool) {
	if spec, ok := ContractSpecs[root]; ok {
		return spec, true
	}
	return DefaultContractSpec, false
}

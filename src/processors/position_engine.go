package processors

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/username/tradevault/backend/src/logger"
	"github.com/username/tradevault/backend/src/models"
	"github.com/username/tradevault/backend/src/symbols"
	"github.com/username/tradevault/backend/src/utils"
)

// PositionEngine matches individual fills into closed trades. One engine is
// owned exclusively by one import run: the arena of open positions keyed by
// (account, instrument) must never see interleaved fills from two files.
type PositionEngine struct {
	positions map[string]*models.OpenPosition
	trades    []models.Trade
	unknown   map[string]bool
}

func NewPositionEngine() *PositionEngine {
	return &PositionEngine{
		positions: make(map[string]*models.OpenPosition),
		unknown:   make(map[string]bool),
	}
}

// Fill is one order fill tagged with its account and raw instrument symbol.
type Fill struct {
	AccountNumber string
	Instrument    string // raw symbol; normalized internally
	Order         models.Order
}

// ProcessFills sorts fills by timestamp and feeds them through the matcher.
// The sort is mandatory: source files are not guaranteed chronological.
func (e *PositionEngine) ProcessFills(fills []Fill) {
	sort.SliceStable(fills, func(i, j int) bool {
		return fills[i].Order.Timestamp.Before(fills[j].Order.Timestamp)
	})
	for _, f := range fills {
		e.Apply(f)
	}
}

// Apply routes a single fill into the arena.
func (e *PositionEngine) Apply(f Fill) {
	instrument := symbols.Normalize(f.Instrument)
	key := models.PositionKey(f.AccountNumber, instrument)
	pos, open := e.positions[key]

	if !open {
		e.positions[key] = openPosition(f.AccountNumber, instrument, f.Order)
		return
	}

	if f.Order.Side == pos.Side {
		mergeEntry(pos, f.Order)
		return
	}
	e.reduce(key, pos, f.Order)
}

func openPosition(account, instrument string, o models.Order) *models.OpenPosition {
	return &models.OpenPosition{
		AccountNumber:     account,
		Instrument:        instrument,
		Side:              o.Side,
		Quantity:          o.Quantity,
		EntryOrders:       []models.Order{o},
		AverageEntryPrice: o.Price,
		EntryDate:         o.Timestamp,
		TotalCommission:   o.Commission,
		OriginalQuantity:  o.Quantity,
	}
}

// mergeEntry folds a same-direction fill into the position, recomputing the
// weighted average entry price.
func mergeEntry(pos *models.OpenPosition, o models.Order) {
	total := pos.Quantity + o.Quantity
	pos.AverageEntryPrice = (pos.AverageEntryPrice*pos.Quantity + o.Price*o.Quantity) / total
	pos.Quantity = total
	pos.OriginalQuantity += o.Quantity
	pos.EntryOrders = append(pos.EntryOrders, o)
	pos.TotalCommission += o.Commission
}

// reduce applies an opposite-direction fill. At exactly zero remaining the
// position closes; an over-fill closes the matched quantity and reopens the
// overflow on the flipped side at the fill's price.
func (e *PositionEngine) reduce(key string, pos *models.OpenPosition, o models.Order) {
	matched := o.Quantity
	overflow := 0.0
	if matched > pos.Quantity {
		overflow = matched - pos.Quantity
		matched = pos.Quantity
	}

	exit := o
	exit.Quantity = matched
	// Commission is prorated when the fill both closes and reverses.
	if overflow > 0 && o.Quantity > 0 {
		exit.Commission = o.Commission * (matched / o.Quantity)
	}
	pos.ExitOrders = append(pos.ExitOrders, exit)
	pos.TotalCommission += exit.Commission
	pos.Quantity -= matched

	if pos.Quantity > 0 {
		return
	}

	e.trades = append(e.trades, e.closeTrade(pos))
	delete(e.positions, key)

	if overflow > 0 {
		reversed := o
		reversed.Quantity = overflow
		reversed.Commission = o.Commission - exit.Commission
		e.positions[key] = openPosition(pos.AccountNumber, pos.Instrument, reversed)
	}
}

// closeTrade emits the canonical trade for a fully-offset position.
func (e *PositionEngine) closeTrade(pos *models.OpenPosition) models.Trade {
	matchedQty := pos.OriginalQuantity

	var exitQty, exitNotional float64
	var lastExit models.Order
	for _, o := range pos.ExitOrders {
		exitQty += o.Quantity
		exitNotional += o.Price * o.Quantity
		lastExit = o
	}
	avgExit := 0.0
	if exitQty > 0 {
		avgExit = exitNotional / exitQty
	}

	spec, known := models.LookupContractSpec(pos.Instrument)
	if !known {
		e.unknown[pos.Instrument] = true
		logger.L.Warn("Unknown contract spec, using default placeholder",
			"instrument", pos.Instrument, "tickSize", spec.TickSize, "tickValue", spec.TickValue)
	}

	pnl := ((avgExit - pos.AverageEntryPrice) / spec.TickSize) * spec.TickValue * matchedQty
	if pos.Side == models.SideShort {
		pnl = -pnl
	}

	entryID := ""
	if len(pos.EntryOrders) > 0 {
		entryID = pos.EntryOrders[0].OrderID
	}

	return models.Trade{
		AccountNumber:  pos.AccountNumber,
		Instrument:     pos.Instrument,
		Side:           pos.Side,
		Quantity:       matchedQty,
		EntryPrice:     formatPrice(pos.AverageEntryPrice),
		ClosePrice:     formatPrice(avgExit),
		EntryDate:      utils.FormatDate(pos.EntryDate),
		CloseDate:      utils.FormatDate(lastExit.Timestamp),
		PnL:            pnl,
		Commission:     pos.TotalCommission,
		TimeInPosition: utils.SecondsBetween(pos.EntryDate, lastExit.Timestamp),
		EntryID:        entryID,
		CloseID:        lastExit.OrderID,
	}
}

// Result drains the engine: closed trades, positions that never closed, and
// the symbols priced with the placeholder spec.
func (e *PositionEngine) Result() models.ProcessResult {
	res := models.ProcessResult{Trades: e.trades}
	for _, pos := range e.positions {
		res.IncompletePositions = append(res.IncompletePositions, *pos)
	}
	sort.Slice(res.IncompletePositions, func(i, j int) bool {
		return res.IncompletePositions[i].Key() < res.IncompletePositions[j].Key()
	})
	for sym := range e.unknown {
		res.UnknownSymbols = append(res.UnknownSymbols, sym)
	}
	sort.Strings(res.UnknownSymbols)
	return res
}

func formatPrice(p float64) string {
	return decimal.NewFromFloat(p).String()
}

// OpenQuantity reports the total quantity still open across the arena.
// Together with the emitted trade quantities this conserves the sum of all
// fill quantities.
func (e *PositionEngine) OpenQuantity() float64 {
	var total float64
	for _, pos := range e.positions {
		total += pos.Quantity
	}
	return total
}

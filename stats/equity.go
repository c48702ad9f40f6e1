package stats

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// EquityPoint is one step of the equity curve.
type EquityPoint struct {
	Label      string  `json:"label"`
	Cumulative float64 `json:"cumulative"`
}

// EquityCurve returns the running total of results in the order given.
// Callers wanting a time axis should pass trades through SortChronological.
func EquityCurve(trades []journal.Trade) []EquityPoint {
	out := make([]EquityPoint, 0, len(trades))
	var running decimal.Decimal
	for i, t := range trades {
		v, _ := amount(t.FinancialResult)
		running = running.Add(v)
		out = append(out, EquityPoint{
			Label:      fmt.Sprintf("Trade %d", i+1),
			Cumulative: running.InexactFloat64(),
		})
	}
	return out
}

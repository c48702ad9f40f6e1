// Package stats folds a user's trades into the numbers the journal shows:
// dashboard statistics, ledger metrics, daily totals, the equity curve and
// the calendar grid. Every function is a pure reduction over its input.
package stats

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// PerformanceStats is the dashboard summary of a window of trades.
type PerformanceStats struct {
	TotalResult float64         `json:"totalResult"`
	TotalTrades int             `json:"totalTrades"`
	Wins        int             `json:"wins"`
	Losses      int             `json:"losses"`
	BreakEvens  int             `json:"breakEvens"`
	WinRate     float64         `json:"winRate"`
	TotalRR     float64         `json:"totalRR"`
	Malformed   int             `json:"malformed"`
	Trades      []journal.Trade `json:"trades"`
}

// Performance summarises trades by the result type the trader tagged them
// with. Break-even trades count toward TotalTrades but not toward WinRate.
//
// TotalRR adds the reward of every WIN with a readable ratio and takes one R
// for every LOSS that has a ratio at all, whatever its numbers say.
func Performance(trades []journal.Trade) PerformanceStats {
	s := PerformanceStats{
		TotalTrades: len(trades),
		Trades:      slices.Clone(trades),
	}
	if s.Trades == nil {
		s.Trades = []journal.Trade{}
	}

	var total, rr decimal.Decimal
	for _, t := range trades {
		v, ok := amount(t.FinancialResult)
		if !ok {
			s.Malformed++
		}
		total = total.Add(v)

		switch t.ResultType {
		case journal.Win:
			s.Wins++
			if reward, ok := rewardOf(t.RiskRewardRatio); ok {
				rr = rr.Add(reward)
			}
		case journal.Loss:
			s.Losses++
			if _, _, ok := splitRatio(t.RiskRewardRatio); ok {
				rr = rr.Sub(decimal.NewFromInt(1))
			}
		case journal.BreakEven:
			s.BreakEvens++
		}
	}

	s.TotalResult = total.InexactFloat64()
	s.TotalRR = rr.InexactFloat64()
	if decided := s.Wins + s.Losses; decided > 0 {
		s.WinRate = float64(s.Wins) / float64(decided) * 100
	}
	return s
}

package stats

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// PerformanceMetrics is the ledger summary of a filtered trade list.
type PerformanceMetrics struct {
	TotalResult  float64 `json:"totalResult"`
	WinRate      float64 `json:"winRate"`
	LossRate     float64 `json:"lossRate"`
	PayoffRatio  float64 `json:"payoffRatio"`
	AverageTrade float64 `json:"averageTrade"`
	TotalTrades  int     `json:"totalTrades"`
}

// Ledger classifies trades by the sign of their financial result, not by
// their result type, and divides rates by all trades including flat ones.
// It disagrees with Performance whenever a tag and a sign disagree: a WIN
// with a negative result is a loss here.
func Ledger(trades []journal.Trade) PerformanceMetrics {
	m := PerformanceMetrics{TotalTrades: len(trades)}
	if m.TotalTrades == 0 {
		return m
	}

	var (
		total, gain, loss decimal.Decimal
		wins, losses      int
	)
	for _, t := range trades {
		v, _ := amount(t.FinancialResult)
		total = total.Add(v)
		switch v.Sign() {
		case 1:
			wins++
			gain = gain.Add(v)
		case -1:
			losses++
			loss = loss.Add(v.Abs())
		}
	}

	n := decimal.NewFromInt(int64(m.TotalTrades))
	m.TotalResult = total.InexactFloat64()
	m.WinRate = float64(wins) / float64(m.TotalTrades) * 100
	m.LossRate = float64(losses) / float64(m.TotalTrades) * 100
	m.AverageTrade = total.Div(n).InexactFloat64()

	var avgWin, avgLoss decimal.Decimal
	if wins > 0 {
		avgWin = gain.Div(decimal.NewFromInt(int64(wins)))
	}
	if losses > 0 {
		avgLoss = loss.Div(decimal.NewFromInt(int64(losses)))
	}
	if avgLoss.Sign() > 0 {
		m.PayoffRatio = avgWin.Div(avgLoss).InexactFloat64()
	}
	return m
}

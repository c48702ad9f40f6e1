package stats

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// DailyAggregate is the total of one calendar day.
type DailyAggregate struct {
	Date        string  `json:"date"`
	TotalResult float64 `json:"totalResult"`
	TradeCount  int     `json:"tradeCount"`
}

// DayKey returns the canonical YYYY-MM-DD form of a trade date. The date is
// read as a civil date, so the server's time zone never moves it to a
// neighbouring day. A timestamp keeps the date it was written with. Strings
// that are not dates come back trimmed but otherwise unchanged.
func DayKey(date string) string {
	date = strings.TrimSpace(date)
	if t, err := time.Parse(journal.DateLayout, date); err == nil {
		return t.Format(journal.DateLayout)
	}
	if len(date) > len(journal.DateLayout) {
		if t, err := time.Parse(journal.DateLayout, date[:len(journal.DateLayout)]); err == nil {
			return t.Format(journal.DateLayout)
		}
	}
	return date
}

// DailyTotals groups trades by day, summing results and counting trades.
func DailyTotals(trades []journal.Trade) map[string]DailyAggregate {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	for _, t := range trades {
		key := DayKey(t.TradeDate)
		v, _ := amount(t.FinancialResult)
		sums[key] = sums[key].Add(v)
		counts[key]++
	}

	out := make(map[string]DailyAggregate, len(counts))
	for key, n := range counts {
		out[key] = DailyAggregate{
			Date:        key,
			TotalResult: sums[key].InexactFloat64(),
			TradeCount:  n,
		}
	}
	return out
}

// TradesByDay groups trades by day keeping input order within each day.
func TradesByDay(trades []journal.Trade) map[string][]journal.Trade {
	out := map[string][]journal.Trade{}
	for _, t := range trades {
		key := DayKey(t.TradeDate)
		out[key] = append(out[key], t)
	}
	return out
}

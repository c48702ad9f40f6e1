package stats

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date        string  `json:"date"`
	Day         int     `json:"day"`
	InMonth     bool    `json:"inMonth"`
	TotalResult float64 `json:"totalResult"`
	TradeCount  int     `json:"tradeCount"`
}

// MonthCalendar is a month laid out in Sunday-first weeks.
type MonthCalendar struct {
	Year        int             `json:"year"`
	Month       time.Month      `json:"month"`
	Weeks       [][]CalendarDay `json:"weeks"`
	TotalResult float64         `json:"totalResult"`
	TradeCount  int             `json:"tradeCount"`
}

// MonthGrid lays out the month as full weeks, Sunday to Saturday, padding
// with days of the neighbouring months. Totals cover in-month days only.
func MonthGrid(year int, month time.Month, daily map[string]DailyAggregate) MonthCalendar {
	w := MonthWindow(year, month)
	start := w.Start.AddDate(0, 0, -int(w.Start.Weekday()))
	end := w.End.AddDate(0, 0, int(time.Saturday-w.End.Weekday()))

	cal := MonthCalendar{Year: year, Month: month}
	var total decimal.Decimal
	var week []CalendarDay
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(journal.DateLayout)
		agg := daily[key]
		cell := CalendarDay{
			Date:        key,
			Day:         d.Day(),
			InMonth:     d.Month() == month,
			TotalResult: agg.TotalResult,
			TradeCount:  agg.TradeCount,
		}
		if cell.InMonth {
			total = total.Add(decimal.NewFromFloat(agg.TotalResult))
			cal.TradeCount += agg.TradeCount
		}
		week = append(week, cell)
		if d.Weekday() == time.Saturday {
			cal.Weeks = append(cal.Weeks, week)
			week = nil
		}
	}
	cal.TotalResult = total.InexactFloat64()
	return cal
}

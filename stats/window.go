package stats

import (
	"strconv"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// Period is the kind of date window a dashboard shows.
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
	// PeriodCustom marks a window chosen by explicit year and month.
	PeriodCustom Period = "custom"
)

// WindowQuery carries the raw, unvalidated filter strings from a request.
type WindowQuery struct {
	Year   string
	Month  string
	Period string
}

// Window is a closed interval of civil dates. Start and End are midnight UTC.
type Window struct {
	Start  time.Time `json:"-"`
	End    time.Time `json:"-"`
	Period Period    `json:"period"`
}

// StartKey is the first day of the window as YYYY-MM-DD.
func (w Window) StartKey() string { return w.Start.Format(journal.DateLayout) }

// EndKey is the last day of the window as YYYY-MM-DD.
func (w Window) EndKey() string { return w.End.Format(journal.DateLayout) }

// Contains reports whether the civil date string falls inside the window.
func (w Window) Contains(date string) bool {
	key := DayKey(date)
	return key >= w.StartKey() && key <= w.EndKey()
}

// ResolveWindow turns request filters into a date window relative to today.
// A valid year+month pair wins over period; an unknown period means month.
// Bad input never errors, it falls back to today's month.
func ResolveWindow(q WindowQuery, today time.Time) Window {
	if year, month, ok := explicitMonth(q.Year, q.Month); ok {
		w := MonthWindow(year, month)
		w.Period = PeriodCustom
		return w
	}

	y, m, d := today.Date()
	day := civil(y, m, d)

	switch Period(strings.ToLower(strings.TrimSpace(q.Period))) {
	case PeriodWeek:
		offset := (int(day.Weekday()) + 6) % 7 // days since Monday
		start := day.AddDate(0, 0, -offset)
		return Window{Start: start, End: start.AddDate(0, 0, 6), Period: PeriodWeek}
	case PeriodYear:
		return Window{Start: civil(y, time.January, 1), End: civil(y, time.December, 31), Period: PeriodYear}
	default:
		return MonthWindow(y, m)
	}
}

// MonthWindow is the whole calendar month.
func MonthWindow(year int, month time.Month) Window {
	start := civil(year, month, 1)
	return Window{Start: start, End: start.AddDate(0, 1, -1), Period: PeriodMonth}
}

func explicitMonth(yearStr, monthStr string) (int, time.Month, bool) {
	year, err := strconv.Atoi(strings.TrimSpace(yearStr))
	if err != nil || year < 1 || year > 9999 {
		return 0, 0, false
	}
	month, err := strconv.Atoi(strings.TrimSpace(monthStr))
	if err != nil || month < 1 || month > 12 {
		return 0, 0, false
	}
	return year, time.Month(month), true
}

func civil(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

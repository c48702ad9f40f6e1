package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
)

// recentTradeCount is how many trades the dashboard lists.
const recentTradeCount = 5

type windowResponse struct {
	Start  string       `json:"start"`
	End    string       `json:"end"`
	Period stats.Period `json:"period"`
}

func newWindowResponse(w stats.Window) windowResponse {
	return windowResponse{Start: w.StartKey(), End: w.EndKey(), Period: w.Period}
}

type dashboardResponse struct {
	Window       windowResponse         `json:"window"`
	Stats        stats.PerformanceStats `json:"stats"`
	EquityCurve  []stats.EquityPoint    `json:"equityCurve"`
	Outcomes     []stats.OutcomeSlice   `json:"outcomes"`
	RecentTrades []journal.Trade        `json:"recentTrades"`
}

func (s *Server) windowTrades(r *http.Request, w stats.Window) ([]journal.Trade, error) {
	return s.store.ListTradesBetween(r.Context(), userID(r), w.StartKey(), w.EndKey())
}

func (s *Server) dashboard(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	window := stats.ResolveWindow(stats.WindowQuery{
		Year:   q.Get("year"),
		Month:  q.Get("month"),
		Period: q.Get("period"),
	}, s.now())

	trades, err := s.windowTrades(r, window)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	perf := stats.Performance(trades)
	render.JSON(w, r, dashboardResponse{
		Window:       newWindowResponse(window),
		Stats:        perf,
		EquityCurve:  stats.EquityCurve(stats.SortChronological(trades)),
		Outcomes:     stats.OutcomeBreakdown(perf),
		RecentTrades: stats.RecentTrades(trades, recentTradeCount),
	})
}

type calendarResponse struct {
	Window   windowResponse                  `json:"window"`
	Calendar stats.MonthCalendar             `json:"calendar"`
	Daily    map[string]stats.DailyAggregate `json:"daily"`
}

// calendar shows one month; without a valid year and month it is the
// current one.
func (s *Server) calendar(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	window := stats.ResolveWindow(stats.WindowQuery{
		Year:   q.Get("year"),
		Month:  q.Get("month"),
		Period: string(stats.PeriodMonth),
	}, s.now())

	trades, err := s.windowTrades(r, window)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	daily := stats.DailyTotals(trades)
	render.JSON(w, r, calendarResponse{
		Window:   newWindowResponse(window),
		Calendar: stats.MonthGrid(window.Start.Year(), window.Start.Month(), daily),
		Daily:    daily,
	})
}

type dayResponse struct {
	stats.DailyAggregate
	Trades []journal.Trade `json:"trades"`
}

func (s *Server) calendarDay(w http.ResponseWriter, r *http.Request) {
	day := chi.URLParam(r, "day")
	if _, err := time.Parse(journal.DateLayout, day); err != nil {
		s.fail(w, r, errBadRequest("day must be a date formatted YYYY-MM-DD"))
		return
	}

	trades, err := s.store.ListTradesBetween(r.Context(), userID(r), day, day)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	agg := stats.DailyTotals(trades)[day]
	agg.Date = day
	render.JSON(w, r, dayResponse{DailyAggregate: agg, Trades: trades})
}

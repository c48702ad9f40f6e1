package stats

import (
	"cmp"
	"slices"

	"github.com/rustyeddy/tradejournal/journal"
)

// OutcomeSlice is one wedge of the outcome chart.
type OutcomeSlice struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// OutcomeBreakdown lists wins, losses and break-evens, leaving out empty ones.
func OutcomeBreakdown(s PerformanceStats) []OutcomeSlice {
	all := []OutcomeSlice{
		{Name: "Take", Value: s.Wins},
		{Name: "Loss", Value: s.Losses},
		{Name: "Break Even", Value: s.BreakEvens},
	}
	return slices.DeleteFunc(all, func(o OutcomeSlice) bool { return o.Value <= 0 })
}

// RecentTrades returns up to n trades, latest trade date first. Trades on the
// same day keep their relative order.
func RecentTrades(trades []journal.Trade, n int) []journal.Trade {
	out := slices.Clone(trades)
	slices.SortStableFunc(out, func(a, b journal.Trade) int {
		return cmp.Compare(DayKey(b.TradeDate), DayKey(a.TradeDate))
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	if out == nil {
		out = []journal.Trade{}
	}
	return out
}

// SortChronological returns a copy ordered by trade date, then by creation.
func SortChronological(trades []journal.Trade) []journal.Trade {
	out := slices.Clone(trades)
	slices.SortStableFunc(out, func(a, b journal.Trade) int {
		if c := cmp.Compare(DayKey(a.TradeDate), DayKey(b.TradeDate)); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	return out
}

const DefaultPerPage = 10

// Page is one page of the ledger.
type Page struct {
	Trades      []journal.Trade `json:"trades"`
	Page        int             `json:"page"`
	PerPage     int             `json:"perPage"`
	TotalPages  int             `json:"totalPages"`
	TotalTrades int             `json:"totalTrades"`
}

// Paginate slices trades into pages of perPage, clamping page into range.
// There is always at least one (possibly empty) page.
func Paginate(trades []journal.Trade, page, perPage int) Page {
	if perPage <= 0 {
		perPage = DefaultPerPage
	}
	p := Page{
		PerPage:     perPage,
		TotalTrades: len(trades),
		TotalPages:  max(1, (len(trades)+perPage-1)/perPage),
	}
	p.Page = min(max(page, 1), p.TotalPages)

	start := (p.Page - 1) * perPage
	end := min(start+perPage, len(trades))
	p.Trades = slices.Clone(trades[start:end])
	if p.Trades == nil {
		p.Trades = []journal.Trade{}
	}
	return p
}

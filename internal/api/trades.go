package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/rustyeddy/tradejournal/internal/auth"
	"github.com/rustyeddy/tradejournal/internal/id"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
)

// numberText accepts a JSON number or a numeric string and keeps its text.
type numberText string

func (n *numberText) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = numberText(strings.TrimSpace(s))
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("financialResult: %w", err)
	}
	*n = numberText(num.String())
	return nil
}

type tradeRequest struct {
	TradeDate       string     `json:"tradeDate" validate:"required,datetime=2006-01-02"`
	Asset           string     `json:"asset" validate:"required,max=64"`
	FinancialResult numberText `json:"financialResult" validate:"required,numeric"`
	ResultType      string     `json:"resultType" validate:"required,oneof=WIN LOSS BE"`
	RiskRewardRatio string     `json:"riskRewardRatio" validate:"max=32"`
	FollowedPlan    bool       `json:"followedPlan"`
	ImageURL        string     `json:"imageUrl" validate:"omitempty,url,max=2048"`
	Comment         string     `json:"comment" validate:"max=4000"`
	Emotions        string     `json:"emotions" validate:"max=4000"`
}

func (req tradeRequest) trade(userID, tid string) journal.Trade {
	return journal.Trade{
		ID:              tid,
		UserID:          userID,
		TradeDate:       req.TradeDate,
		Asset:           strings.TrimSpace(req.Asset),
		FinancialResult: string(req.FinancialResult),
		ResultType:      journal.ResultType(req.ResultType),
		RiskRewardRatio: strings.TrimSpace(req.RiskRewardRatio),
		FollowedPlan:    req.FollowedPlan,
		ImageURL:        strings.TrimSpace(req.ImageURL),
		Comment:         req.Comment,
		Emotions:        req.Emotions,
	}
}

// tradeID returns the {id} URL parameter. Values that are not ULIDs cannot
// name a stored trade and are reported as not found.
func tradeID(r *http.Request) (string, error) {
	v := chi.URLParam(r, "id")
	if !id.Valid(v) {
		return "", fmt.Errorf("trade %q: %w", v, journal.ErrNotFound)
	}
	return v, nil
}

func userID(r *http.Request) string {
	c, _ := auth.ClaimsFromContext(r.Context())
	return c.UserID
}

type tradeListResponse struct {
	stats.Page
	Metrics stats.PerformanceMetrics `json:"metrics"`
	Filter  journal.Filter           `json:"filter"`
}

// listTrades serves one ledger page. Metrics cover every trade matching the
// filter, not just the page.
func (s *Server) listTrades(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	f := journal.ParseFilter(q)

	trades, err := s.store.ListTrades(r.Context(), userID(r), f)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	render.JSON(w, r, tradeListResponse{
		Page:    stats.Paginate(trades, page, min(perPage, 100)),
		Metrics: stats.Ledger(trades),
		Filter:  f,
	})
}

func (s *Server) exportTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := s.store.ListTrades(r.Context(), userID(r), journal.ParseFilter(r.URL.Query()))
	if err != nil {
		s.fail(w, r, err)
		return
	}

	var buf bytes.Buffer
	if err := journal.WriteCSV(&buf, trades); err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trades.csv"`)
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) getTrade(w http.ResponseWriter, r *http.Request) {
	tid, err := tradeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	t, err := s.store.GetTrade(r.Context(), userID(r), tid)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, t)
}

func (s *Server) createTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if !s.decode(w, r, &req) {
		return
	}

	t := req.trade(userID(r), "")
	if err := s.store.SaveTrade(r.Context(), &t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.countWrite("create")

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, t)
}

func (s *Server) updateTrade(w http.ResponseWriter, r *http.Request) {
	tid, err := tradeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	var req tradeRequest
	if !s.decode(w, r, &req) {
		return
	}

	t := req.trade(userID(r), tid)
	if err := s.store.SaveTrade(r.Context(), &t); err != nil {
		s.fail(w, r, err)
		return
	}
	s.countWrite("update")

	// Re-read so the response carries the stored creation time.
	saved, err := s.store.GetTrade(r.Context(), t.UserID, t.ID)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	render.JSON(w, r, saved)
}

func (s *Server) deleteTrade(w http.ResponseWriter, r *http.Request) {
	tid, err := tradeID(r)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if err := s.store.DeleteTrade(r.Context(), userID(r), tid); err != nil {
		s.fail(w, r, err)
		return
	}
	s.countWrite("delete")
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) countWrite(op string) {
	if s.metrics != nil {
		s.metrics.tradeWritten(op)
	}
}

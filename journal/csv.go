package journal

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"id", "trade_date", "asset", "financial_result", "result_type", "risk_reward_ratio",
	"followed_plan", "image_url", "comment", "emotions",
}

// WriteCSV writes trades with a header row.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, t := range trades {
		err := cw.Write([]string{
			t.ID,
			t.TradeDate,
			t.Asset,
			t.FinancialResult,
			string(t.ResultType),
			t.RiskRewardRatio,
			strconv.FormatBool(t.FollowedPlan),
			t.ImageURL,
			t.Comment,
			t.Emotions,
		})
		if err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses trades written by WriteCSV. Columns are matched by header
// name so files with a subset or a different order still load; the id
// column is ignored and imported trades are stored as new.
func ReadCSV(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty csv")
		}
		return nil, err
	}
	col := map[string]int{}
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, required := range []string{"trade_date", "asset", "financial_result", "result_type"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("csv missing column %q", required)
		}
	}

	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var out []Trade
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}

		rt, ok := ParseResultType(get(row, "result_type"))
		if !ok {
			return nil, fmt.Errorf("line %d: invalid result_type %q", line, get(row, "result_type"))
		}
		date, ok := ParseTradeDate(get(row, "trade_date"))
		if !ok {
			return nil, fmt.Errorf("line %d: invalid trade_date %q", line, get(row, "trade_date"))
		}
		asset := get(row, "asset")
		if asset == "" {
			return nil, fmt.Errorf("line %d: asset is required", line)
		}
		followed, _ := strconv.ParseBool(get(row, "followed_plan"))

		out = append(out, Trade{
			TradeDate:       date,
			Asset:           asset,
			FinancialResult: get(row, "financial_result"),
			ResultType:      rt,
			RiskRewardRatio: get(row, "risk_reward_ratio"),
			FollowedPlan:    followed,
			ImageURL:        get(row, "image_url"),
			Comment:         get(row, "comment"),
			Emotions:        get(row, "emotions"),
		})
	}
	return out, nil
}

// ParseTradeDate reads a civil date and returns it as YYYY-MM-DD. Unpadded
// dates (2024-1-5) are accepted, and a timestamp keeps the date it was
// written with.
func ParseTradeDate(s string) (string, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{DateLayout, "2006-1-2"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(DateLayout), true
		}
	}
	if len(s) > len(DateLayout) && (s[len(DateLayout)] == 'T' || s[len(DateLayout)] == ' ') {
		if t, err := time.Parse(DateLayout, s[:len(DateLayout)]); err == nil {
			return t.Format(DateLayout), true
		}
	}
	return "", false
}

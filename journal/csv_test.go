package journal

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, csvHeader, rows[0])
}

func TestWriteCSVRows(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := WriteCSV(&buf, []Trade{{
		ID:              "T1",
		TradeDate:       "2024-01-02",
		Asset:           "EURUSD",
		FinancialResult: "-12.5",
		ResultType:      Loss,
		RiskRewardRatio: "1:2",
		FollowedPlan:    true,
		Comment:         "comma, inside",
	}})
	require.NoError(t, err)

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2)

	want := []string{"T1", "2024-01-02", "EURUSD", "-12.5", "LOSS", "1:2", "true", "", "comma, inside", ""}
	assert.Equal(t, want, rows[1])
}

func TestReadCSVRoundTrip(t *testing.T) {
	t.Parallel()

	in := []Trade{
		{ID: "T1", TradeDate: "2024-01-02", Asset: "EURUSD", FinancialResult: "10", ResultType: Win, RiskRewardRatio: "1:2", FollowedPlan: true},
		{ID: "T2", TradeDate: "2024-01-03", Asset: "GBPUSD", FinancialResult: "-5", ResultType: Loss, Emotions: "tilt"},
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, in))

	out, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, out, 2)

	for i := range in {
		want := in[i]
		want.ID = ""
		assert.Equal(t, want, out[i])
	}
}

func TestReadCSVColumnsByName(t *testing.T) {
	t.Parallel()

	data := "result_type,asset,trade_date,financial_result\nbe,WIN,2024-03-01,0\n"
	out, err := ReadCSV(strings.NewReader(data))
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, BreakEven, out[0].ResultType)
	assert.Equal(t, "WIN", out[0].Asset)
	assert.Equal(t, "2024-03-01", out[0].TradeDate)
}

func TestReadCSVErrors(t *testing.T) {
	t.Parallel()

	_, err := ReadCSV(strings.NewReader(""))
	assert.Error(t, err)

	_, err = ReadCSV(strings.NewReader("asset,trade_date\nX,2024-01-01\n"))
	assert.ErrorContains(t, err, "missing column")

	_, err = ReadCSV(strings.NewReader("trade_date,asset,financial_result,result_type\n2024-01-01,X,1,MAYBE\n"))
	assert.ErrorContains(t, err, "line 2")

	_, err = ReadCSV(strings.NewReader("trade_date,asset,financial_result,result_type\n2024-01-01,EURUSD,1,WIN\n15/01/2024,EURUSD,1,WIN\n"))
	assert.ErrorContains(t, err, "line 3: invalid trade_date")

	_, err = ReadCSV(strings.NewReader("trade_date,asset,financial_result,result_type\n2024-01-05,,5,WIN\n"))
	assert.ErrorContains(t, err, "line 2: asset is required")
}

func TestReadCSVNormalisesTradeDates(t *testing.T) {
	t.Parallel()

	in := "trade_date,asset,financial_result,result_type\n" +
		"2024-01-15T10:00:00Z,EURUSD,10,WIN\n" +
		"2024-1-5,GBPUSD,5,WIN\n" +
		"2024-01-20 09:30:00,USDJPY,-3,LOSS\n"
	trades, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	require.Len(t, trades, 3)
	assert.Equal(t, "2024-01-15", trades[0].TradeDate)
	assert.Equal(t, "2024-01-05", trades[1].TradeDate)
	assert.Equal(t, "2024-01-20", trades[2].TradeDate)
}

func TestImportedTradesLandInTheirDay(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()
	ctx := context.Background()

	in := "trade_date,asset,financial_result,result_type\n" +
		"2024-01-15T10:00:00Z,EURUSD,10,WIN\n" +
		"2024-1-5,GBPUSD,5,WIN\n"
	trades, err := ReadCSV(strings.NewReader(in))
	require.NoError(t, err)
	for i := range trades {
		trades[i].UserID = "u1"
		require.NoError(t, j.SaveTrade(ctx, &trades[i]))
	}

	day, err := j.ListTradesBetween(ctx, "u1", "2024-01-15", "2024-01-15")
	require.NoError(t, err)
	assert.Len(t, day, 1)

	month, err := j.ListTradesBetween(ctx, "u1", "2024-01-01", "2024-01-31")
	require.NoError(t, err)
	assert.Len(t, month, 2)
}

func TestParseTradeDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{"2024-03-15", "2024-03-15", true},
		{" 2024-3-5 ", "2024-03-05", true},
		{"2024-03-15T23:59:59-05:00", "2024-03-15", true},
		{"2024-02-30", "", false},
		{"2024-03-15junk", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseTradeDate(tt.in)
		assert.Equal(t, tt.ok, ok, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

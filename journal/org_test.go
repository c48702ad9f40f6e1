package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	trade := Trade{
		ID:              "01HQZX3M4N5P6Q7R8S9TABCDEF",
		TradeDate:       "2024-03-15",
		Asset:           "EURUSD",
		FinancialResult: "250.00",
		ResultType:      Win,
		RiskRewardRatio: "1:2",
		FollowedPlan:    true,
		Comment:         "waited for retest",
		Emotions:        "confident",
	}

	result := FormatTradeOrg(trade)

	assert.True(t, strings.HasPrefix(result, "** 2024-03-15 EURUSD WIN (9TABCDEF)\n"))
	assert.Contains(t, result, ":ID: 01HQZX3M4N5P6Q7R8S9TABCDEF")
	assert.Contains(t, result, ":ASSET: EURUSD")
	assert.Contains(t, result, ":RESULT: 250.00")
	assert.Contains(t, result, ":RESULT_TYPE: WIN")
	assert.Contains(t, result, ":RR: 1:2")
	assert.Contains(t, result, ":FOLLOWED_PLAN: true")
	assert.NotContains(t, result, ":IMAGE:")
	assert.Contains(t, result, "- waited for retest")
	assert.Contains(t, result, "- confident")
}

func TestFormatTradeOrgStructure(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(Trade{ID: "short", TradeDate: "2024-01-01", Asset: "X", ResultType: Loss})
	lines := strings.Split(result, "\n")
	require.Greater(t, len(lines), 8)

	assert.Equal(t, "** 2024-01-01 X LOSS (short)", lines[0])
	assert.Equal(t, ":PROPERTIES:", lines[1])

	end, comment, emotions := -1, -1, -1
	for i, line := range lines {
		switch line {
		case ":END:":
			end = i
		case "*** Comment":
			comment = i
		case "*** Emotions":
			emotions = i
		}
	}
	assert.Greater(t, end, 1)
	assert.Greater(t, comment, end)
	assert.Greater(t, emotions, comment)
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	assert.Empty(t, FormatTradesOrg(nil))

	single := FormatTradesOrg([]Trade{{ID: "a", Asset: "X"}})
	assert.NotContains(t, single, "\n\n\n")

	two := FormatTradesOrg([]Trade{{ID: "a", Asset: "X"}, {ID: "b", Asset: "Y"}})
	assert.Len(t, strings.Split(two, "\n\n\n"), 2)
}

func TestShortID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "ulid keeps the random tail", input: "01HQZX3M4N5P6Q7R8S9TABCDEF", expected: "9TABCDEF"},
		{name: "exactly 8 characters", input: "12345678", expected: "12345678"},
		{name: "less than 8 characters", input: "short", expected: "short"},
		{name: "empty string", input: "", expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, shortID(tt.input))
		})
	}
}

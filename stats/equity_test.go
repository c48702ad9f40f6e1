package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestEquityCurve(t *testing.T) {
	t.Parallel()

	curve := EquityCurve([]journal.Trade{
		trade("2024-01-01", "100", journal.Win, ""),
		trade("2024-01-02", "-30", journal.Loss, ""),
		trade("2024-01-03", "junk", journal.Win, ""),
		trade("2024-01-04", "5.5", journal.Win, ""),
	})

	assert.Equal(t, []EquityPoint{
		{Label: "Trade 1", Cumulative: 100},
		{Label: "Trade 2", Cumulative: 70},
		{Label: "Trade 3", Cumulative: 70},
		{Label: "Trade 4", Cumulative: 75.5},
	}, curve)
}

func TestEquityCurveEmpty(t *testing.T) {
	t.Parallel()

	curve := EquityCurve(nil)
	assert.NotNil(t, curve)
	assert.Empty(t, curve)
}

func TestEquityCurveFollowsInputOrder(t *testing.T) {
	t.Parallel()

	late := trade("2024-01-09", "-10", journal.Loss, "")
	early := trade("2024-01-01", "50", journal.Win, "")

	curve := EquityCurve([]journal.Trade{late, early})
	assert.Equal(t, -10.0, curve[0].Cumulative)
	assert.Equal(t, 40.0, curve[1].Cumulative)

	sorted := EquityCurve(SortChronological([]journal.Trade{late, early}))
	assert.Equal(t, 50.0, sorted[0].Cumulative)
	assert.Equal(t, 40.0, sorted[1].Cumulative)
}

func TestEquityCurveFreshSlicePerCall(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{trade("2024-01-01", "1", journal.Win, "")}
	a := EquityCurve(trades)
	b := EquityCurve(trades)
	a[0].Cumulative = 99
	assert.Equal(t, 1.0, b[0].Cumulative)
}

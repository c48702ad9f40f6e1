package stats

import (
	"strings"

	"github.com/shopspring/decimal"
)

// amount parses a financial result. Anything that is not a plain decimal
// number counts as zero and ok is false.
func amount(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// splitRatio splits "risk:reward". ok is false when there is no colon.
func splitRatio(ratio string) (risk, reward string, ok bool) {
	risk, reward, ok = strings.Cut(strings.TrimSpace(ratio), ":")
	return strings.TrimSpace(risk), strings.TrimSpace(reward), ok
}

// rewardOf returns the reward component of a "risk:reward" ratio.
func rewardOf(ratio string) (decimal.Decimal, bool) {
	_, reward, ok := splitRatio(ratio)
	if !ok {
		return decimal.Zero, false
	}
	return amount(reward)
}

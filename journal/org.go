package journal

import (
	"fmt"
	"strings"
)

// FormatTradeOrg renders a trade as an Org-mode entry: facts in a PROPERTIES
// drawer, free text under Comment and Emotions headings.
func FormatTradeOrg(t Trade) string {
	var b strings.Builder
	fmt.Fprintf(&b, "** %s %s %s (%s)\n", t.TradeDate, t.Asset, t.ResultType, shortID(t.ID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":ID: %s\n", t.ID)
	fmt.Fprintf(&b, ":TRADE_DATE: %s\n", t.TradeDate)
	fmt.Fprintf(&b, ":ASSET: %s\n", t.Asset)
	fmt.Fprintf(&b, ":RESULT: %s\n", t.FinancialResult)
	fmt.Fprintf(&b, ":RESULT_TYPE: %s\n", t.ResultType)
	if t.RiskRewardRatio != "" {
		fmt.Fprintf(&b, ":RR: %s\n", t.RiskRewardRatio)
	}
	fmt.Fprintf(&b, ":FOLLOWED_PLAN: %t\n", t.FollowedPlan)
	if t.ImageURL != "" {
		fmt.Fprintf(&b, ":IMAGE: %s\n", t.ImageURL)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	fmt.Fprintf(&b, "*** Comment\n- %s\n\n", t.Comment)
	fmt.Fprintf(&b, "*** Emotions\n- %s\n", t.Emotions)

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

// shortID keeps the tail of a ULID; the head is the timestamp and repeats
// for trades logged together.
func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[len(full)-8:]
}

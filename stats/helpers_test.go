package stats

import "github.com/rustyeddy/tradejournal/journal"

func trade(date, result string, rt journal.ResultType, rr string) journal.Trade {
	return journal.Trade{
		ID:              date + "/" + result + "/" + string(rt),
		TradeDate:       date,
		Asset:           "WIN",
		FinancialResult: result,
		ResultType:      rt,
		RiskRewardRatio: rr,
	}
}

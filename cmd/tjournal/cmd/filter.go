package cmd

import (
	"net/url"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

// filterFlags are the ledger filters shared by list, ledger and export.
type filterFlags struct {
	from, to     string
	asset        string
	resultTypes  string
	followedPlan string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.from, "from", "", "first trade date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.to, "to", "", "last trade date, YYYY-MM-DD")
	cmd.Flags().StringVar(&f.asset, "asset", "", "asset substring, case-insensitive")
	cmd.Flags().StringVar(&f.resultTypes, "type", "", "result types, comma separated (WIN,LOSS,BE)")
	cmd.Flags().StringVar(&f.followedPlan, "plan", "", "followed plan (sim|nao)")
}

// filter goes through the same parser as the HTTP query string.
func (f *filterFlags) filter() journal.Filter {
	v := url.Values{}
	v.Set("startDate", f.from)
	v.Set("endDate", f.to)
	v.Set("asset", f.asset)
	v.Set("resultType", f.resultTypes)
	v.Set("followedPlan", f.followedPlan)
	return journal.ParseFilter(v)
}

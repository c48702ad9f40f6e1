package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/stats"
)

var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Show a page of the filtered ledger with its metrics",
	Long: `Show filtered trades, newest first, ten to a page, followed by metrics
over every trade that matches the filter.

Example:
  tjournal -u me@example.com ledger --asset eur --type WIN,LOSS --page 2`,
	Args: cobra.NoArgs,
	RunE: runLedger,
}

var (
	ledgerFilter  filterFlags
	ledgerPage    int
	ledgerPerPage int
)

func init() {
	rootCmd.AddCommand(ledgerCmd)
	ledgerFilter.register(ledgerCmd)
	ledgerCmd.Flags().IntVar(&ledgerPage, "page", 1, "page number")
	ledgerCmd.Flags().IntVar(&ledgerPerPage, "per-page", stats.DefaultPerPage, "trades per page")
}

func runLedger(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	u, err := currentUser(ctx, j)
	if err != nil {
		return err
	}

	trades, err := j.ListTrades(ctx, u.ID, ledgerFilter.filter())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	out := cmd.OutOrStdout()
	page := stats.Paginate(trades, ledgerPage, ledgerPerPage)
	if err := printTrades(out, page.Trades); err != nil {
		return err
	}
	fmt.Fprintf(out, "Page %d of %d (%d trades)\n\n", page.Page, page.TotalPages, page.TotalTrades)
	printMetrics(out, stats.Ledger(trades))
	return nil
}

func printMetrics(out io.Writer, m stats.PerformanceMetrics) {
	fmt.Fprintf(out, "  Result:        %.2f\n", m.TotalResult)
	fmt.Fprintf(out, "  Win rate:      %.1f%%\n", m.WinRate)
	fmt.Fprintf(out, "  Loss rate:     %.1f%%\n", m.LossRate)
	fmt.Fprintf(out, "  Payoff ratio:  %.2f\n", m.PayoffRatio)
	fmt.Fprintf(out, "  Average trade: %.2f\n", m.AverageTrade)
}

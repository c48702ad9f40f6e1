package cmd

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/stats"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show performance statistics for a period",
	Long: `Show the dashboard numbers for the current week, month or year, or for
an explicit month.

Examples:
  tjournal -u me@example.com stats --period week
  tjournal -u me@example.com stats --year 2024 --month 3`,
	Args: cobra.NoArgs,
	RunE: runStats,
}

var statsWindow windowFlags

// windowFlags mirror the dashboard's period, year and month query.
type windowFlags struct {
	period      string
	year, month int
}

func (w *windowFlags) register(cmd *cobra.Command, defaultPeriod string) {
	cmd.Flags().StringVar(&w.period, "period", defaultPeriod, "week, month or year")
	cmd.Flags().IntVar(&w.year, "year", 0, "explicit year (with --month)")
	cmd.Flags().IntVar(&w.month, "month", 0, "explicit month 1-12 (with --year)")
}

func (w *windowFlags) resolve(today time.Time) stats.Window {
	q := stats.WindowQuery{Period: w.period}
	if w.year != 0 || w.month != 0 {
		q.Year = strconv.Itoa(w.year)
		q.Month = strconv.Itoa(w.month)
	}
	return stats.ResolveWindow(q, today)
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsWindow.register(statsCmd, string(stats.PeriodMonth))
}

func runStats(cmd *cobra.Command, args []string) error {
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

	w := statsWindow.resolve(time.Now())
	trades, err := j.ListTradesBetween(ctx, u.ID, w.StartKey(), w.EndKey())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printPerformance(cmd.OutOrStdout(), w, stats.Performance(trades))
	return nil
}

func printPerformance(out io.Writer, w stats.Window, p stats.PerformanceStats) {
	fmt.Fprintf(out, "Period %s: %s to %s\n", w.Period, w.StartKey(), w.EndKey())
	fmt.Fprintf(out, "  Result:      %.2f\n", p.TotalResult)
	fmt.Fprintf(out, "  Trades:      %d (%d win, %d loss, %d break even)\n", p.TotalTrades, p.Wins, p.Losses, p.BreakEvens)
	fmt.Fprintf(out, "  Win rate:    %.1f%%\n", p.WinRate)
	fmt.Fprintf(out, "  Total R:     %.2f\n", p.TotalRR)
	if p.Malformed > 0 {
		fmt.Fprintf(out, "  Unreadable:  %d trade results counted as 0\n", p.Malformed)
	}
	for _, o := range stats.OutcomeBreakdown(p) {
		fmt.Fprintf(out, "  %-12s %d\n", o.Name+":", o.Value)
	}

	curve := stats.EquityCurve(stats.SortChronological(p.Trades))
	if n := len(curve); n > 0 {
		fmt.Fprintf(out, "  Equity:      %.2f after %s\n", curve[n-1].Cumulative, curve[n-1].Label)
	}
}

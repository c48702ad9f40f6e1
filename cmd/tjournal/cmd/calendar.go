package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/stats"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Print a month's daily results as a calendar",
	Long: `Print a Sunday-first month calendar with the result and trade count of
each day. Without --year and --month the current month is shown.

Example:
  tjournal -u me@example.com calendar --year 2024 --month 3`,
	Args: cobra.NoArgs,
	RunE: runCalendar,
}

var calendarYear, calendarMonth int

func init() {
	rootCmd.AddCommand(calendarCmd)
	calendarCmd.Flags().IntVar(&calendarYear, "year", 0, "year")
	calendarCmd.Flags().IntVar(&calendarMonth, "month", 0, "month 1-12")
}

func runCalendar(cmd *cobra.Command, args []string) error {
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

	wf := windowFlags{period: string(stats.PeriodMonth), year: calendarYear, month: calendarMonth}
	w := wf.resolve(time.Now())
	trades, err := j.ListTradesBetween(ctx, u.ID, w.StartKey(), w.EndKey())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	printCalendar(cmd.OutOrStdout(), stats.MonthGrid(w.Start.Year(), w.Start.Month(), stats.DailyTotals(trades)))
	return nil
}

const calendarCell = 11

func printCalendar(out io.Writer, cal stats.MonthCalendar) {
	fmt.Fprintf(out, "%s %d\n", cal.Month, cal.Year)
	for _, d := range []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"} {
		fmt.Fprintf(out, "%-*s", calendarCell, d)
	}
	fmt.Fprintln(out)

	for _, week := range cal.Weeks {
		var days, results strings.Builder
		for _, d := range week {
			if !d.InMonth {
				fmt.Fprintf(&days, "%-*s", calendarCell, "")
				fmt.Fprintf(&results, "%-*s", calendarCell, "")
				continue
			}
			fmt.Fprintf(&days, "%-*d", calendarCell, d.Day)
			if d.TradeCount > 0 {
				fmt.Fprintf(&results, "%-*s", calendarCell, fmt.Sprintf("%+.2f/%d", d.TotalResult, d.TradeCount))
			} else {
				fmt.Fprintf(&results, "%-*s", calendarCell, "")
			}
		}
		fmt.Fprintln(out, strings.TrimRight(days.String(), " "))
		fmt.Fprintln(out, strings.TrimRight(results.String(), " "))
	}
	fmt.Fprintf(out, "Month: %.2f over %d trades\n", cal.TotalResult, cal.TradeCount)
}

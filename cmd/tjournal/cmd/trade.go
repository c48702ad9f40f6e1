package cmd

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var tradeCmd = &cobra.Command{
	Use:   "trade",
	Short: "Add, list, show and delete trades",
	Long: `Manage the trades of the user given by --user.

Subcommands:
  add     - Record a trade
  list    - List trades, newest first
  show    - Show one trade as an Org-mode entry
  delete  - Remove a trade

Examples:
  tjournal -u me@example.com trade add --asset EURUSD --result 150 --type WIN --rr 1:3 --plan
  tjournal -u me@example.com trade list --from 2024-03-01 --type WIN,BE
  tjournal -u me@example.com trade show 01HQ...`,
}

var tradeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a trade",
	Args:  cobra.NoArgs,
	RunE:  runTradeAdd,
}

var tradeListCmd = &cobra.Command{
	Use:   "list",
	Short: "List trades, newest first",
	Args:  cobra.NoArgs,
	RunE:  runTradeList,
}

var tradeShowCmd = &cobra.Command{
	Use:   "show <trade-id>",
	Short: "Show one trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeShow,
}

var tradeDeleteCmd = &cobra.Command{
	Use:   "delete <trade-id>",
	Short: "Delete a trade",
	Args:  cobra.ExactArgs(1),
	RunE:  runTradeDelete,
}

var (
	tradeAdd struct {
		date, asset, result, resultType, rr string
		plan                                bool
		image, comment, emotions            string
	}
	tradeListFilter filterFlags
)

func init() {
	rootCmd.AddCommand(tradeCmd)
	tradeCmd.AddCommand(tradeAddCmd)
	tradeCmd.AddCommand(tradeListCmd)
	tradeCmd.AddCommand(tradeShowCmd)
	tradeCmd.AddCommand(tradeDeleteCmd)

	f := tradeAddCmd.Flags()
	f.StringVar(&tradeAdd.date, "date", "", "trade date, YYYY-MM-DD (default today)")
	f.StringVar(&tradeAdd.asset, "asset", "", "traded asset (required)")
	f.StringVar(&tradeAdd.result, "result", "", "financial result, signed (required)")
	f.StringVar(&tradeAdd.resultType, "type", "", "result type: WIN, LOSS or BE (required)")
	f.StringVar(&tradeAdd.rr, "rr", "", "risk:reward ratio, e.g. 1:3")
	f.BoolVar(&tradeAdd.plan, "plan", false, "the trading plan was followed")
	f.StringVar(&tradeAdd.image, "image", "", "chart image URL")
	f.StringVar(&tradeAdd.comment, "comment", "", "comment")
	f.StringVar(&tradeAdd.emotions, "emotions", "", "emotions during the trade")
	_ = tradeAddCmd.MarkFlagRequired("asset")
	_ = tradeAddCmd.MarkFlagRequired("result")
	_ = tradeAddCmd.MarkFlagRequired("type")

	tradeListFilter.register(tradeListCmd)
}

func runTradeAdd(cmd *cobra.Command, args []string) error {
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

	date := tradeAdd.date
	if date == "" {
		date = time.Now().Format(journal.DateLayout)
	}
	if _, err := time.Parse(journal.DateLayout, date); err != nil {
		return fmt.Errorf("--date: %w", err)
	}
	if _, err := decimal.NewFromString(strings.TrimSpace(tradeAdd.result)); err != nil {
		return fmt.Errorf("--result %q is not a number", tradeAdd.result)
	}
	rt, ok := journal.ParseResultType(tradeAdd.resultType)
	if !ok {
		return fmt.Errorf("--type must be WIN, LOSS or BE, got %q", tradeAdd.resultType)
	}

	t := journal.Trade{
		UserID:          u.ID,
		TradeDate:       date,
		Asset:           strings.TrimSpace(tradeAdd.asset),
		FinancialResult: strings.TrimSpace(tradeAdd.result),
		ResultType:      rt,
		RiskRewardRatio: strings.TrimSpace(tradeAdd.rr),
		FollowedPlan:    tradeAdd.plan,
		ImageURL:        tradeAdd.image,
		Comment:         tradeAdd.comment,
		Emotions:        tradeAdd.emotions,
	}
	if err := j.SaveTrade(ctx, &t); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Recorded trade %s\n", t.ID)
	return nil
}

func runTradeList(cmd *cobra.Command, args []string) error {
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

	trades, err := j.ListTrades(ctx, u.ID, tradeListFilter.filter())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}
	return printTrades(cmd.OutOrStdout(), trades)
}

func runTradeShow(cmd *cobra.Command, args []string) error {
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

	t, err := j.GetTrade(ctx, u.ID, args[0])
	if err != nil {
		return fmt.Errorf("get trade: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
	return nil
}

func runTradeDelete(cmd *cobra.Command, args []string) error {
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

	if err := j.DeleteTrade(ctx, u.ID, args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Deleted trade %s\n", args[0])
	return nil
}

func printTrades(w io.Writer, trades []journal.Trade) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tASSET\tRESULT\tTYPE\tRR\tPLAN")
	for _, t := range trades {
		plan := "nao"
		if t.FollowedPlan {
			plan = "sim"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.TradeDate, t.Asset, t.FinancialResult, t.ResultType, t.RiskRewardRatio, plan)
	}
	return tw.Flush()
}

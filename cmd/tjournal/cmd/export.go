package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export trades as CSV or Org-mode",
	Long: `Write the filtered trades, newest first, to a file or stdout.

Examples:
  tjournal -u me@example.com export -o trades.csv
  tjournal -u me@example.com export --format org --from 2024-03-01`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file.csv>",
	Short: "Import trades from a CSV export",
	Long: `Read trades from a CSV file with the columns written by export. Every row
becomes a new trade of the --user; the id column is ignored.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var (
	exportFilter filterFlags
	exportOutput string
	exportFormat string
)

func init() {
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	exportFilter.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")
	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "csv or org")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != "csv" && exportFormat != "org" {
		return fmt.Errorf("--format must be csv or org, got %q", exportFormat)
	}

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

	trades, err := j.ListTrades(ctx, u.ID, exportFilter.filter())
	if err != nil {
		return fmt.Errorf("query trades: %w", err)
	}

	var out io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}
		defer f.Close()
		out = f
	}

	if exportFormat == "org" {
		_, err = fmt.Fprintln(out, journal.FormatTradesOrg(trades))
	} else {
		err = journal.WriteCSV(out, trades)
	}
	if err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "✓ Exported %d trades to %s\n", len(trades), exportOutput)
	}
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	trades, err := journal.ReadCSV(f)
	if err != nil {
		return fmt.Errorf("read csv: %w", err)
	}

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

	for i := range trades {
		trades[i].ID = ""
		trades[i].UserID = u.ID
		if err := j.SaveTrade(ctx, &trades[i]); err != nil {
			return fmt.Errorf("import row %d: %w", i+1, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Imported %d trades\n", len(trades))
	return nil
}

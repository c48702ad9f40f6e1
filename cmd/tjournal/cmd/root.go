package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/journal"
)

var rootCmd = &cobra.Command{
	Use:   "tjournal",
	Short: "A trading journal with performance statistics",
	Long: `tjournal records trades and reports on them.

It provides tools for:
  - Serving the journal API (dashboard, calendar, ledger)
  - Adding, listing and removing trades from the command line
  - Performance statistics for a week, month or year
  - A monthly P&L calendar and a filterable ledger
  - CSV import and CSV or Org-mode export
  - Managing users and their subscription status

Settings come from a YAML config file, a .env file and TJ_* environment
variables, in increasing order of precedence.`,
	SilenceUsage: true,
}

var (
	cfgFile   string
	dbPath    string
	userEmail string
)

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (YAML or JSON)")
	rootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "path to SQLite journal DB (overrides config)")
	rootCmd.PersistentFlags().StringVarP(&userEmail, "user", "u", "", "email of the journal owner")
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	return cfg, nil
}

func openStore() (*journal.SQLite, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	return j, nil
}

// currentUser resolves the --user flag to a stored user.
func currentUser(ctx context.Context, j journal.Store) (journal.User, error) {
	if userEmail == "" {
		return journal.User{}, errors.New("--user is required")
	}
	u, err := j.GetUserByEmail(ctx, userEmail)
	if errors.Is(err, journal.ErrNotFound) {
		return journal.User{}, fmt.Errorf("no user with email %q (create one with 'tjournal user add')", userEmail)
	}
	if err != nil {
		return journal.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

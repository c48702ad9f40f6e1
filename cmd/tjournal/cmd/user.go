package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/internal/auth"
	"github.com/rustyeddy/tradejournal/journal"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage journal users",
	Long: `Create users and set their subscription status. Only users whose
subscription is active or trialing can reach the dashboard API.

Examples:
  TJ_PASSWORD=secret123 tjournal user add --email me@example.com --name Me
  tjournal user subscription me@example.com active`,
}

var userAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a user",
	Long: `Create a user. The password is read from --password or, when that is
empty, from the TJ_PASSWORD environment variable.`,
	Args: cobra.NoArgs,
	RunE: runUserAdd,
}

var userSubscriptionCmd = &cobra.Command{
	Use:   "subscription <email> <status>",
	Short: "Set a user's subscription status",
	Long: `Set the subscription status of a user. Known statuses:
  active, trialing, canceled, unpaid, incomplete_expired`,
	Args: cobra.ExactArgs(2),
	RunE: runUserSubscription,
}

var userAdd struct {
	email, name, password, status string
}

var knownStatuses = map[string]bool{
	journal.SubscriptionActive:   true,
	journal.SubscriptionTrialing: true,
	journal.SubscriptionCanceled: true,
	journal.SubscriptionUnpaid:   true,
	journal.SubscriptionExpired:  true,
}

func init() {
	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userAddCmd)
	userCmd.AddCommand(userSubscriptionCmd)

	f := userAddCmd.Flags()
	f.StringVar(&userAdd.email, "email", "", "email address (required)")
	f.StringVar(&userAdd.name, "name", "", "display name")
	f.StringVar(&userAdd.password, "password", "", "password (or TJ_PASSWORD)")
	f.StringVar(&userAdd.status, "status", "", "initial subscription status")
	_ = userAddCmd.MarkFlagRequired("email")
}

func runUserAdd(cmd *cobra.Command, args []string) error {
	if userAdd.status != "" && !knownStatuses[userAdd.status] {
		return fmt.Errorf("unknown subscription status %q", userAdd.status)
	}
	password := userAdd.password
	if password == "" {
		password = os.Getenv("TJ_PASSWORD")
	}
	if password == "" {
		return errors.New("a password is required (--password or TJ_PASSWORD)")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	j, err := journal.NewSQLite(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer j.Close()

	u := journal.User{
		Email:              userAdd.email,
		Name:               userAdd.name,
		PasswordHash:       hash,
		SubscriptionStatus: userAdd.status,
	}
	if err := j.CreateUser(cmd.Context(), &u); err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created user %s (%s)\n", u.Email, u.ID)
	return nil
}

func runUserSubscription(cmd *cobra.Command, args []string) error {
	email, status := args[0], args[1]
	if !knownStatuses[status] {
		return fmt.Errorf("unknown subscription status %q", status)
	}

	ctx := cmd.Context()
	j, err := openStore()
	if err != nil {
		return err
	}
	defer j.Close()

	u, err := j.GetUserByEmail(ctx, email)
	if err != nil {
		return fmt.Errorf("get user: %w", err)
	}
	if err := j.UpdateSubscription(ctx, u.ID, status); err != nil {
		return err
	}

	access := "no access"
	if journal.SubscriptionGrantsAccess(status) {
		access = "dashboard access"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ %s is now %s (%s)\n", u.Email, status, access)
	return nil
}

package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

// accountsCmd represents the accounts command
var accountsCmd = &cobra.Command{
	Use:   "accounts",
	Short: "List accounts with their current balance",
	RunE:  runAccounts,
}

func init() {
	rootCmd.AddCommand(accountsCmd)
}

func runAccounts(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	accounts, err := client.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	if len(accounts) == 0 {
		fmt.Println("No accounts found.")
		return nil
	}

	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-30s %-30s %s\n", "ID", "NAME", "CURRENT BALANCE")
	fmt.Println(strings.Repeat("-", 80))

	for _, account := range accounts {
		balanceText := "n/a"
		balances, err := client.GetBalances(ctx, account.ID)
		if err != nil {
			logger.Warn().Err(err).Str("account_id", account.ID).Msg("Failed to get balances")
		} else if current, ok := balances.Current(); ok {
			balanceText = fmt.Sprintf("%.2f %s", current.Amount, current.Currency)
		}

		fmt.Printf("%-30s %-30s %s\n", account.ID, account.Name, balanceText)
	}

	return nil
}

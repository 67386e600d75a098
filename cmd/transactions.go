package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mdupuis/bankfetch/banking"
	"github.com/mdupuis/bankfetch/filter"
)

var (
	filterExpr string
	verify     bool
)

// transactionsCmd represents the transactions command
var transactionsCmd = &cobra.Command{
	Use:   "transactions <account-id>",
	Short: "List the transactions of an account",
	Long: `List the transactions of one account, optionally narrowed by a filter
expression and checked against the account's current balance.

Filter expressions see the transaction fields and a few helpers:

  bankfetch transactions acct_123 --filter 'Amount < 0'
  bankfetch transactions acct_123 --filter 'contains(Description, "atm")'`,
	Args: cobra.ExactArgs(1),
	RunE: runTransactions,
}

func init() {
	rootCmd.AddCommand(transactionsCmd)

	transactionsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	transactionsCmd.Flags().BoolVar(&verify, "verify", false, "check the balance against the transaction sum")
}

func runTransactions(cmd *cobra.Command, args []string) error {
	accountID := args[0]

	var txFilter *filter.Filter
	if filterExpr != "" {
		var err error
		txFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	transactions, err := client.GetTransactions(ctx, accountID)
	if err != nil {
		return fmt.Errorf("failed to get transactions: %w", err)
	}

	shown := transactions
	if txFilter != nil {
		shown = txFilter.Apply(transactions)
	}

	if len(shown) == 0 {
		fmt.Println("No transactions found matching the criteria.")
	} else {
		fmt.Println(strings.Repeat("-", 80))
		fmt.Printf("%-12s %-12s %s\n", "AMOUNT", "DATE", "DESCRIPTION")
		fmt.Println(strings.Repeat("-", 80))
		for _, tx := range shown {
			fmt.Printf("%-12.2f %-12s %s\n", tx.Amount, tx.Field("date"), tx.Field("description"))
		}
		fmt.Printf("\n%d of %d transactions shown\n", len(shown), len(transactions))
	}

	if verify {
		balances, err := client.GetBalances(ctx, accountID)
		if err != nil {
			return fmt.Errorf("failed to get balances: %w", err)
		}
		// The check runs over all transactions, not the filtered view
		if err := banking.VerifyConsistency(balances, transactions); err != nil {
			return fmt.Errorf("consistency check failed: %w", err)
		}
		fmt.Println("✓ Balance matches the transaction sum")
	}

	return nil
}

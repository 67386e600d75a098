package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdupuis/bankfetch/banking"
)

var outputPath string

// collectCmd represents the collect command
var collectCmd = &cobra.Command{
	Use:   "collect",
	Short: "Collect all banking data into one aggregated snapshot",
	Long: `Authenticate, then fetch identity, all accounts, and the balances and
transactions of every account, merged into one nested JSON document.
An account whose balances or transactions cannot be fetched is kept in
the result with an error marker instead of failing the whole run.`,
	RunE: runCollect,
}

func init() {
	rootCmd.AddCommand(collectCmd)

	collectCmd.Flags().StringVarP(&outputPath, "output", "o", "", "write the snapshot to a file instead of stdout")
}

func runCollect(cmd *cobra.Command, args []string) error {
	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	collector := banking.NewCollector(client, logger,
		banking.WithCollectConcurrency(cfg.Collect.Concurrency))

	logger.Info().Str("mode", client.Mode().String()).Msg("Collecting banking data")

	result, err := collector.CollectAll(ctx)
	if err != nil {
		return fmt.Errorf("collection failed: %w", err)
	}

	var failed int
	for _, account := range result.Accounts {
		if account.Error != nil {
			failed++
		}
	}
	if failed > 0 {
		logger.Warn().Int("failed_accounts", failed).Msg("Some accounts could not be fully collected")
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	data = append(data, '\n')

	target := outputPath
	if target == "" {
		target = cfg.Collect.Output
	}
	if target == "" {
		_, err = os.Stdout.Write(data)
		return err
	}

	if err := os.WriteFile(target, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	fmt.Printf("Data saved to %s\n", target)
	return nil
}

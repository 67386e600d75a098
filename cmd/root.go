package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/mdupuis/bankfetch/banking"
	"github.com/mdupuis/bankfetch/config"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "bankfetch",
	Short: "A tool to fetch banking data over the DSP2/STET API",
	Long: `bankfetch is a CLI tool that authenticates against a DSP2/STET banking
data service and retrieves identity, account, balance and transaction
data, either per resource or aggregated into one snapshot.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information from build flags
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", version, buildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and logger
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)
	return nil
}

// newClient creates a banking client from the loaded configuration.
// Callers own the client and must Close it on every exit path.
func newClient() (*banking.Client, error) {
	mode := banking.ModeBlocking
	if cfg.Banking.Mode == "concurrent" {
		mode = banking.ModeConcurrent
	}

	client, err := banking.NewClient(
		cfg.Banking.URL,
		cfg.Banking.Username,
		cfg.Banking.Password,
		logger,
		banking.WithMode(mode),
		banking.WithTimeout(cfg.Banking.Timeout),
		banking.WithConcurrency(cfg.Collect.Concurrency),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create banking client: %w", err)
	}
	return client, nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only on a real terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection and credentials against the banking API",
	Long:  `Authenticate against the configured banking service and display basic information.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	fmt.Printf("Testing connection to %s...\n", cfg.Banking.URL)

	client, err := newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx := context.Background()
	if err := client.Authenticate(ctx); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}
	fmt.Println("✓ Authentication successful!")

	identity, err := client.GetIdentity(ctx)
	if err != nil {
		return fmt.Errorf("failed to get identity: %w", err)
	}

	accounts, err := client.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to get accounts: %w", err)
	}

	fmt.Printf("\nBanking service statistics:\n")
	if first, ok := identity["first_name"].(string); ok {
		last, _ := identity["last_name"].(string)
		fmt.Printf("- Identity: %s %s\n", first, last)
	}
	fmt.Printf("- Total accounts: %d\n", len(accounts))
	fmt.Printf("- Execution mode: %s\n", client.Mode())

	return nil
}

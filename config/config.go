package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load loads the configuration from file. Values can be overridden with
// BANKFETCH_* environment variables (BANKFETCH_BANKING_PASSWORD keeps
// the secret out of the config file); a .env file in the working
// directory is picked up if present.
func Load(configPath string) (*Config, error) {
	// Best effort, credentials may live in a .env file
	_ = godotenv.Load()

	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix("BANKFETCH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Look for config in standard locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		// Check current directory first
		v.AddConfigPath(".")

		// Check home directory
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".bankfetch"))
		}

		// Check /etc
		v.AddConfigPath("/etc/bankfetch/")
	}

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil, fmt.Errorf("config file not found: %w", err)
		}
		return nil, fmt.Errorf("error reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Banking defaults
	v.SetDefault("banking.mode", "blocking")
	v.SetDefault("banking.timeout", "30s")

	// Collect defaults
	v.SetDefault("collect.concurrency", 4)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.Banking.URL == "" {
		return fmt.Errorf("banking.url is required")
	}

	if cfg.Banking.Username == "" {
		return fmt.Errorf("banking.username is required")
	}

	if cfg.Banking.Password == "" {
		return fmt.Errorf("banking.password is required (config file or BANKFETCH_BANKING_PASSWORD)")
	}

	validModes := map[string]bool{
		"blocking":   true,
		"concurrent": true,
	}
	if !validModes[cfg.Banking.Mode] {
		return fmt.Errorf("invalid banking.mode: %s (must be 'blocking' or 'concurrent')", cfg.Banking.Mode)
	}

	if cfg.Collect.Concurrency < 1 {
		return fmt.Errorf("collect.concurrency must be at least 1")
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}

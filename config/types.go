package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	Banking BankingConfig `mapstructure:"banking"`
	Collect CollectConfig `mapstructure:"collect"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// BankingConfig holds the banking API connection details
type BankingConfig struct {
	URL      string        `mapstructure:"url"`
	Username string        `mapstructure:"username"`
	Password string        `mapstructure:"password"`
	Mode     string        `mapstructure:"mode"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CollectConfig contains settings for the collect command
type CollectConfig struct {
	Concurrency int    `mapstructure:"concurrency"`
	Output      string `mapstructure:"output"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

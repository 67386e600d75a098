package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Banking: BankingConfig{
			URL:      "https://bank.example.com",
			Username: "mdupuis",
			Password: "secret",
			Mode:     "blocking",
			Timeout:  30 * time.Second,
		},
		Collect: CollectConfig{
			Concurrency: 4,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid config",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing URL",
			mutate:  func(cfg *Config) { cfg.Banking.URL = "" },
			wantErr: true,
		},
		{
			name:    "missing username",
			mutate:  func(cfg *Config) { cfg.Banking.Username = "" },
			wantErr: true,
		},
		{
			name:    "missing password",
			mutate:  func(cfg *Config) { cfg.Banking.Password = "" },
			wantErr: true,
		},
		{
			name:   "concurrent mode",
			mutate: func(cfg *Config) { cfg.Banking.Mode = "concurrent" },
		},
		{
			name:    "invalid mode",
			mutate:  func(cfg *Config) { cfg.Banking.Mode = "parallel" },
			wantErr: true,
		},
		{
			name:    "zero concurrency",
			mutate:  func(cfg *Config) { cfg.Collect.Concurrency = 0 },
			wantErr: true,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "verbose" },
			wantErr: true,
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App: AppConfig{
			Name: "floorops",
			Env:  "development",
			Port: "8080",
		},
		HTTP: HTTPConfig{
			ReadTimeout:    15 * time.Second,
			WriteTimeout:   15 * time.Second,
			IdleTimeout:    60 * time.Second,
			MaxHeaderBytes: 1 << 20,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "console",
			Output: "stdout",
		},
		Pricing: PricingConfig{TaxRate: decimal.NewFromFloat(0.1)},
		Loyalty: LoyaltyConfig{PointsPerCurrencyUnit: 10},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errContains string
	}{
		{
			name:   "valid config",
			mutate: func(c *Config) {},
		},
		{
			name:        "empty port",
			mutate:      func(c *Config) { c.App.Port = "" },
			wantErr:     true,
			errContains: "port",
		},
		{
			name:        "negative tax rate",
			mutate:      func(c *Config) { c.Pricing.TaxRate = decimal.NewFromFloat(-0.1) },
			wantErr:     true,
			errContains: "tax_rate",
		},
		{
			name:        "negative points per unit",
			mutate:      func(c *Config) { c.Loyalty.PointsPerCurrencyUnit = -1 },
			wantErr:     true,
			errContains: "points_per_currency_unit",
		},
		{
			name:        "unknown log level",
			mutate:      func(c *Config) { c.Log.Level = "loud" },
			wantErr:     true,
			errContains: "log.level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("FLOOROPS_APP_PORT", "9090")
	t.Setenv("FLOOROPS_PRICING_TAX_RATE", "0.2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.App.Port)
	assert.True(t, cfg.Pricing.TaxRate.Equal(decimal.NewFromFloat(0.2)))
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "floorops", cfg.App.Name)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, 15*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.True(t, cfg.Pricing.TaxRate.Equal(decimal.NewFromFloat(0.1)))
	assert.Equal(t, int64(10), cfg.Loyalty.PointsPerCurrencyUnit)
}

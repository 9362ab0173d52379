package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App     AppConfig
	HTTP    HTTPConfig
	Log     LogConfig
	Pricing PricingConfig
	Loyalty LoyaltyConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// PricingConfig holds pricing settings applied at order creation
type PricingConfig struct {
	// TaxRate is a fraction, e.g. 0.1 for 10% tax
	TaxRate decimal.Decimal
}

// LoyaltyConfig holds loyalty accrual settings
type LoyaltyConfig struct {
	// PointsPerCurrencyUnit is how many points one currency unit of the
	// final charged amount earns
	PointsPerCurrencyUnit int64
}

// Load reads configuration from config.toml, environment variables, and
// defaults, in that order of precedence (env wins)
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("FLOOROPS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	taxRate, err := decimal.NewFromString(v.GetString("pricing.tax_rate"))
	if err != nil {
		return nil, fmt.Errorf("invalid pricing.tax_rate: %w", err)
	}

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:    v.GetDuration("http.read_timeout"),
			WriteTimeout:   v.GetDuration("http.write_timeout"),
			IdleTimeout:    v.GetDuration("http.idle_timeout"),
			MaxHeaderBytes: v.GetInt("http.max_header_bytes"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Pricing: PricingConfig{
			TaxRate: taxRate,
		},
		Loyalty: LoyaltyConfig{
			PointsPerCurrencyUnit: v.GetInt64("loyalty.points_per_currency_unit"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the configuration for invalid values
func (c *Config) Validate() error {
	if c.App.Port == "" {
		return fmt.Errorf("app.port cannot be empty")
	}
	if c.Pricing.TaxRate.IsNegative() {
		return fmt.Errorf("pricing.tax_rate cannot be negative")
	}
	if c.Loyalty.PointsPerCurrencyUnit < 0 {
		return fmt.Errorf("loyalty.points_per_currency_unit cannot be negative")
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("log.level %q is not a valid level", c.Log.Level)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "floorops")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")

	v.SetDefault("http.read_timeout", "15s")
	v.SetDefault("http.write_timeout", "15s")
	v.SetDefault("http.idle_timeout", "60s")
	v.SetDefault("http.max_header_bytes", 1<<20)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
	v.SetDefault("log.output", "stdout")

	v.SetDefault("pricing.tax_rate", "0.1")
	v.SetDefault("loyalty.points_per_currency_unit", 10)
}

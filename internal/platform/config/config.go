package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL   string
	Port          string
	IsProduction  bool
	EnableDBCheck bool

	// DefaultAnnualLimit is the plan-year contribution limit applied to
	// accounts created without an explicit limit.
	DefaultAnnualLimit decimal.Decimal

	// AccessTokenTTL is how long an issued bearer token stays valid.
	AccessTokenTTL time.Duration

	// RateLimit is a limiter format string, e.g. "100-M" for 100 requests
	// per minute per client.
	RateLimit string
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("ENABLE_DB_CHECK", false)
	viper.SetDefault("DEFAULT_ANNUAL_LIMIT", "5000.00")
	viper.SetDefault("ACCESS_TOKEN_TTL", "24h")
	viper.SetDefault("RATE_LIMIT", "100-M")

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.Port = viper.GetString("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
		log.Printf("Warning: PORT environment variable not set. Defaulting to %s\n", cfg.Port)
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.EnableDBCheck = viper.GetBool("ENABLE_DB_CHECK")

	limitStr := viper.GetString("DEFAULT_ANNUAL_LIMIT")
	limit, err := decimal.NewFromString(limitStr)
	if err != nil || limit.IsNegative() {
		limit = decimal.NewFromInt(5000)
		log.Printf("Warning: Invalid value for DEFAULT_ANNUAL_LIMIT ('%s'). Defaulting to %s.\n", limitStr, limit.StringFixed(2))
	}
	cfg.DefaultAnnualLimit = limit

	ttlStr := viper.GetString("ACCESS_TOKEN_TTL")
	ttl, err := time.ParseDuration(ttlStr)
	if err != nil || ttl <= 0 {
		ttl = 24 * time.Hour
		log.Printf("Warning: Invalid value for ACCESS_TOKEN_TTL ('%s'). Defaulting to %s.\n", ttlStr, ttl.String())
	}
	cfg.AccessTokenTTL = ttl

	cfg.RateLimit = viper.GetString("RATE_LIMIT")
	if cfg.RateLimit == "" {
		cfg.RateLimit = "100-M"
	}

	return cfg, nil
}

package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env         string
	DatabaseURL string
	RedisURL    string

	// Marketplace-health thresholds.
	LiquidityThreshold float64
	ActiveWindowDays   int
	InquiryFloor       int
	OfferFloor         int
	CloseFloor         int
	CompletionFloor    int

	// Subscription gating.
	TrialUnlocked int
	BasicUnlocked int

	// Owner dashboard cache.
	MetricsCacheTTL time.Duration
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	viper.SetDefault("LIQUIDITY_THRESHOLD", 2.0)
	viper.SetDefault("ACTIVE_WINDOW_DAYS", 30)
	viper.SetDefault("INQUIRY_FLOOR", 25)
	viper.SetDefault("OFFER_FLOOR", 15)
	viper.SetDefault("CLOSE_FLOOR", 10)
	viper.SetDefault("COMPLETION_FLOOR", 60)
	viper.SetDefault("TRIAL_UNLOCKED", 1)
	viper.SetDefault("BASIC_UNLOCKED", 5)
	viper.SetDefault("METRICS_CACHE_TTL_SECONDS", 60)

	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if env == "test" {
		dbURL = viper.GetString("DATABASE_URL_TEST")
	}

	return &Config{
		Env:                env,
		DatabaseURL:        dbURL,
		RedisURL:           viper.GetString("REDIS_URL"),
		LiquidityThreshold: viper.GetFloat64("LIQUIDITY_THRESHOLD"),
		ActiveWindowDays:   viper.GetInt("ACTIVE_WINDOW_DAYS"),
		InquiryFloor:       viper.GetInt("INQUIRY_FLOOR"),
		OfferFloor:         viper.GetInt("OFFER_FLOOR"),
		CloseFloor:         viper.GetInt("CLOSE_FLOOR"),
		CompletionFloor:    viper.GetInt("COMPLETION_FLOOR"),
		TrialUnlocked:      viper.GetInt("TRIAL_UNLOCKED"),
		BasicUnlocked:      viper.GetInt("BASIC_UNLOCKED"),
		MetricsCacheTTL:    time.Duration(viper.GetInt("METRICS_CACHE_TTL_SECONDS")) * time.Second,
	}, nil
}

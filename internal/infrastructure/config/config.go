package config

import (
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment string           `mapstructure:"environment"`
	LogLevel    string           `mapstructure:"log_level"`
	Server      ServerConfig     `mapstructure:"server"`
	Reference   ReferenceConfig  `mapstructure:"reference"`
	MarketData  MarketDataConfig `mapstructure:"market_data"`
	Session     SessionConfig    `mapstructure:"session"`
	Portfolio   PortfolioConfig  `mapstructure:"portfolio"`
}

type ServerConfig struct {
	Port            int      `mapstructure:"port"`
	Host            string   `mapstructure:"host"`
	ReadTimeout     int      `mapstructure:"read_timeout"`
	WriteTimeout    int      `mapstructure:"write_timeout"`
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	RateLimitPerMin int      `mapstructure:"rate_limit_per_min"`
}

// ReferenceConfig locates the static company/ticker/index table
type ReferenceConfig struct {
	CSVPath string `mapstructure:"csv_path"`
}

type MarketDataConfig struct {
	BaseURL         string `mapstructure:"base_url"`
	UserAgent       string `mapstructure:"user_agent"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds"`
	BreakerInterval int    `mapstructure:"breaker_interval_seconds"`
	BreakerOpenTime int    `mapstructure:"breaker_open_seconds"`
}

type SessionConfig struct {
	TTLMinutes    int    `mapstructure:"ttl_minutes"`
	SweepSchedule string `mapstructure:"sweep_schedule"`
}

// PortfolioConfig carries the metric engine constants
type PortfolioConfig struct {
	RiskFreeRate    float64 `mapstructure:"risk_free_rate"`
	TradingDays     int     `mapstructure:"trading_days"`
	WeightTolerance float64 `mapstructure:"weight_tolerance"`
	DefaultLookback string  `mapstructure:"default_lookback"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath(".")

	setDefaults()

	// Read from config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	viper.SetDefault("environment", "development")
	viper.SetDefault("log_level", "info")

	// Server defaults
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.read_timeout", 30)
	viper.SetDefault("server.write_timeout", 30)
	viper.SetDefault("server.allowed_origins", []string{"*"})
	viper.SetDefault("server.rate_limit_per_min", 120)

	// Reference table defaults
	viper.SetDefault("reference.csv_path", "./data/companies.csv")

	// Market data defaults
	viper.SetDefault("market_data.base_url", "https://query1.finance.yahoo.com")
	viper.SetDefault("market_data.user_agent", "curl/8")
	viper.SetDefault("market_data.timeout_seconds", 15)
	viper.SetDefault("market_data.breaker_interval_seconds", 30)
	viper.SetDefault("market_data.breaker_open_seconds", 60)

	// Session defaults
	viper.SetDefault("session.ttl_minutes", 120)
	viper.SetDefault("session.sweep_schedule", "@every 5m")

	// Portfolio metric defaults
	viper.SetDefault("portfolio.risk_free_rate", 0.02)
	viper.SetDefault("portfolio.trading_days", 252)
	viper.SetDefault("portfolio.weight_tolerance", 1e-6)
	viper.SetDefault("portfolio.default_lookback", "1y")
}

func validate(config *Config) error {
	if config.Server.Port <= 0 || config.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", config.Server.Port)
	}
	if config.Reference.CSVPath == "" {
		return fmt.Errorf("reference.csv_path is required")
	}
	if config.MarketData.BaseURL == "" {
		return fmt.Errorf("market_data.base_url is required")
	}
	if config.Portfolio.TradingDays <= 0 {
		return fmt.Errorf("portfolio.trading_days must be positive")
	}
	if config.Session.TTLMinutes <= 0 {
		return fmt.Errorf("session.ttl_minutes must be positive")
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config stores all configuration of the application.
// Values come from an optional app.env file, a .env file, and the environment;
// the environment wins.
type Config struct {
	Environment   string        `mapstructure:"ENVIRONMENT"`
	HTTPAddress   string        `mapstructure:"HTTP_ADDRESS"`
	DatabaseURL   string        `mapstructure:"DATABASE_URL"`
	RedisAddress  string        `mapstructure:"REDIS_ADDRESS"`
	RedisPassword string        `mapstructure:"REDIS_PASSWORD"`
	RouteCacheTTL time.Duration `mapstructure:"ROUTE_CACHE_TTL"`
	RouteTimeout  time.Duration `mapstructure:"ROUTE_TIMEOUT"`
	ORSAPIKey     string        `mapstructure:"ORS_API_KEY"`
	ORSCountry    string        `mapstructure:"ORS_COUNTRY"`
	SeedPath      string        `mapstructure:"SEED_PATH"`
	LogLevel      string        `mapstructure:"LOG_LEVEL"`
}

var defaults = map[string]any{
	"ENVIRONMENT":     "production",
	"HTTP_ADDRESS":    ":8080",
	"DATABASE_URL":    "",
	"REDIS_ADDRESS":   "",
	"REDIS_PASSWORD":  "",
	"ROUTE_CACHE_TTL": "5m",
	"ROUTE_TIMEOUT":   "10s",
	"ORS_API_KEY":     "",
	"ORS_COUNTRY":     "",
	"SEED_PATH":       "data/seeds/art_pieces.json",
	"LOG_LEVEL":       "info",
}

// Load reads configuration from path/app.env (if present) and the environment.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load config: read .env: %w", err)
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("env")

	// Defaults double as the key list AutomaticEnv needs for Unmarshal.
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("load config: read app.env: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("load config: unmarshal: %w", err)
	}

	cfg.RedisPassword = trimOptionalQuotes(cfg.RedisPassword)
	cfg.ORSAPIKey = trimOptionalQuotes(cfg.ORSAPIKey)

	if cfg.RouteCacheTTL <= 0 {
		return Config{}, fmt.Errorf("load config: ROUTE_CACHE_TTL must be positive, got %s", cfg.RouteCacheTTL)
	}
	if cfg.RouteTimeout <= 0 {
		return Config{}, fmt.Errorf("load config: ROUTE_TIMEOUT must be positive, got %s", cfg.RouteTimeout)
	}

	return cfg, nil
}

func (c Config) IsDevelopment() bool {
	return strings.EqualFold(c.Environment, "development")
}

// Get returns the environment value for key, or fallback when unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func trimOptionalQuotes(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

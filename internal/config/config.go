package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// Server
	Port        string
	Environment string

	// Database
	DatabaseURL string

	// JWT
	JWTSecret      string
	AccessTokenTTL time.Duration
}

// Load reads configuration from the environment. Every component receives
// the resulting struct by injection; nothing reads the environment after
// startup.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENVIRONMENT", "development")
	v.SetDefault("DATABASE_URL", "sqlite://app.db")
	// 8 days, matching the journal's long-lived sessions.
	v.SetDefault("ACCESS_TOKEN_TTL_MINUTES", 60*24*8)
	v.AutomaticEnv()

	cfg := &Config{
		Port:           v.GetString("APP_PORT"),
		Environment:    v.GetString("ENVIRONMENT"),
		DatabaseURL:    v.GetString("DATABASE_URL"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		AccessTokenTTL: time.Duration(v.GetInt("ACCESS_TOKEN_TTL_MINUTES")) * time.Minute,
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET environment variable is required")
	}

	return cfg, nil
}

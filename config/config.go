package config

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds the application's configuration
type Config struct {
	WebPort                  int           `mapstructure:"WEB_PORT"`
	LogLevel                 string        `mapstructure:"LOG_LEVEL"`
	AdminMode                bool          `mapstructure:"ADMIN_MODE"`
	MaxSessions              int           `mapstructure:"MAX_SESSIONS"`
	SessionRetentionAge      time.Duration `mapstructure:"SESSION_RETENTION_AGE"`
	CleanupEnabled           bool          `mapstructure:"CLEANUP_ENABLED"`
	CleanupInterval          time.Duration `mapstructure:"CLEANUP_INTERVAL"`
	RateLimitMutationsPerMin int           `mapstructure:"RATE_LIMIT_MUTATIONS_PER_MIN"`
	RateLimitImportsPerHour  int           `mapstructure:"RATE_LIMIT_IMPORTS_PER_HOUR"`
	RateLimitBurstSize       int           `mapstructure:"RATE_LIMIT_BURST_SIZE"`
}

func Load(logger *zap.Logger) *Config {
	var config Config
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")        // For running locally
	viper.AddConfigPath("../")      // For running from docker subdir
	viper.AddConfigPath("./config") // Common config folder
	viper.AutomaticEnv()

	// Set default values
	viper.SetDefault("WEB_PORT", 8084)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("ADMIN_MODE", true)
	viper.SetDefault("MAX_SESSIONS", 256)
	viper.SetDefault("SESSION_RETENTION_AGE", 168)
	viper.SetDefault("CLEANUP_ENABLED", true)
	viper.SetDefault("CLEANUP_INTERVAL", 24)
	viper.SetDefault("RATE_LIMIT_MUTATIONS_PER_MIN", 120)
	viper.SetDefault("RATE_LIMIT_IMPORTS_PER_HOUR", 20)
	viper.SetDefault("RATE_LIMIT_BURST_SIZE", 10)

	if err := viper.ReadInConfig(); err != nil {
		if logger != nil {
			logger.Warn("Could not read config file, using defaults/env vars", zap.Error(err))
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		// Config unmarshaling is critical - fail fast during bootstrap
		if logger != nil {
			logger.Fatal("Unable to decode config into struct", zap.Error(err))
		} else {
			// Fallback if logger not available (should not happen in practice)
			fmt.Fprintf(os.Stderr, "FATAL: Unable to decode config into struct: %v\n", err)
			os.Exit(1)
		}
	}

	// Convert hour-denominated settings to proper time.Duration
	config.SessionRetentionAge = config.SessionRetentionAge * time.Hour
	config.CleanupInterval = config.CleanupInterval * time.Hour

	return &config
}

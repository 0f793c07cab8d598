package bot

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds the bot configuration read from the environment
type Config struct {
	// Telegram bot token
	Token string
	// Username of the source channel (without @) whose posts are forwarded
	SourceChannel string
	// Hour of day for the daily digest broadcast
	DigestHour int
	// Number of correct vocabulary answers between spelling checks
	CheckInterval int
}

// LoadConfig reads the configuration from environment variables
func LoadConfig() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	cfg := &Config{
		Token:         token,
		SourceChannel: "topik2prep",
		DigestHour:    12,
		CheckInterval: 3,
	}

	if channel := os.Getenv("SOURCE_CHANNEL"); channel != "" {
		cfg.SourceChannel = channel
	}
	if hourStr := os.Getenv("DIGEST_HOUR"); hourStr != "" {
		if h, err := strconv.Atoi(hourStr); err == nil && h >= 0 && h <= 23 {
			cfg.DigestHour = h
		}
	}
	if intervalStr := os.Getenv("CHECK_INTERVAL"); intervalStr != "" {
		if n, err := strconv.Atoi(intervalStr); err == nil && n > 0 {
			cfg.CheckInterval = n
		}
	}

	return cfg, nil
}

package configs

import (
	"os"
	"strconv"
	"strings"

	"signalgate/internal/auth"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Gateway  GatewayConfig
	Database DatabaseConfig
	Telegram TelegramConfig
	Ops      OpsConfig
	Digest   DigestConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// GatewayConfig holds signal intake configuration
type GatewayConfig struct {
	// PublicURL is the externally visible base URL of the gateway.
	// The token audience is PublicURL + "/webhook".
	PublicURL    string
	Secret       string
	StorePath    string
	MaxListLimit int
}

// DatabaseConfig holds the persistence collaborator configuration
type DatabaseConfig struct {
	URL string
}

// TelegramConfig holds Telegram notification configuration
type TelegramConfig struct {
	BotToken string
	ChatID   string
}

// OpsConfig holds the metrics/debug listener configuration
type OpsConfig struct {
	MetricsPort string
}

// DigestConfig holds the daily digest schedule
type DigestConfig struct {
	Cron string
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("GO_ENV", "development"),
		},
		Gateway: GatewayConfig{
			PublicURL:    getEnv("PUBLIC_URL", "http://localhost:8080"),
			Secret:       getEnv("WEBHOOK_SECRET", auth.DefaultSecret),
			StorePath:    getEnv("SIGNALS_FILE", "data/signals.json"),
			MaxListLimit: getEnvInt("SIGNALS_MAX_LIMIT", 100),
		},
		Database: DatabaseConfig{
			URL: getEnv("DATABASE_URL", ""),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("TELEGRAM_BOT_TOKEN", ""),
			ChatID:   getEnv("TELEGRAM_CHAT_ID", ""),
		},
		Ops: OpsConfig{
			MetricsPort: getEnv("METRICS_PORT", "9091"),
		},
		Digest: DigestConfig{
			Cron: getEnv("DIGEST_CRON", "0 18 * * *"),
		},
	}
}

// WebhookURL returns the full submission URL used as the token audience
func (c *Config) WebhookURL() string {
	return strings.TrimRight(c.Gateway.PublicURL, "/") + "/webhook"
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets a positive integer environment variable or returns a default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		return defaultValue
	}
	return n
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds environment driven settings for the API server.
type Config struct {
	Env            string
	Host           string
	Port           string
	AllowedOrigins []string
	LogLevel       string
	LogDir         string

	DataDir      string
	StaticDir    string
	MaxBodyBytes int64

	RateLimit RateLimitConfig
	Telegram  TelegramConfig
	Notify    NotifyConfig
	Redis     RedisConfig
}

// RateLimitConfig controls the per-IP request limiter.
type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// Enabled reports whether requests are limited at all.
func (r RateLimitConfig) Enabled() bool {
	return r.Requests > 0
}

// TelegramConfig contains Telegram Bot API configuration.
type TelegramConfig struct {
	BotToken string
	BaseURL  string
	Timeout  time.Duration
}

// NotifyConfig contains broadcast pacing settings.
type NotifyConfig struct {
	Delay time.Duration
}

// RedisConfig contains the optional Redis connection used for rate limit counters.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Load builds a Config from environment variables with sensible defaults.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Env:          getEnv("SERVER_ENV", "development"),
		Host:         getEnv("SERVER_HOST", "0.0.0.0"),
		Port:         getEnv("SERVER_PORT", "5000"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogDir:       getEnv("LOG_DIR", "logs"),
		DataDir:      getEnv("DATA_DIR", "data"),
		StaticDir:    getEnv("STATIC_DIR", "public"),
		MaxBodyBytes: int64(getEnvAsInt("MAX_BODY_BYTES", 50*1024*1024)),
	}

	cfg.AllowedOrigins = splitAndTrim(os.Getenv("ALLOWED_ORIGINS"))
	cfg.RateLimit = RateLimitConfig{
		Requests: getEnvAsInt("RATE_LIMIT_REQUESTS", 300),
		Window:   time.Duration(getEnvAsInt("RATE_LIMIT_WINDOW_SECONDS", 60)) * time.Second,
	}
	cfg.Telegram = loadTelegramConfig()
	cfg.Notify = NotifyConfig{
		Delay: time.Duration(getEnvAsInt("NOTIFY_DELAY_MS", 100)) * time.Millisecond,
	}
	cfg.Redis = RedisConfig{
		Addr:     os.Getenv("REDIS_ADDR"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       getEnvAsInt("REDIS_DB", 0),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ServerAddress joins the host and port into a listen address.
func (c *Config) ServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsProduction reports whether the app is running in production mode.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

func (c *Config) validate() error {
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("MAX_BODY_BYTES must be positive, got %d", c.MaxBodyBytes)
	}
	// RATE_LIMIT_REQUESTS <= 0 disables limiting; the window only matters when enabled.
	if c.RateLimit.Enabled() && c.RateLimit.Window <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW_SECONDS must be positive, got %s", c.RateLimit.Window)
	}
	if c.Notify.Delay < 0 {
		return fmt.Errorf("NOTIFY_DELAY_MS must not be negative")
	}
	return nil
}

func loadTelegramConfig() TelegramConfig {
	return TelegramConfig{
		BotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		BaseURL:  strings.TrimRight(getEnv("TELEGRAM_API_URL", "https://api.telegram.org"), "/"),
		Timeout:  time.Duration(getEnvAsInt("TELEGRAM_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func splitAndTrim(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.FieldsFunc(value, func(r rune) bool {
		switch r {
		case ',', ';':
			return true
		default:
			return false
		}
	})

	var cleaned []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			cleaned = append(cleaned, trimmed)
		}
	}

	if len(cleaned) == 0 {
		return nil
	}

	return cleaned
}

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds every setting the service and the reminder worker need.
// It is built once at process start and passed down explicitly.
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	DatabaseURL string
	RedisURL    string

	Auth       AuthConfig
	Email      EmailConfig
	Reminder   ReminderConfig
	Generation GenerationConfig

	ExtractionTimeout time.Duration
	MaxUploadBytes    int64
	StaticDir         string

	KafkaBrokers []string
}

type AuthConfig struct {
	SecretKey     string
	Algorithm     string
	TokenLifetime time.Duration
}

type EmailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type ReminderConfig struct {
	Window   time.Duration
	Interval time.Duration
}

type GenerationConfig struct {
	APIKey  string
	Models  []string
	Timeout time.Duration
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	// .env is optional; real deployments inject the environment directly
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8000"),
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getEnv("LOG_LEVEL", "info")),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		RedisURL:    os.Getenv("REDIS_URL"),

		Auth: AuthConfig{
			SecretKey:     os.Getenv("SECRET_KEY"),
			Algorithm:     getEnv("ALGORITHM", "HS256"),
			TokenLifetime: time.Duration(getEnvInt("ACCESS_TOKEN_EXPIRE_MINUTES", 60)) * time.Minute,
		},
		Email: EmailConfig{
			Host:     os.Getenv("EMAIL_HOST"),
			Port:     getEnvInt("EMAIL_PORT", 587),
			Username: os.Getenv("EMAIL_USERNAME"),
			Password: os.Getenv("EMAIL_PASSWORD"),
			From:     os.Getenv("EMAIL_FROM"),
		},
		Reminder: ReminderConfig{
			Window:   time.Duration(getEnvInt("REMINDER_WINDOW_MINUTES", 10)) * time.Minute,
			Interval: time.Duration(getEnvInt("REMINDER_INTERVAL_SECONDS", 60)) * time.Second,
		},
		Generation: GenerationConfig{
			APIKey:  os.Getenv("GEMINI_API_KEY"),
			Models:  GenerationModels(),
			Timeout: time.Duration(getEnvInt("GENERATION_TIMEOUT_SECONDS", 180)) * time.Second,
		},

		ExtractionTimeout: time.Duration(getEnvInt("EXTRACTION_TIMEOUT_SECONDS", 60)) * time.Second,
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 50)) << 20,
		StaticDir:         getEnv("STATIC_DIR", "static"),

		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the settings without which neither process can run.
func (c *Config) Validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.SecretKey == "" {
		return fmt.Errorf("SECRET_KEY is required")
	}
	switch c.Auth.Algorithm {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("unsupported token algorithm %q", c.Auth.Algorithm)
	}
	if c.Auth.TokenLifetime <= 0 {
		return fmt.Errorf("ACCESS_TOKEN_EXPIRE_MINUTES must be positive")
	}
	if c.Reminder.Interval <= 0 {
		return fmt.Errorf("REMINDER_INTERVAL_SECONDS must be positive")
	}
	if len(c.Generation.Models) == 0 {
		return fmt.Errorf("GEMINI_MODELS must list at least one model")
	}
	return nil
}

const DefaultGenerationModel = "gemini-2.5-flash"

// GenerationModels reads the fallback chain from GEMINI_MODELS
func GenerationModels() []string {
	return splitList(getEnv("GEMINI_MODELS", DefaultGenerationModel))
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

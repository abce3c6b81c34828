package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

// Storage drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	StorageDriver  string
	SQLitePath     string
	Database       DatabaseConfig
	HTTPAddr       string
	Bot            BotConfig
	Location       *time.Location
	ReportInterval time.Duration
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
}

// BotConfig holds Telegram bot settings. The bot is disabled when Token is empty.
type BotConfig struct {
	Token        string
	AllowedUsers []int64
}

// Enabled reports whether the Telegram bot should be started
func (b BotConfig) Enabled() bool {
	return b.Token != ""
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if not exists)
	_ = godotenv.Load()

	cfg := &Config{
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "lexmora.db"),
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "lexmora"),
			User:     getEnv("DB_USER", "lexmora"),
			Password: os.Getenv("DB_PASSWORD"),
		},
		HTTPAddr: getEnv("HTTP_ADDR", ":8080"),
		Bot: BotConfig{
			Token: os.Getenv("BOT_TOKEN"),
		},
	}

	switch cfg.StorageDriver {
	case DriverSQLite:
	case DriverPostgres:
		if cfg.Database.Password == "" {
			return nil, fmt.Errorf("DB_PASSWORD is required")
		}
	default:
		return nil, fmt.Errorf("STORAGE_DRIVER must be %q or %q, got %q", DriverSQLite, DriverPostgres, cfg.StorageDriver)
	}

	if cfg.Bot.Enabled() {
		users, err := parseUserIDs(os.Getenv("BOT_ALLOWED_USERS"))
		if err != nil {
			return nil, fmt.Errorf("BOT_ALLOWED_USERS: %w", err)
		}
		if len(users) == 0 {
			return nil, fmt.Errorf("BOT_ALLOWED_USERS is required when BOT_TOKEN is set")
		}
		cfg.Bot.AllowedUsers = users
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE: %w", err)
	}
	cfg.Location = loc

	interval, err := time.ParseDuration(getEnv("REPORT_INTERVAL", "24h"))
	if err != nil {
		return nil, fmt.Errorf("REPORT_INTERVAL: %w", err)
	}
	if interval <= 0 {
		return nil, fmt.Errorf("REPORT_INTERVAL must be positive")
	}
	cfg.ReportInterval = interval

	return cfg, nil
}

// DSN returns PostgreSQL connection string
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.Name,
	)
}

// parseUserIDs parses a comma-separated list of Telegram user ids
func parseUserIDs(s string) ([]int64, error) {
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user id %q", part)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

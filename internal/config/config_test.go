package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configKeys = []string{
	"STORAGE_DRIVER", "SQLITE_PATH", "DB_HOST", "DB_PORT", "DB_NAME", "DB_USER", "DB_PASSWORD",
	"HTTP_ADDR", "BOT_TOKEN", "BOT_ALLOWED_USERS", "TIMEZONE", "REPORT_INTERVAL",
}

// clearEnv unsets every config variable for the duration of the test
func clearEnv(t *testing.T) {
	for _, key := range configKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestGetEnv(t *testing.T) {
	tests := []struct {
		name         string
		key          string
		defaultValue string
		setEnv       bool
		envValue     string
		expected     string
	}{
		{
			name:         "env variable set",
			key:          "TEST_KEY",
			defaultValue: "default",
			setEnv:       true,
			envValue:     "custom",
			expected:     "custom",
		},
		{
			name:         "env variable not set",
			key:          "TEST_KEY_NOT_SET",
			defaultValue: "default",
			setEnv:       false,
			expected:     "default",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setEnv {
				t.Setenv(tt.key, tt.envValue)
			}

			result := getEnv(tt.key, tt.defaultValue)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestConfig_DSN(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "testuser",
			Password: "testpass",
			Name:     "testdb",
		},
	}

	dsn := cfg.DSN()
	expected := "host=localhost port=5432 user=testuser password=testpass dbname=testdb sslmode=disable"
	assert.Equal(t, expected, dsn)
}

func TestLoad_WithDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "lexmora.db", cfg.SQLitePath)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "5432", cfg.Database.Port)
	assert.Equal(t, "lexmora", cfg.Database.Name)
	assert.Equal(t, "lexmora", cfg.Database.User)
	assert.False(t, cfg.Bot.Enabled())
	assert.Equal(t, time.UTC, cfg.Location)
	assert.Equal(t, 24*time.Hour, cfg.ReportInterval)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		errContains string
	}{
		{
			name:        "postgres without password",
			env:         map[string]string{"STORAGE_DRIVER": "postgres"},
			errContains: "DB_PASSWORD",
		},
		{
			name:        "unknown driver",
			env:         map[string]string{"STORAGE_DRIVER": "mongo"},
			errContains: "STORAGE_DRIVER",
		},
		{
			name:        "bot without allowlist",
			env:         map[string]string{"BOT_TOKEN": "token"},
			errContains: "BOT_ALLOWED_USERS",
		},
		{
			name:        "bot with malformed allowlist",
			env:         map[string]string{"BOT_TOKEN": "token", "BOT_ALLOWED_USERS": "12,abc"},
			errContains: "BOT_ALLOWED_USERS",
		},
		{
			name:        "bad timezone",
			env:         map[string]string{"TIMEZONE": "Mars/Olympus"},
			errContains: "TIMEZONE",
		},
		{
			name:        "bad report interval",
			env:         map[string]string{"REPORT_INTERVAL": "daily"},
			errContains: "REPORT_INTERVAL",
		},
		{
			name:        "non-positive report interval",
			env:         map[string]string{"REPORT_INTERVAL": "-1h"},
			errContains: "REPORT_INTERVAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			assert.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestLoad_PostgresAndBot(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("BOT_TOKEN", "token")
	t.Setenv("BOT_ALLOWED_USERS", " 42, 1001 ,")
	t.Setenv("TIMEZONE", "Europe/Berlin")
	t.Setenv("REPORT_INTERVAL", "6h")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, "secret", cfg.Database.Password)
	assert.True(t, cfg.Bot.Enabled())
	assert.Equal(t, []int64{42, 1001}, cfg.Bot.AllowedUsers)
	assert.Equal(t, "Europe/Berlin", cfg.Location.String())
	assert.Equal(t, 6*time.Hour, cfg.ReportInterval)
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"tradeJournal/internal/adapters/logger" // Import the logger package for LogLevel
)

// Store backends the journal can run against.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config holds all application configuration.
type Config struct {
	// HTTP server
	HTTPAddr string

	// Store selection
	StoreBackend string // "sqlite" or "redis"

	// SQLite
	DBPath string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TradesKey     string // Key holding the trade collection

	// Import behaviour
	ImportPreview int // Number of records echoed back after an import

	// Logging
	LogLevel logger.LogLevel
}

// LoadConfig loads configuration from environment variables (.env file).
func LoadConfig() (*Config, error) {
	// Load .env file, but don't fail if it doesn't exist (allow pure env vars)
	_ = godotenv.Load()

	cfg := &Config{}
	var errs []string // Collect validation errors

	// HTTP server
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	if cfg.HTTPAddr == "" {
		errs = append(errs, "HTTP_ADDR must be set")
	}

	// Store selection
	cfg.StoreBackend = strings.ToLower(getEnv("STORE_BACKEND", BackendSQLite))
	if cfg.StoreBackend != BackendSQLite && cfg.StoreBackend != BackendRedis {
		errs = append(errs, fmt.Sprintf("STORE_BACKEND must be %q or %q, got %q", BackendSQLite, BackendRedis, cfg.StoreBackend))
	}

	// SQLite
	cfg.DBPath = getEnv("DB_PATH", "./data/tradejournal.db")
	if cfg.StoreBackend == BackendSQLite && cfg.DBPath == "" {
		errs = append(errs, "DB_PATH must be set when STORE_BACKEND is sqlite")
	}

	// Redis
	cfg.RedisAddr = getEnv("REDIS_ADDR", "localhost:6379")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	cfg.RedisDB = getEnvAsInt("REDIS_DB", 0)
	cfg.TradesKey = getEnv("TRADES_KEY", "tradejournal:trades")
	if cfg.StoreBackend == BackendRedis && cfg.RedisAddr == "" {
		errs = append(errs, "REDIS_ADDR must be set when STORE_BACKEND is redis")
	}

	// Import behaviour
	cfg.ImportPreview = getEnvAsInt("IMPORT_PREVIEW", 3)
	if cfg.ImportPreview <= 0 {
		errs = append(errs, "IMPORT_PREVIEW must be positive")
	}

	// Logging
	logLevelStr := getEnv("LOG_LEVEL", "INFO")
	cfg.LogLevel = logger.ParseLevel(logLevelStr) // Use the parser from the logger package

	// Combine validation errors
	if len(errs) > 0 {
		return nil, fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}

	return cfg, nil
}

// --- Env Var Helpers ---

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port               string
	Env                string
	CORSAllowedOrigins []string

	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// Auth (tokens are issued by the hosted auth provider; we only verify them)
	JWTSecret      string
	PipelineAPIKey string
	FinancialRoles []string

	// Redis; empty disables the due-soon cache and the reminder pass lock
	RedisURL        string
	DueSoonCacheTTL time.Duration
	ReminderLockTTL time.Duration

	// Reminders
	ReminderEnabled     bool
	ReminderWindowDays  int
	DashboardWindowDays int
	ReminderInterval    time.Duration
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	config := &Config{
		Port:               getEnv("PORT", "8080"),
		Env:                getEnv("ENV", "development"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "")),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "projectdesk"),
		DBPassword: getEnv("DB_PASSWORD", "projectdesk"),
		DBName:     getEnv("DB_NAME", "projectdesk"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret:      getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),
		PipelineAPIKey: getEnv("PIPELINE_API_KEY", ""),
		FinancialRoles: splitList(getEnv("FINANCIAL_ROLES", "admin,advisor")),

		RedisURL: getEnv("REDIS_URL", ""),

		ReminderEnabled:     getBool("REMINDER_ENABLED", true),
		ReminderWindowDays:  getInt("REMINDER_WINDOW_DAYS", 7),
		DashboardWindowDays: getInt("DASHBOARD_WINDOW_DAYS", 30),
	}

	config.DueSoonCacheTTL = getDuration("DUE_SOON_CACHE_TTL", 2*time.Minute)
	config.ReminderLockTTL = getDuration("REMINDER_LOCK_TTL", time.Minute)
	config.ReminderInterval = getDuration("REMINDER_POLL_INTERVAL", 5*time.Minute)

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// Set overrides the cached configuration. Used by tests.
func Set(cfg *Config) {
	appConfig = cfg
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %d\n", key, raw, defaultValue)
		return defaultValue
	}
	return n
}

func getBool(key string, defaultValue bool) bool {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		log.Printf("Warning: invalid %s value '%s', falling back to %t\n", key, raw, defaultValue)
		return defaultValue
	}
	return b
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s value '%s', falling back to %s\n", key, raw, defaultValue)
		return defaultValue
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

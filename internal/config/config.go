// Package config reads server settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/planbuddy/internal/models"
)

type Config struct {
	// Server
	Port        string
	CORSOrigins []string
	AppEnv      string

	// Storage
	DBPath   string
	SeedDemo bool

	// Sessions
	JWTSecret  string
	SessionTTL time.Duration

	// Generator
	GeminiAPIKey  string
	GeminiModel   string
	GeminiBaseURL string
	AITimeout     time.Duration

	// Planning
	ReminderDelay   time.Duration
	DefaultLocation models.Coordinates
	PhoneRegion     string
	DefaultGroupID  string

	SentryDSN string
}

// Load returns the configuration from the environment with defaults for
// everything unset. An empty GeminiAPIKey selects the fixture generator.
func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "*")),
		AppEnv:      getEnv("APP_ENV", "development"),

		DBPath:   getEnv("DB_PATH", "./data/planbuddy.db"),
		SeedDemo: parseBool(getEnv("SEED_DEMO", "false")),

		JWTSecret:  getEnv("JWT_SECRET", "dev-secret-change-me"),
		SessionTTL: parseDuration(getEnv("SESSION_TTL", "24h"), 24*time.Hour),

		GeminiAPIKey:  getEnv("GEMINI_API_KEY", os.Getenv("API_KEY")),
		GeminiModel:   getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiBaseURL: getEnv("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
		AITimeout:     parseDuration(getEnv("AI_TIMEOUT", "30s"), 30*time.Second),

		ReminderDelay: parseDuration(getEnv("REMINDER_DELAY", "5s"), 5*time.Second),
		DefaultLocation: models.Coordinates{
			Lat: parseFloat(getEnv("DEFAULT_LAT", ""), 19.0760),
			Lng: parseFloat(getEnv("DEFAULT_LNG", ""), 72.8777),
		},
		PhoneRegion:    strings.ToUpper(getEnv("PHONE_REGION", "IN")),
		DefaultGroupID: getEnv("DEFAULT_GROUP_ID", ""),

		SentryDSN: getEnv("SENTRY_DSN", ""),
	}
}

// Addr is the listen address for Port.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil || d < 0 {
		return fallback
	}
	return d
}

func parseFloat(s string, fallback float64) float64 {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fallback
	}
	return f
}

func parseBool(s string) bool {
	b, _ := strconv.ParseBool(s)
	return b
}

func splitList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

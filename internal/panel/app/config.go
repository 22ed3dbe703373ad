package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/veligame/adminpanel/pkg/jwtx"
)

type Config struct {
	Issuer        string   // Required: issuer claim for tokens
	Audience      []string // Required: audience claim for tokens
	SigningSecret string   // Required: HS256 shared secret; generated if absent
	TokenTTL      time.Duration

	DatabaseFile  string // Optional: path to SQLite database file (default: ./panel.db)
	MongoURI      string // Optional: document store connection string (default: mongodb://localhost:27017)
	MongoDatabase string // Optional: document store database name (default: gamepanel)
	PepperFile    string // Optional: path to file containing pepper for password hashing (default: ./pepper)

	CORSAllowedOrigins []string // Optional: comma-separated allow-list of frontend origins

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:        getEnvOrDefault("AUTH_ISSUER", "panel-api"),
		SigningSecret: os.Getenv("AUTH_SIGNING_SECRET"),
		TokenTTL:      getEnvDurationOrDefault("AUTH_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),

		DatabaseFile:  getEnvOrDefault("DATABASE_FILE", "panel.db"),
		MongoURI:      getEnvOrDefault("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnvOrDefault("MONGO_DATABASE", "gamepanel"),
		PepperFile:    getEnvOrDefault("PEPPER_FILE", "pepper"),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	cfg.Audience = splitAndTrim(getEnvOrDefault("AUTH_AUDIENCE", "panel"))

	// The frontend dev server plus the deployed panel, matching any of its
	// preview subdomains.
	cfg.CORSAllowedOrigins = splitAndTrim(getEnvOrDefault(
		"CORS_ALLOWED_ORIGINS",
		"http://localhost:3000,https://veligamedemo.netlify.app",
	))

	return cfg
}

func splitAndTrim(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}

// Package config provides configuration management for the EPQ service.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// History backends selectable through HISTORY_BACKEND.
const (
	HistoryBackendMongo  = "mongodb"
	HistoryBackendSQLite = "sqlite"
	HistoryBackendNone   = "none"
)

// Config holds the complete application configuration.
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Cache    CacheConfig
	Auth     AuthConfig
	Database DatabaseConfig
	Schedule ScheduleConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port              string
	RateLimit         int
	RateWindow        time.Duration
	CORSOrigins       []string
	SwaggerUser       string
	SwaggerPass       string
	RequestTimeout    time.Duration
	EnableIdempotency bool
	IdempotencyTTL    time.Duration
}

// LogConfig holds logger configuration.
type LogConfig struct {
	Level  string
	Pretty bool
}

// CacheConfig holds optimisation result cache configuration.
type CacheConfig struct {
	Size int
	TTL  time.Duration
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	Enabled      bool
	APIKeys      []string
	APIKeyHashes []string
	JWTSecretKey string
}

// DatabaseConfig holds history and audit log storage configuration.
type DatabaseConfig struct {
	HistoryBackend string
	URI            string
	DatabaseName   string
	SQLitePath     string
	HistoryTimeout time.Duration
	LogsTTL        time.Duration
	// CircuitBreaker configuration
	CircuitBreakerFailureThreshold int
	CircuitBreakerSuccessThreshold int
	CircuitBreakerTimeout          time.Duration
}

// MongoEnabled reports whether MongoDB backs history and audit logs.
func (d DatabaseConfig) MongoEnabled() bool {
	return d.HistoryBackend == HistoryBackendMongo
}

// ScheduleConfig holds the periodic re-optimisation job configuration.
type ScheduleConfig struct {
	Cron      string
	DemandCSV string
	Scenario  string
}

// Enabled reports whether a schedule is configured.
func (s ScheduleConfig) Enabled() bool {
	return s.Cron != "" && s.Scenario != ""
}

// Load creates a Config from environment variables.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			RateLimit:         getEnvInt("RATE_LIMIT", 100),
			RateWindow:        getEnvDuration("RATE_WINDOW", time.Minute),
			CORSOrigins:       parseCORSOrigins(os.Getenv("CORS_ORIGINS")),
			SwaggerUser:       getEnv("SWAGGER_USER", ""),
			SwaggerPass:       getEnv("SWAGGER_PASS", ""),
			RequestTimeout:    getEnvDuration("REQUEST_TIMEOUT", 10*time.Second),
			EnableIdempotency: getEnvBool("ENABLE_IDEMPOTENCY", true),
			IdempotencyTTL:    getEnvDuration("IDEMPOTENCY_TTL", 5*time.Minute),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
		Cache: CacheConfig{
			Size: getEnvInt("CACHE_SIZE", 1000),
			TTL:  getEnvDuration("CACHE_TTL", 5*time.Minute),
		},
		Auth: AuthConfig{
			Enabled:      getEnvBool("AUTH_ENABLED", false),
			APIKeys:      parseList(os.Getenv("API_KEYS")),
			APIKeyHashes: parseList(os.Getenv("API_KEY_HASHES")),
			JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		},
		Database: DatabaseConfig{
			HistoryBackend:                 parseHistoryBackend(os.Getenv("HISTORY_BACKEND")),
			URI:                            getEnv("MONGODB_URI", "mongodb://localhost:27017"),
			DatabaseName:                   getEnv("MONGODB_DATABASE", "epq_service"),
			SQLitePath:                     getEnv("SQLITE_PATH", "epq_history.db"),
			HistoryTimeout:                 getEnvDuration("HISTORY_TIMEOUT", 2*time.Second),
			LogsTTL:                        getEnvDuration("MONGODB_LOGS_TTL", 30*24*time.Hour),
			CircuitBreakerFailureThreshold: getEnvInt("CIRCUIT_BREAKER_FAILURE_THRESHOLD", 5),
			CircuitBreakerSuccessThreshold: getEnvInt("CIRCUIT_BREAKER_SUCCESS_THRESHOLD", 2),
			CircuitBreakerTimeout:          getEnvDuration("CIRCUIT_BREAKER_TIMEOUT", 30*time.Second),
		},
		Schedule: ScheduleConfig{
			Cron:      strings.TrimSpace(os.Getenv("SCHEDULE_CRON")),
			DemandCSV: getEnv("SCHEDULE_DEMAND_CSV", ""),
			Scenario:  getEnv("SCHEDULE_SCENARIO", ""),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultValue
}

// parseHistoryBackend falls back to "none" for unknown values.
func parseHistoryBackend(s string) string {
	switch b := strings.ToLower(strings.TrimSpace(s)); b {
	case HistoryBackendMongo, HistoryBackendSQLite:
		return b
	case "mongo":
		return HistoryBackendMongo
	}
	return HistoryBackendNone
}

func parseList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}

func parseCORSOrigins(s string) []string {
	// Default origins for local development
	defaults := []string{
		"http://localhost:3000",
		"http://127.0.0.1:3000",
	}
	if s == "" {
		return defaults
	}
	return append(defaults, parseList(s)...)
}

package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for our application
type Config struct {
	// Server configuration
	Port           string
	GinMode        string
	APIVersion     string
	APIPrefix      string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
	IdleTimeout    time.Duration
	MaxHeaderBytes int

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Governance workflow knobs
	Governance GovernanceConfig

	// Rate limiting
	RateLimit RateLimitConfig

	// Kafka governance-event publishing
	Kafka KafkaConfig

	// Object storage for image uploads
	Storage StorageConfig

	// Logging
	LogLevel string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	DSN      string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Addr     string

	CacheTTL time.Duration
}

// GovernanceConfig holds the tunables of the tag governance core.
type GovernanceConfig struct {
	// Number of deletion requests that auto-hides a tag.
	DeletionThreshold int
	// Maximum accepted tag length in characters.
	MaxTagLength int
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	Enabled            bool          `json:"enabled"`
	WindowDuration     time.Duration `json:"window_duration"`
	DefaultRequests    int           `json:"default_requests"`
	PublicRequests     int           `json:"public_requests"`
	GovernanceRequests int           `json:"governance_requests"`
	AdminRequests      int           `json:"admin_requests"`
	HealthRequests     int           `json:"health_requests"`
	WhitelistedIPs     []string      `json:"whitelisted_ips"`
}

// KafkaConfig holds governance-event producer configuration. Publishing is
// disabled when no brokers are set.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// StorageConfig holds S3-compatible object storage configuration for image
// uploads. Uploads are disabled when no endpoint is set.
type StorageConfig struct {
	Endpoint      string
	AccessKey     string
	SecretKey     string
	Bucket        string
	UseSSL        bool
	PublicBaseURL string
	MaxUploadSize int64
}

// Load loads configuration from environment variables
func Load() *Config {
	cfg := &Config{
		// Server configuration
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		APIVersion:     getEnv("API_VERSION", "v1"),
		APIPrefix:      getEnv("API_PREFIX", "/api"),
		ReadTimeout:    getDurationEnv("READ_TIMEOUT", 15*time.Second),
		WriteTimeout:   getDurationEnv("WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:    getDurationEnv("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes: getIntEnv("MAX_HEADER_BYTES", 1<<20), // 1 MB

		// Database configuration
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			Name:     getEnv("DB_NAME", "mulnori_db"),
			User:     getEnv("DB_USER", "mulnori_user"),
			Password: getEnv("DB_PASSWORD", "mulnori_password"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},

		// Redis configuration
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
			CacheTTL: getDurationEnv("REDIS_CACHE_TTL", 15*time.Minute),
		},

		Governance: GovernanceConfig{
			DeletionThreshold: getIntEnv("TAG_DELETION_THRESHOLD", 5),
			MaxTagLength:      getIntEnv("TAG_MAX_LENGTH", 50),
		},

		// Rate limiting
		RateLimit: RateLimitConfig{
			Enabled:            getBoolEnv("RATE_LIMIT_ENABLED", true),
			WindowDuration:     getDurationEnv("RATE_LIMIT_WINDOW_DURATION", 60*time.Second),
			DefaultRequests:    getIntEnv("RATE_LIMIT_DEFAULT_REQUESTS", 60),
			PublicRequests:     getIntEnv("RATE_LIMIT_PUBLIC_REQUESTS", 120),
			GovernanceRequests: getIntEnv("RATE_LIMIT_GOVERNANCE_REQUESTS", 20),
			AdminRequests:      getIntEnv("RATE_LIMIT_ADMIN_REQUESTS", 200),
			HealthRequests:     getIntEnv("RATE_LIMIT_HEALTH_REQUESTS", 300),
			WhitelistedIPs:     getStringSliceEnv("RATE_LIMIT_WHITELISTED_IPS", []string{}),
		},

		Kafka: KafkaConfig{
			Brokers: getStringSliceEnv("KAFKA_BROKERS", []string{}),
			Topic:   getEnv("KAFKA_GOVERNANCE_TOPIC", "governance-events"),
		},

		Storage: StorageConfig{
			Endpoint:      getEnv("STORAGE_ENDPOINT", ""),
			AccessKey:     getEnv("STORAGE_ACCESS_KEY", ""),
			SecretKey:     getEnv("STORAGE_SECRET_KEY", ""),
			Bucket:        getEnv("STORAGE_BUCKET", "mulnori-images"),
			UseSSL:        getBoolEnv("STORAGE_USE_SSL", true),
			PublicBaseURL: getEnv("STORAGE_PUBLIC_BASE_URL", ""),
			MaxUploadSize: getInt64Env("MAX_UPLOAD_SIZE", 10*1024*1024), // 10 MB
		},

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "debug"),
	}

	// Build composite values
	cfg.Database.DSN = buildDatabaseDSN(cfg.Database)
	cfg.Redis.Addr = cfg.Redis.Host + ":" + cfg.Redis.Port

	return cfg
}

// buildDatabaseDSN builds the database connection string
func buildDatabaseDSN(db DatabaseConfig) string {
	return "host=" + db.Host +
		" port=" + db.Port +
		" user=" + db.User +
		" password=" + db.Password +
		" dbname=" + db.Name +
		" sslmode=" + db.SSLMode
}

// GetServerAddress returns the address the HTTP server binds to
func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

// GetAPIBasePath returns the versioned API prefix, e.g. /api/v1
func (c *Config) GetAPIBasePath() string {
	return c.APIPrefix + "/" + c.APIVersion
}

// IsDevelopment reports whether the server runs in debug mode
func (c *Config) IsDevelopment() bool {
	return c.GinMode != "release"
}

// getEnv gets an environment variable with a fallback value
func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// getIntEnv gets an integer environment variable with a fallback value
func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return fallback
}

// getInt64Env gets an int64 environment variable with a fallback value
func getInt64Env(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return fallback
}

// getDurationEnv gets a duration environment variable with a fallback value
func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return fallback
}

// getBoolEnv gets a boolean environment variable with a fallback value
func getBoolEnv(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

// getStringSliceEnv gets a comma-separated string environment variable as a slice
func getStringSliceEnv(key string, fallback []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		var result []string
		for _, part := range parts {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

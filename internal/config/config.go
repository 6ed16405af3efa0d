package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration
	Port            string        `json:"port"`
	Env             string        `json:"env"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`
	HTTPTimeout     time.Duration `json:"http_timeout"`
	BodyLimit       int           `json:"body_limit"`

	// MongoDB configuration
	MongoURI string `json:"mongo_uri"`
	MongoDB  string `json:"mongo_db"`

	// Redis configuration
	RedisURL    string        `json:"redis_url"`
	RedisPrefix string        `json:"redis_prefix"`
	CacheTTL    time.Duration `json:"cache_ttl"`

	// Auth
	JWTSecret      string        `json:"-"`
	TokenTTL       time.Duration `json:"token_ttl"`
	CookieSameSite string        `json:"cookie_samesite"`
	CookieSecure   bool          `json:"cookie_secure"`

	// Rate limiting
	AuthRateWindow time.Duration `json:"auth_rate_window"`
	AuthRateMax    int           `json:"auth_rate_max"`

	// CloudFlare R2 configuration (S3-compatible image storage)
	R2Endpoint  string `json:"r2_endpoint"`
	R2AccessKey string `json:"-"`
	R2SecretKey string `json:"-"`
	R2Bucket    string `json:"r2_bucket"`
	R2PublicURL string `json:"r2_public_url"`

	// Outbound publishing
	PublishTimeout time.Duration `json:"publish_timeout"`

	// Logging
	LogLevel string `json:"log_level"`
}

// Load loads configuration from environment variables and validates it
func Load() *Config {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	cfg := &Config{
		// Server configuration
		Port:            getEnv("PORT", "5000"),
		Env:             getEnv("APP_ENV", "development"),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		HTTPTimeout:     getEnvAsDuration("HTTP_TIMEOUT", 30*time.Second),
		BodyLimit:       getEnvAsInt("BODY_LIMIT", 25<<20), // multipart uploads

		// MongoDB configuration
		MongoURI: getEnv("MONGO_CONNECTION", "mongodb://localhost:27017"),
		MongoDB:  getEnv("MONGO_DB", "newsapi"),

		// Redis configuration
		RedisURL:    getEnv("REDIS_URL", ""),
		RedisPrefix: getEnv("REDIS_PREFIX", "newsapi:"),
		CacheTTL:    getEnvAsDuration("CACHE_TTL", 5*time.Minute),

		// Auth
		JWTSecret:      getEnv("JWT_SECRET", ""),
		TokenTTL:       getEnvAsDuration("TOKEN_TTL", 24*time.Hour),
		CookieSameSite: getEnv("COOKIE_SAMESITE", "lax"),
		CookieSecure:   getEnvAsBool("COOKIE_SECURE", false),

		// Rate limiting
		AuthRateWindow: getEnvAsDuration("AUTH_RATE_WINDOW", 5*time.Minute),
		AuthRateMax:    getEnvAsInt("AUTH_RATE_MAX", 20),

		// CloudFlare R2 configuration
		R2Endpoint:  getEnv("R2_ENDPOINT", ""),
		R2AccessKey: getEnv("R2_ACCESS_KEY", ""),
		R2SecretKey: getEnv("R2_SECRET_ACCESS_KEY", ""),
		R2Bucket:    getEnv("R2_BUCKET", "news-uploads"),
		R2PublicURL: getEnv("R2_PUBLIC_URL", ""),

		// Outbound publishing
		PublishTimeout: getEnvAsDuration("PUBLISH_TIMEOUT", 15*time.Second),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET environment variable is not set")
	}
	if c.MongoURI == "" {
		return fmt.Errorf("MONGO_CONNECTION environment variable is not set")
	}
	if c.CookieSecure && c.Env == "production" && c.CookieSameSite == "" {
		return fmt.Errorf("COOKIE_SAMESITE must be set when COOKIE_SECURE is enabled")
	}
	return nil
}

// IsProduction reports whether the app runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Helper functions for environment variable handling
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(name string, defaultVal int) int {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %d", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsBool(name string, defaultVal bool) bool {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

func getEnvAsDuration(name string, defaultVal time.Duration) time.Duration {
	valueStr := getEnv(name, "")
	if valueStr == "" {
		return defaultVal
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		log.Printf("Invalid %s value: %v, using default: %v", name, err, defaultVal)
		return defaultVal
	}
	return value
}

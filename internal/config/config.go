package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               int
	DatabaseURL        string
	RedisURL           string   // Empty disables the recipe cache
	BaseURL            string   // Public base URL of the API, used for share codes
	JWTSecret          string   // Secret key for JWT token signing
	JWTTTL             int      // JWT token expiration time in hours
	MediaRoot          string   // Directory uploaded files are written to
	MediaURL           string   // URL prefix uploaded files are served under
	MaxUploadBytes     int64    // Upper bound for a multipart upload body
	LogLevel           string   // debug, info, warn, error
	GinMode            string   // debug, release, test
	RecipeCacheTTL     int      // Recipe detail cache lifetime in minutes
	RateLimitRPS       float64  // Rate limit for general API endpoints (requests per second)
	RateLimitBurst     int      // Burst size for rate limiting
	RateLimitAuthRPS   float64  // Rate limit for account endpoints (stricter)
	RateLimitAuthBurst int      // Burst size for account endpoints
	TrustedProxies     []string // Proxies whose X-Forwarded-For is believed; empty trusts none
}

func Load() *Config {
	// Try to load .env file (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables or defaults")
	}

	return &Config{
		Port:               getEnvInt("PORT", 8080),
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		RedisURL:           getEnv("REDIS_URL", ""),
		BaseURL:            getEnv("BASE_URL", "http://localhost:8080"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		JWTTTL:             getEnvInt("JWT_TTL_HOURS", 24),
		MediaRoot:          getEnv("MEDIA_ROOT", "media"),
		MediaURL:           getEnv("MEDIA_URL", "/media"),
		MaxUploadBytes:     getEnvInt64("MAX_UPLOAD_BYTES", 5<<20),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		GinMode:            getEnv("GIN_MODE", "release"),
		RecipeCacheTTL:     getEnvInt("RECIPE_CACHE_TTL", 10),
		RateLimitRPS:       getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 20),
		RateLimitAuthRPS:   getEnvFloat("RATE_LIMIT_AUTH_RPS", 2),
		RateLimitAuthBurst: getEnvInt("RATE_LIMIT_AUTH_BURST", 5),
		TrustedProxies:     getEnvList("TRUSTED_PROXIES"),
	}
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL is required"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET is required"))
	}
	if c.JWTTTL <= 0 {
		errs = append(errs, errors.New("JWT_TTL_HOURS must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma-separated variable, dropping empty items
func getEnvList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

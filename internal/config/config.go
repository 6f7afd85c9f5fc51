package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port        int
	CORSOrigins []string

	// Database
	DatabaseURL string

	// Redis
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// Object storage
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioUseSSL    bool
	StorageBucket  string
	StoragePublic  string

	// Auth
	JWTSecret      string
	JWTTTL         time.Duration
	AuthJWKSURL    string
	AuthIssuer     string
	AuthAudience   string
	LoginRateLimit int

	// Events
	KafkaBrokers []string
	KafkaTopic   string

	// Landing page
	HomeCacheTTL time.Duration
}

// LoadDotEnv loads .env from the working directory when present
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("INFO: No .env file found, using environment variables")
	}
}

func New() *Config {
	return &Config{
		Port:        getEnvAsInt("PORT", 8080),
		CORSOrigins: getEnvAsSlice("CORS_ORIGINS", []string{"*"}),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		MinioEndpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minioadmin"),
		MinioUseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
		StorageBucket:  getEnv("STORAGE_BUCKET", "fotos-valeria"),
		StoragePublic:  getEnv("STORAGE_PUBLIC_URL", ""),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		JWTTTL:         getEnvAsDuration("JWT_TTL", "12h"),
		AuthJWKSURL:    getEnv("AUTH_JWKS_URL", ""),
		AuthIssuer:     getEnv("AUTH_JWKS_ISSUER", ""),
		AuthAudience:   getEnv("AUTH_JWKS_AUDIENCE", ""),
		LoginRateLimit: getEnvAsInt("LOGIN_RATE_LIMIT", 10),

		KafkaBrokers: getEnvAsSlice("KAFKA_BROKERS", nil),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "boutique.catalog"),

		HomeCacheTTL: getEnvAsDuration("HOME_CACHE_TTL", "5m"),
	}
}

// Validate reports settings the server cannot start without
func (c *Config) Validate() error {
	var errs []error
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("DATABASE_URL environment variable is required"))
	}
	if c.StorageBucket == "" {
		errs = append(errs, errors.New("STORAGE_BUCKET must not be empty"))
	}
	if c.AuthJWKSURL != "" && (c.AuthIssuer == "" || c.AuthAudience == "") {
		errs = append(errs, errors.New("AUTH_JWKS_ISSUER and AUTH_JWKS_AUDIENCE are required with AUTH_JWKS_URL"))
	}
	if c.HomeCacheTTL <= 0 {
		errs = append(errs, errors.New("HOME_CACHE_TTL must be positive"))
	}
	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	if duration, err := time.ParseDuration(defaultValue); err == nil {
		return duration
	}
	return time.Hour
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

package config

import (
	"errors"  // Validation errors
	"fmt"     // Error formatting
	"os"      // For environment variables
	"strconv" // For string to int conversion
	"strings" // For list parsing
	"time"    // Token lifetimes

	"github.com/joho/godotenv" // For loading .env files
)

// Supported database and storage drivers
const (
	DBDriverMySQL  = "mysql"
	DBDriverSQLite = "sqlite"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config holds the application configuration
type Config struct {
	AppPort    string // Application port
	DBDriver   string // mysql or sqlite
	DBUser     string // Database user
	DBPassword string // Database password
	DBHost     string // Database host
	DBPort     string // Database port
	DBName     string // Database name
	SQLitePath string // SQLite file used when DBDriver is sqlite

	JWTSecret       string        // JWT secret key
	AccessTokenTTL  time.Duration // Lifetime of access tokens
	RefreshTokenTTL time.Duration // Lifetime of refresh tokens

	RedisAddr string // Redis server address, empty to keep the denylist in memory
	RedisPass string // Redis password
	RedisDB   int    // Redis database number

	StorageDriver   string // local or s3
	MediaRoot       string // Directory for the local blob store
	MediaURL        string // URL prefix the local blob store is served under
	S3Bucket        string // Bucket for the s3 blob store
	AWSRegion       string // AWS region for the s3 blob store
	S3PublicBaseURL string // Optional public base URL (CDN) for s3 objects
	MaxUploadMB     int64  // Largest accepted upload in megabytes

	CORSOrigins        []string // Allowed browser origins
	DashboardAdminOnly bool     // Restrict the dashboard to admins
	LogLevel           string   // logrus level name
	LogFormat          string   // text or json
	IsProd             bool     // Is production environment
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	_ = godotenv.Load() // Load .env file if present
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	return &Config{
		AppPort:    getEnv("APP_PORT", "8000"),             // Application port
		DBDriver:   getEnv("DB_DRIVER", DBDriverMySQL),     // Database driver
		DBUser:     os.Getenv("DB_USER"),                   // Database user
		DBPassword: os.Getenv("DB_PASSWORD"),               // Database password
		DBHost:     getEnv("DB_HOST", "127.0.0.1"),         // Database host
		DBPort:     getEnv("DB_PORT", "3306"),              // Database port
		DBName:     os.Getenv("DB_NAME"),                   // Database name
		SQLitePath: getEnv("SQLITE_PATH", "userportal.db"), // SQLite database file
		JWTSecret:  os.Getenv("JWT_SECRET"),                // JWT secret key

		AccessTokenTTL:  getDuration("ACCESS_TOKEN_TTL", 5*time.Minute),
		RefreshTokenTTL: getDuration("REFRESH_TOKEN_TTL", 24*time.Hour),

		RedisAddr: os.Getenv("REDIS_ADDR"), // Redis server address
		RedisPass: os.Getenv("REDIS_PASS"), // Redis password
		RedisDB:   redisDB,                 // Redis database number

		StorageDriver:   getEnv("STORAGE_DRIVER", StorageLocal),
		MediaRoot:       getEnv("MEDIA_ROOT", "media"),
		MediaURL:        getEnv("MEDIA_URL", "/media/"),
		S3Bucket:        os.Getenv("S3_BUCKET_NAME"),
		AWSRegion:       os.Getenv("AWS_REGION"),
		S3PublicBaseURL: os.Getenv("S3_PUBLIC_BASE_URL"),
		MaxUploadMB:     getInt64("MAX_UPLOAD_MB", 10),

		CORSOrigins:        splitList(os.Getenv("CORS_ORIGINS")),
		DashboardAdminOnly: os.Getenv("DASHBOARD_ADMIN_ONLY") == "true",
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		IsProd:             os.Getenv("IS_PROD") == "true", // Is production environment
	}
}

// Validate reports configuration that would prevent the server from starting
func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	switch c.DBDriver {
	case DBDriverMySQL:
		if c.DBName == "" {
			return errors.New("DB_NAME is required for the mysql driver")
		}
	case DBDriverSQLite:
	default:
		return fmt.Errorf("unknown DB_DRIVER %q", c.DBDriver)
	}
	switch c.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			return errors.New("S3_BUCKET_NAME is required for the s3 storage driver")
		}
	default:
		return fmt.Errorf("unknown STORAGE_DRIVER %q", c.StorageDriver)
	}
	if c.MaxUploadMB <= 0 {
		return errors.New("MAX_UPLOAD_MB must be positive")
	}
	return nil
}

// MaxUploadBytes is MaxUploadMB in bytes
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}

// MySQLDSN builds the Data Source Name for the mysql driver
func (c *Config) MySQLDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=true"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if d, err := time.ParseDuration(os.Getenv(key)); err == nil && d > 0 {
		return d
	}
	return def
}

func getInt64(key string, def int64) int64 {
	if v, err := strconv.ParseInt(os.Getenv(key), 10, 64); err == nil {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

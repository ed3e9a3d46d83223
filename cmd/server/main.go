package main

import (
	"context"                        // context package is needed for Redis and AWS setup
	"userportal/internal/config"     // Custom package for configuration
	"userportal/internal/db"         // Custom package for database setup
	"userportal/internal/repository" // Custom package for persistence
	"userportal/internal/server"     // Custom package for routing
	"userportal/internal/storage"    // Custom package for blob storage
	"userportal/internal/utils"      // Custom package for token utilities

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
	"github.com/sirupsen/logrus"   // Logrus for structured logging
)

// Main function to set up and run the server
func main() {
	cfg := config.LoadConfig() // Load configuration
	setupLogger(cfg)
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("invalid configuration: %v", err)
	}
	ctx := context.Background()

	// Connect to the database and make sure the schema is current
	conn, err := db.Open(cfg)
	if err != nil {
		logrus.Fatalf("%v", err) // Fatal error if DB connection fails
	}
	if err := db.Migrate(conn); err != nil {
		logrus.Fatalf("%v", err)
	}

	blobs, err := newBlobStore(ctx, cfg)
	if err != nil {
		logrus.Fatalf("failed to set up blob storage: %v", err)
	}

	// Refresh-token denylist lives in Redis when configured
	var denylist utils.TokenDenylist
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr, // Redis server address
			Password: cfg.RedisPass, // Redis password
			DB:       cfg.RedisDB,   // Redis database number
		})
		// Test Redis connection
		if _, err := redisClient.Ping(ctx).Result(); err != nil {
			logrus.Fatalf("failed to connect to Redis: %v", err)
		}
		denylist = utils.NewRedisDenylist(redisClient)
	} else {
		logrus.Warn("REDIS_ADDR not set, revoked tokens are kept in memory")
		denylist = utils.NewMemoryDenylist()
	}

	// Set Mode to Release if in production
	if cfg.IsProd {
		gin.SetMode(gin.ReleaseMode)
	}

	r := server.NewRouter(cfg, server.Deps{
		Store:    repository.NewGormStore(conn),
		Blobs:    blobs,
		Denylist: denylist,
	})

	// Set trusted proxies for Gin
	if err := r.SetTrustedProxies([]string{"127.0.0.1"}); err != nil {
		logrus.Fatalf("failed to set trusted proxies: %v", err)
	}

	logrus.WithFields(logrus.Fields{
		"port":    cfg.AppPort,
		"db":      cfg.DBDriver,
		"storage": cfg.StorageDriver,
	}).Info("Server running")
	if err := r.Run(":" + cfg.AppPort); err != nil { // Start the server on port cfg.AppPort
		logrus.Fatalf("server stopped: %v", err)
	}
}

// setupLogger applies LOG_FORMAT and LOG_LEVEL
func setupLogger(cfg *config.Config) {
	if cfg.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}

// newBlobStore picks the blob backend named by STORAGE_DRIVER
func newBlobStore(ctx context.Context, cfg *config.Config) (storage.BlobStore, error) {
	if cfg.StorageDriver == config.StorageS3 {
		s3Store, err := storage.NewS3Store(ctx, cfg.S3Bucket, cfg.AWSRegion, cfg.S3PublicBaseURL)
		if err != nil {
			return nil, err
		}
		return s3Store, nil
	}
	local, err := storage.NewLocalStore(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return nil, err
	}
	return local, nil
}

package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ACCESS_TOKEN_TTL", "")
	t.Setenv("MAX_UPLOAD_MB", "")
	t.Setenv("CORS_ORIGINS", "")

	cfg := LoadConfig()
	assert.Equal(t, DBDriverMySQL, cfg.DBDriver)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, int64(10), cfg.MaxUploadMB)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
	assert.Empty(t, cfg.CORSOrigins)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "15m")
	t.Setenv("CORS_ORIGINS", "http://localhost:5173, http://localhost:3000 ,")
	t.Setenv("DASHBOARD_ADMIN_ONLY", "true")
	t.Setenv("REDIS_DB", "2")

	cfg := LoadConfig()
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.True(t, cfg.DashboardAdminOnly)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			JWTSecret:     "secret",
			DBDriver:      DBDriverSQLite,
			StorageDriver: StorageLocal,
			MaxUploadMB:   1,
		}
	}
	require.NoError(t, base().Validate())

	cfg := base()
	cfg.JWTSecret = ""
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.DBDriver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = base()
	cfg.DBDriver = DBDriverMySQL
	assert.Error(t, cfg.Validate(), "mysql needs a database name")

	cfg = base()
	cfg.StorageDriver = StorageS3
	assert.Error(t, cfg.Validate(), "s3 needs a bucket")
}

func TestMySQLDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "portal"}
	assert.Equal(t, "u:p@tcp(db:3306)/portal?charset=utf8mb4&parseTime=true", cfg.MySQLDSN())
}

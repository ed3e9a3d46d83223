package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"userportal/internal/db"
	"userportal/internal/domain"
	"userportal/internal/repository"
	"userportal/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
)

const secret = "test-secret"

func newStore(t *testing.T) *repository.GormStore {
	t.Helper()
	conn, err := db.OpenDialector(sqlite.Open(":memory:"), true)
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(conn))
	return repository.NewGormStore(conn)
}

func newRouter(store repository.Store, extra ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := append([]gin.HandlerFunc{JWTAuthMiddleware(secret, store)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetUint(ContextUserID)})
	})
	r.GET("/private", handlers...)
	return r
}

func get(r *gin.Engine, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	store := newStore(t)
	user := &domain.User{Username: "alice", Password: "hash"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	r := newRouter(store)

	access, err := utils.GenerateJWT(user.ID, utils.TokenTypeAccess, secret, time.Minute)
	require.NoError(t, err)
	w := get(r, "Bearer "+access)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user_id":`+jsonUint(user.ID)+`}`, w.Body.String())

	assert.Equal(t, http.StatusUnauthorized, get(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Token "+access).Code)

	refresh, err := utils.GenerateJWT(user.ID, utils.TokenTypeRefresh, secret, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+refresh).Code)

	ghost, err := utils.GenerateJWT(user.ID+100, utils.TokenTypeAccess, secret, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, get(r, "Bearer "+ghost).Code)
}

func TestAdminOnlyMiddleware(t *testing.T) {
	store := newStore(t)
	ctx := context.Background()
	user := &domain.User{Username: "alice", Password: "hash"}
	admin := &domain.User{Username: "root", Password: "hash", Role: domain.RoleAdmin}
	require.NoError(t, store.CreateUser(ctx, user))
	require.NoError(t, store.CreateUser(ctx, admin))
	r := newRouter(store, AdminOnlyMiddleware(store))

	userToken, err := utils.GenerateJWT(user.ID, utils.TokenTypeAccess, secret, time.Minute)
	require.NoError(t, err)
	adminToken, err := utils.GenerateJWT(admin.ID, utils.TokenTypeAccess, secret, time.Minute)
	require.NoError(t, err)

	assert.Equal(t, http.StatusForbidden, get(r, "Bearer "+userToken).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+adminToken).Code)
}

func TestRequestLoggerPassesThrough(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestLogger())
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusTeapot, "pong") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, "pong", w.Body.String())
}

func jsonUint(v uint) string {
	return strconv.FormatUint(uint64(v), 10)
}

package api

import (
	"net/http"                       // HTTP status codes
	"userportal/internal/repository" // Persistence

	"github.com/gin-gonic/gin" // Gin web framework
)

// DashboardHandler returns file counts across every account, recomputed on each call
func DashboardHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := currentUserID(c); !ok {
			return
		}
		stats, err := store.DashboardStats(c.Request.Context())
		if err != nil {
			respondStoreError(c, err, "dashboard", "Not found.")
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

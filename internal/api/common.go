package api

import (
	"errors"                         // Error inspection
	"net/http"                       // HTTP status codes
	"strconv"                        // String conversion
	"strings"                        // String manipulation
	"userportal/internal/middleware" // Context keys
	"userportal/internal/repository" // Repository errors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// currentUserID returns the authenticated user's ID, writing a 401 when there is none
func currentUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint(middleware.ContextUserID) // Get userID from context
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return 0, false
	}
	return userID, true
}

// pathID parses a numeric route parameter. Anything else is treated as a missing record.
func pathID(c *gin.Context, name, notFoundMsg string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return 0, false
	}
	return uint(id), true
}

// respondStoreError maps repository errors onto HTTP responses
func respondStoreError(c *gin.Context, err error, op, notFoundMsg string) {
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": notFoundMsg})
		return
	}
	logrus.WithFields(logrus.Fields{
		"user_id": c.GetUint(middleware.ContextUserID), // User ID
		"op":      op,                                  // Operation name
		"error":   err.Error(),                         // Error message
	}).Error("Store operation failed")
	c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
}

// absoluteURL resolves a server-relative URL against the request's origin
func absoluteURL(c *gin.Context, u string) string {
	if strings.HasPrefix(u, "http://") || strings.HasPrefix(u, "https://") {
		return u
	}
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(c.GetHeader("X-Forwarded-Proto")); proto {
	case "http", "https":
		scheme = proto
	}
	return scheme + "://" + c.Request.Host + u
}

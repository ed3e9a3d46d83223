package middleware

import (
	"net/http"                       // HTTP status codes
	"userportal/internal/domain"     // Importing domain models
	"userportal/internal/repository" // User lookups

	"github.com/gin-gonic/gin" // Gin web framework
)

// AdminOnlyMiddleware checks the user's role from the database on each request
func AdminOnlyMiddleware(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint(ContextUserID) // Get userID from context
		// Check if userID exists in context
		if userID == 0 {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		user, err := store.GetUser(c.Request.Context(), userID) // Fetch user from database
		// If user not found or not an admin, abort with forbidden status
		if err != nil || user.Role != domain.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			return
		}
		c.Next() // If admin, proceed to the next handler
	}
}

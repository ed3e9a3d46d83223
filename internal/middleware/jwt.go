package middleware

import (
	"net/http"                       // HTTP status codes
	"strings"                        // String manipulation
	"userportal/internal/repository" // User lookups
	"userportal/internal/utils"      // JWT utility functions

	"github.com/gin-gonic/gin" // Gin web framework
)

// ContextUserID is the gin context key holding the authenticated user's ID
const ContextUserID = "userID"

// JWTAuthMiddleware validates access tokens and makes sure the account still exists
func JWTAuthMiddleware(secret string, store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization") // Get Authorization header
		// Check if the Authorization header is present and properly formatted
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication credentials were not provided."})
			return
		}
		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")                 // Extract the token string
		claims, err := utils.ParseJWT(tokenStr, secret, utils.TokenTypeAccess) // Parse the JWT token
		if err != nil {
			// If parsing fails, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			return
		}
		// Tokens outlive deleted accounts, so confirm the identity
		if _, err := store.GetUser(c.Request.Context(), claims.UserID); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		c.Set(ContextUserID, claims.UserID) // Store userID in context
		c.Next()                            // Proceed to the next handler
	}
}

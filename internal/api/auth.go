package api

import (
	"errors"                         // Error inspection
	"net/http"                       // HTTP status codes
	"regexp"                         // Regular expressions
	"time"                           // Token lifetimes
	"userportal/internal/domain"     // Importing domain models
	"userportal/internal/repository" // Persistence
	"userportal/internal/storage"    // Blob storage
	"userportal/internal/utils"      // Utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
	"golang.org/x/crypto/bcrypt" // Password hashing
)

// TokenConfig carries what the token endpoints need to sign tokens
type TokenConfig struct {
	Secret     string        // JWT secret key
	AccessTTL  time.Duration // Access token lifetime
	RefreshTTL time.Duration // Refresh token lifetime
}

// Request struct for registration
type RegisterRequest struct {
	Username string `json:"username" binding:"required,max=150"`       // Username must be provided
	Password string `json:"password" binding:"required,min=8,max=128"` // Password must be provided
	Email    string `json:"email" binding:"omitempty,email,max=254"`   // Optional email
}

// Request struct for login
type LoginRequest struct {
	Username string `json:"username" binding:"required"` // Username must be provided
	Password string `json:"password" binding:"required"` // Password must be provided
}

// Request struct carrying a refresh token
type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"` // Refresh token
}

var usernamePattern = regexp.MustCompile(`^[\p{L}\p{N}_.@+-]+$`)

// isValidUsername checks the username only uses letters, digits and @/./+/-/_
func isValidUsername(username string) bool {
	return usernamePattern.MatchString(username)
}

// RegisterHandler creates a new account
func RegisterHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err) // If binding fails, return field errors
			return
		}
		// Validate username characters
		if !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, FieldErrors{"username": {"Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."}})
			return
		}
		// Hash the password and create the user
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			// If hashing fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hash password"})
			return
		}
		user := domain.User{Username: req.Username, Email: req.Email, Password: string(hash)}
		// Attempt to create the user in the database
		if err := store.CreateUser(c.Request.Context(), &user); err != nil {
			if errors.Is(err, repository.ErrUsernameTaken) {
				c.JSON(http.StatusBadRequest, FieldErrors{"username": {"A user with that username already exists."}})
				return
			}
			respondStoreError(c, err, "register", "")
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  user.ID,       // New user ID
			"username": user.Username, // Username
		}).Info("User registered")
		// Return success response
		c.JSON(http.StatusCreated, gin.H{"id": user.ID, "username": user.Username, "email": user.Email})
	}
}

// LoginHandler authenticates a user and returns an access/refresh token pair
func LoginHandler(store repository.Store, tc TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		user, err := store.GetUserByUsername(c.Request.Context(), req.Username) // Fetch user from database
		if err != nil {
			// If user not found, return unauthorized
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
			return
		}
		// Compare provided password with stored hash
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No active account found with the given credentials"})
			return
		}
		// Generate JWT tokens
		pair, err := utils.GenerateTokenPair(user.ID, tc.Secret, tc.AccessTTL, tc.RefreshTTL)
		if err != nil {
			// If token generation fails, return internal server error
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, pair) // Return the tokens in the response
	}
}

// RefreshHandler exchanges a valid, unrevoked refresh token for a new access token
func RefreshHandler(store repository.Store, denylist utils.TokenDenylist, tc TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		ctx := c.Request.Context()
		claims, err := utils.ParseJWT(req.Refresh, tc.Secret, utils.TokenTypeRefresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}
		revoked, err := denylist.IsRevoked(ctx, claims.ID)
		if err != nil {
			logrus.WithError(err).Error("Failed to check token denylist")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		if revoked {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is blacklisted"})
			return
		}
		// The account may have been deleted since the token was issued
		if _, err := store.GetUser(ctx, claims.UserID); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}
		access, err := utils.GenerateJWT(claims.UserID, utils.TokenTypeAccess, tc.Secret, tc.AccessTTL)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate token"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"access": access})
	}
}

// BlacklistHandler revokes a refresh token until it expires
func BlacklistHandler(denylist utils.TokenDenylist, tc TokenConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		claims, err := utils.ParseJWT(req.Refresh, tc.Secret, utils.TokenTypeRefresh)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Token is invalid or expired"})
			return
		}
		ttl := time.Until(claims.ExpiresAt.Time) // Remember the id only while the token could still be used
		if err := denylist.Revoke(c.Request.Context(), claims.ID, ttl); err != nil {
			logrus.WithError(err).Error("Failed to revoke token")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}
		logrus.WithField("user_id", claims.UserID).Info("Refresh token revoked")
		c.JSON(http.StatusOK, gin.H{"message": "Token revoked"})
	}
}

// DeleteAccountHandler removes the requester and everything they own
func DeleteAccountHandler(store repository.Store, blobs storage.BlobStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		refs, err := store.DeleteUser(ctx, userID)
		if err != nil {
			respondStoreError(c, err, "delete_account", "User not found")
			return
		}
		// Rows are gone; blob cleanup failures only leave orphaned objects behind
		for _, ref := range refs {
			if err := blobs.Delete(ctx, ref); err != nil {
				logrus.WithFields(logrus.Fields{"user_id": userID, "file": ref, "error": err.Error()}).Warn("Failed to delete blob")
			}
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,    // Deleted user ID
			"files":   len(refs), // Number of files removed
		}).Info("Account deleted")
		c.Status(http.StatusNoContent)
	}
}

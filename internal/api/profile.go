package api

import (
	"errors"                         // Error inspection
	"io"                             // Empty body detection
	"net/http"                       // HTTP status codes
	"unicode/utf8"                   // Character counting
	"userportal/internal/domain"     // Importing domain models
	"userportal/internal/repository" // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const userNotFound = "User not found"

// ProfileResponse is the wire shape of the requester's identity
type ProfileResponse struct {
	ID        uint              `json:"id"`       // User ID
	Username  string            `json:"username"` // Username
	Email     string            `json:"email"`    // Email
	Profile   *PhoneResponse    `json:"profile"`  // Null until a phone number is set
	Addresses []AddressResponse `json:"address"`  // All addresses
}

// PhoneResponse is the nested profile object
type PhoneResponse struct {
	PhoneNumber string `json:"phone_number"`
}

// UsernameRequest carries a new username
type UsernameRequest struct {
	Username string `json:"username"`
}

// PhoneRequest carries a new phone number
type PhoneRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// GetProfileHandler returns the authenticated user's identity, phone and addresses
func GetProfileHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		user, err := store.GetUserDetail(c.Request.Context(), userID)
		if err != nil {
			respondStoreError(c, err, "get_profile", userNotFound)
			return
		}
		resp := ProfileResponse{
			ID:        user.ID,
			Username:  user.Username,
			Email:     user.Email,
			Addresses: make([]AddressResponse, len(user.Addresses)),
		}
		if user.Profile != nil {
			resp.Profile = &PhoneResponse{PhoneNumber: user.Profile.PhoneNumber}
		}
		for i, a := range user.Addresses {
			resp.Addresses[i] = newAddressResponse(a)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateUsernameHandler renames the authenticated user
func UpdateUsernameHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req UsernameRequest
		// An empty body falls through to the missing username message
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondValidation(c, err)
			return
		}
		if req.Username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username is required"})
			return
		}
		if utf8.RuneCountInString(req.Username) > domain.MaxUsernameLength || !isValidUsername(req.Username) {
			c.JSON(http.StatusBadRequest, FieldErrors{"username": {"Enter a valid username of at most 150 letters, numbers, and @/./+/-/_ characters."}})
			return
		}
		err := store.UpdateUsername(c.Request.Context(), userID, req.Username)
		if errors.Is(err, repository.ErrUsernameTaken) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}
		if err != nil {
			respondStoreError(c, err, "update_username", userNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id":  userID,       // User ID
			"username": req.Username, // New username
		}).Info("Username updated")
		c.JSON(http.StatusOK, gin.H{"message": "Username updated successfully", "username": req.Username})
	}
}

// UpdatePhoneHandler sets the authenticated user's phone number, creating the profile if needed
func UpdatePhoneHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req PhoneRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondValidation(c, err)
			return
		}
		if req.PhoneNumber == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Phone number is required"})
			return
		}
		if utf8.RuneCountInString(req.PhoneNumber) > domain.MaxPhoneNumberLength {
			c.JSON(http.StatusBadRequest, FieldErrors{"phone_number": {"Ensure this field has no more than 15 characters."}})
			return
		}
		profile, err := store.SetPhoneNumber(c.Request.Context(), userID, req.PhoneNumber)
		if err != nil {
			respondStoreError(c, err, "update_phone", userNotFound)
			return
		}
		logrus.WithField("user_id", userID).Info("Phone number updated")
		c.JSON(http.StatusOK, gin.H{"message": "Phone number updated successfully", "phone_number": profile.PhoneNumber})
	}
}

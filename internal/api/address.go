package api

import (
	"errors"                         // Error inspection
	"io"                             // Empty body detection
	"net/http"                       // HTTP status codes
	"userportal/internal/domain"     // Importing domain models
	"userportal/internal/repository" // Persistence

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

const addressNotFound = "Address not found"

// AddressRequest is a complete address
type AddressRequest struct {
	Street     string `json:"street" binding:"required,max=255"`
	City       string `json:"city" binding:"required,max=100"`
	State      string `json:"state" binding:"required,max=100"`
	Country    string `json:"country" binding:"required,max=100"`
	PostalCode string `json:"postal_code" binding:"required,max=20"`
}

// AddressPatchRequest is a partial address; omitted fields stay unchanged
type AddressPatchRequest struct {
	Street     *string `json:"street" binding:"omitnil,min=1,max=255"`
	City       *string `json:"city" binding:"omitnil,min=1,max=100"`
	State      *string `json:"state" binding:"omitnil,min=1,max=100"`
	Country    *string `json:"country" binding:"omitnil,min=1,max=100"`
	PostalCode *string `json:"postal_code" binding:"omitnil,min=1,max=20"`
}

// AddressResponse is the wire shape of an Address
type AddressResponse struct {
	ID         uint   `json:"id"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	Country    string `json:"country"`
	PostalCode string `json:"postal_code"`
}

func newAddressResponse(a domain.Address) AddressResponse {
	return AddressResponse{
		ID:         a.ID,
		Street:     a.Street,
		City:       a.City,
		State:      a.State,
		Country:    a.Country,
		PostalCode: a.PostalCode,
	}
}

// AddAddressHandler stores a new address for the authenticated user
func AddAddressHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AddressRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidation(c, err)
			return
		}
		address := domain.Address{
			UserID:     userID,
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			Country:    req.Country,
			PostalCode: req.PostalCode,
		}
		if err := store.CreateAddress(c.Request.Context(), &address); err != nil {
			respondStoreError(c, err, "add_address", addressNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "address_id": address.ID}).Info("Address added")
		c.JSON(http.StatusCreated, newAddressResponse(address))
	}
}

// ListAddressesHandler returns the authenticated user's addresses
func ListAddressesHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		addresses, err := store.ListAddresses(c.Request.Context(), userID)
		if err != nil {
			respondStoreError(c, err, "list_addresses", addressNotFound)
			return
		}
		resp := make([]AddressResponse, len(addresses))
		for i, a := range addresses {
			resp[i] = newAddressResponse(a)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// UpdateAddressHandler applies a partial update to one of the authenticated user's addresses
func UpdateAddressHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id", addressNotFound)
		if !ok {
			return
		}
		var req AddressPatchRequest
		// An empty body is a valid patch that changes nothing
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondValidation(c, err)
			return
		}
		patch := domain.AddressPatch{
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			Country:    req.Country,
			PostalCode: req.PostalCode,
		}
		address, err := store.UpdateAddress(c.Request.Context(), id, userID, patch)
		if err != nil {
			respondStoreError(c, err, "update_address", addressNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "address_id": id}).Info("Address updated")
		c.JSON(http.StatusOK, newAddressResponse(*address))
	}
}

// DeleteAddressHandler deletes one of the authenticated user's addresses
func DeleteAddressHandler(store repository.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		id, ok := pathID(c, "id", addressNotFound)
		if !ok {
			return
		}
		if err := store.DeleteAddress(c.Request.Context(), id, userID); err != nil {
			respondStoreError(c, err, "delete_address", addressNotFound)
			return
		}
		logrus.WithFields(logrus.Fields{"user_id": userID, "address_id": id}).Info("Address deleted")
		c.Status(http.StatusNoContent)
	}
}

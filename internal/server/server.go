// Package server wires handlers, middleware and collaborators into a gin engine.
package server

import (
	"net/http"
	"time"

	"userportal/internal/api"
	"userportal/internal/config"
	"userportal/internal/middleware"
	"userportal/internal/repository"
	"userportal/internal/storage"
	"userportal/internal/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Deps are the collaborators the routes call into
type Deps struct {
	Store    repository.Store
	Blobs    storage.BlobStore
	Denylist utils.TokenDenylist
}

// NewRouter builds the gin engine serving the portal API under /api
func NewRouter(cfg *config.Config, deps Deps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())
	r.MaxMultipartMemory = cfg.MaxUploadBytes()

	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Blobs written by the local store are served by the API itself
	if local, ok := deps.Blobs.(*storage.LocalStore); ok {
		r.Static(local.URLPrefix(), local.Root())
	}

	tc := api.TokenConfig{
		Secret:     cfg.JWTSecret,
		AccessTTL:  cfg.AccessTokenTTL,
		RefreshTTL: cfg.RefreshTokenTTL,
	}

	apiGroup := r.Group("/api")

	// Auth routes
	apiGroup.POST("/register/", api.RegisterHandler(deps.Store))
	apiGroup.POST("/token/", api.LoginHandler(deps.Store, tc))
	apiGroup.POST("/token/refresh/", api.RefreshHandler(deps.Store, deps.Denylist, tc))
	apiGroup.POST("/token/blacklist/", api.BlacklistHandler(deps.Denylist, tc))

	// Portal routes (protected by JWT)
	authed := apiGroup.Group("")
	authed.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret, deps.Store))

	authed.DELETE("/account/", api.DeleteAccountHandler(deps.Store, deps.Blobs))

	authed.GET("/files/", api.ListFilesHandler(deps.Store, deps.Blobs))
	authed.POST("/files/", api.UploadFileHandler(deps.Store, deps.Blobs, cfg.MaxUploadBytes()))
	authed.GET("/files/:id/", api.GetFileHandler(deps.Store, deps.Blobs))
	authed.DELETE("/files/:id/", api.DeleteFileHandler(deps.Store, deps.Blobs))

	if cfg.DashboardAdminOnly {
		authed.GET("/dashboard/", middleware.AdminOnlyMiddleware(deps.Store), api.DashboardHandler(deps.Store))
	} else {
		authed.GET("/dashboard/", api.DashboardHandler(deps.Store))
	}

	authed.GET("/profile/", api.GetProfileHandler(deps.Store))
	authed.PATCH("/profile/update-username/", api.UpdateUsernameHandler(deps.Store))
	authed.PATCH("/profile/update-phone/", api.UpdatePhoneHandler(deps.Store))
	authed.GET("/profile/addresses/", api.ListAddressesHandler(deps.Store))
	authed.POST("/profile/addresses/add/", api.AddAddressHandler(deps.Store))
	authed.PATCH("/profile/addresses/update/:id/", api.UpdateAddressHandler(deps.Store))
	authed.DELETE("/profile/addresses/delete/:id/", api.DeleteAddressHandler(deps.Store))

	return r
}

package server

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/uyenbatu/wedding-backend/internal/middleware"
	"github.com/uyenbatu/wedding-backend/internal/photos"
	"github.com/uyenbatu/wedding-backend/internal/rsvps"
	"github.com/uyenbatu/wedding-backend/pkg/response"
)

var (
	errMissingRSVPHandler  = errors.New("rsvp handler dependency required")
	errMissingPhotoHandler = errors.New("photo handler dependency required")
)

// Dependencies are the handlers and settings the router is built from.
type Dependencies struct {
	RSVPs          *rsvps.Handler
	Photos         *photos.Handler
	AllowedOrigins []string
	Logger         *zap.Logger
}

// NewRouter builds the HTTP API. Every response carries CORS headers,
// preflight requests get 204 and a wrong method gets 405.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	if deps.RSVPs == nil {
		return nil, errMissingRSVPHandler
	}
	if deps.Photos == nil {
		return nil, errMissingPhotoHandler
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(deps.AllowedOrigins))
	router.Use(middleware.Logger(logger))
	router.NoMethod(response.MethodNotAllowed)

	router.GET("/health", func(c *gin.Context) { response.OK(c, gin.H{"status": "ok"}) })

	api := router.Group("/api")
	{
		api.POST("/rsvp", deps.RSVPs.Submit)
		api.POST("/rsvp-update", deps.RSVPs.Update)
		api.GET("/rsvp-lookup", deps.RSVPs.Lookup)

		api.POST("/upload-token", deps.Photos.UploadToken)
		api.POST("/photo-metadata", deps.Photos.Metadata)
	}
	return router, nil
}

// routes.go - Route registration helpers
package api

import (
	"github.com/labstack/echo/v4"

	"github.com/sheetdash/backend/internal/auth"
	"github.com/sheetdash/backend/internal/files"
)

// Dependencies holds everything the handlers need.
type Dependencies struct {
	Files   *files.Service
	Auth    *auth.Service
	Version string
}

// Handlers holds all handler instances.
type Handlers struct {
	Health *HealthHandler
	Files  *FileHandler
	Auth   *AuthHandler

	authMW echo.MiddlewareFunc
}

// NewHandlers creates all handler instances.
func NewHandlers(deps *Dependencies) *Handlers {
	return &Handlers{
		Health: NewHealthHandler(deps.Version),
		Files:  NewFileHandler(deps.Files),
		Auth:   NewAuthHandler(deps.Auth),
		authMW: deps.Auth.Middleware(),
	}
}

// RegisterRoutes registers all API routes with the Echo instance. Reading
// (list, view) is public; every mutation requires an admin bearer token.
func RegisterRoutes(e *echo.Echo, h *Handlers) {
	e.HTTPErrorHandler = ErrorHandler

	apiGroup := e.Group("/api")
	apiGroup.GET("/health", h.Health.HandleHealth)
	apiGroup.POST("/auth/login", h.Auth.HandleLogin)

	filesGroup := apiGroup.Group("/files")
	filesGroup.GET("", h.Files.HandleListFiles)
	filesGroup.GET("/view/:id", h.Files.HandleView)
	filesGroup.GET("/view/:id/msgpack", h.Files.HandleViewMsgpack)

	admin := filesGroup.Group("", h.authMW)
	admin.POST("/upload", h.Files.HandleUpload)
	admin.DELETE("/:id", h.Files.HandleDelete)
	admin.POST("/:id/mark-for-deletion", h.Files.HandleMarkForDeletion)
	admin.POST("/apply-changes", h.Files.HandleApplyChanges)
	admin.POST("/:id/visibility", h.Files.HandleUpdateVisibility)
}

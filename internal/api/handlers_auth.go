// handlers_auth.go - Admin login handler
package api

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sheetdash/backend/internal/auth"
)

// AuthHandler exposes the login operation.
type AuthHandler struct {
	auth *auth.Service
}

func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{auth: svc}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// HandleLogin checks the admin credentials and returns a bearer token
// valid for one hour.
func (h *AuthHandler) HandleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return NewBadRequestError("invalid JSON body", err)
	}

	token, err := h.auth.Login(req.Username, req.Password)
	if err != nil {
		return mapAuthError(err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"success": true,
		"token":   token,
		"message": "Login successful",
	})
}

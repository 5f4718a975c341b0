package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook/backend/internal/middleware"
	"github.com/forkful/recipebook/backend/internal/types"
)

// UserHandler serves the authenticated user's own profile.
type UserHandler struct{}

func NewUserHandler() *UserHandler {
	return &UserHandler{}
}

// GetProfile returns the principal resolved from the verified token.
func (h *UserHandler) GetProfile(c *gin.Context) {
	principal, ok := middleware.Principal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, types.MessageResponse{Message: "authentication required"})
		return
	}

	c.JSON(http.StatusOK, types.UserInfoResponse{
		ID:       principal.UserID,
		Username: principal.Username,
		Email:    principal.Email,
		Roles:    principal.Roles,
	})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkful/recipebook/backend/internal/service"
	"github.com/forkful/recipebook/backend/internal/types"
)

// AdminHandler serves user and role management. Every route here sits
// behind the ADMIN role guard in the router.
type AdminHandler struct {
	admin *service.AdminService
}

func NewAdminHandler(admin *service.AdminService) *AdminHandler {
	return &AdminHandler{admin: admin}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.admin.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	resp := make([]types.UserInfoResponse, 0, len(users))
	for i := range users {
		resp = append(resp, types.UserInfoResponse{
			ID:       users[i].ID,
			Username: users[i].Username,
			Email:    users[i].Email,
			Roles:    users[i].RoleNames(),
		})
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteUser is idempotent by id: deleting an absent user still answers
// with the success message.
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid user id"})
		return
	}

	if err := h.admin.DeleteUser(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "User deleted successfully!"})
}

func (h *AdminHandler) UpdateUser(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid user id"})
		return
	}

	var req types.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.admin.UpdateUser(c.Request.Context(), id, req.Username, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "User updated successfully!"})
}

// SetUserRole replaces the user's entire role set with the single role
// named in the query string.
func (h *AdminHandler) SetUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid user id"})
		return
	}

	if err := h.admin.SetUserRole(c.Request.Context(), id, c.Query("role")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Role updated successfully!"})
}

func (h *AdminHandler) RemoveUserRole(c *gin.Context) {
	id, err := uuid.Parse(c.Param("userId"))
	if err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid user id"})
		return
	}

	if err := h.admin.RemoveUserRole(c.Request.Context(), id, c.Query("role")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, types.MessageResponse{Message: "Role removed successfully!"})
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook/backend/internal/service"
	"github.com/forkful/recipebook/backend/internal/types"
)

// AuthHandler serves the signup/signin/signout flow. The session token
// travels as an HttpOnly cookie set on signin and cleared on signout.
type AuthHandler struct {
	auth       *service.AuthService
	tokens     *service.TokenService
	cookieName string
	maxAge     int
}

func NewAuthHandler(auth *service.AuthService, tokens *service.TokenService, cookieName string, maxAge int) *AuthHandler {
	return &AuthHandler{
		auth:       auth,
		tokens:     tokens,
		cookieName: cookieName,
		maxAge:     maxAge,
	}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.auth.Signup(c.Request.Context(), req.Username, req.Email, req.Password, req.Role); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "User registered successfully!"})
}

// SignupAdmin is the admin-gated signup variant; the new account always
// holds ROLE_ADMIN regardless of any role hint.
func (h *AuthHandler) SignupAdmin(c *gin.Context) {
	var req types.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	if _, err := h.auth.SignupAdmin(c.Request.Context(), req.Username, req.Email, req.Password); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.MessageResponse{Message: "User registered successfully!"})
}

func (h *AuthHandler) Signin(c *gin.Context) {
	var req types.SigninRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, types.MessageResponse{Message: "invalid request body"})
		return
	}

	user, err := h.auth.Signin(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		respondError(c, err)
		return
	}

	c.SetCookie(h.cookieName, token, h.maxAge, "/", "", false, true)
	c.JSON(http.StatusOK, types.UserInfoResponse{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
		Roles:    user.RoleNames(),
	})
}

// Signout clears the session cookie. Tokens are stateless, so there is
// nothing to revoke server-side; an already-issued token stays valid until
// it expires.
func (h *AuthHandler) Signout(c *gin.Context) {
	c.SetCookie(h.cookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, types.MessageResponse{Message: "You've been signed out!"})
}

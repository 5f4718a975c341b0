package types

import "github.com/google/uuid"

// SignupRequest is the body for POST /api/auth/signup. Role carries the
// optional role hint; "chef" requests ROLE_CHEF, anything else falls back
// to ROLE_USER.
type SignupRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     []string `json:"role"`
}

// SigninRequest is the body for POST /api/auth/signin.
type SigninRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserInfoResponse mirrors the original API's user payload. It never
// carries the password hash.
type UserInfoResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
}

// MessageResponse is the generic message body used by auth and admin
// endpoints.
type MessageResponse struct {
	Message string `json:"message"`
}

// CreateRecipeRequest is the body for POST /api/recipe. The author is
// always the authenticated caller; a client-supplied author id would be
// ignored, so the field does not exist.
type CreateRecipeRequest struct {
	Title       string `json:"title" binding:"required"`
	Ingredients string `json:"ingredients" binding:"required"`
	Keywords    string `json:"keywords" binding:"required"`
}

// UpdateRecipeRequest is the body for PUT /api/recipe. Ownership is
// checked against the stored recipe's author, never against anything the
// client sends.
type UpdateRecipeRequest struct {
	ID          uuid.UUID `json:"id" binding:"required"`
	Title       string    `json:"title" binding:"required"`
	Ingredients string    `json:"ingredients" binding:"required"`
	Keywords    string    `json:"keywords" binding:"required"`
}

// CreateCommentRequest is the body for POST /api/recipe/{id}/comments.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdateUserRequest is the body for PUT /api/admin/users/{id}.
type UpdateUserRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

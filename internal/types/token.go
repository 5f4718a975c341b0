package types

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// TokenClaims is the payload carried by a session token. It is the only
// source of the caller's identity: handlers and services receive it
// explicitly, never from global state.
type TokenClaims struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
	Roles    []string  `json:"roles"`
	jwt.RegisteredClaims
}

// HasAnyRole reports whether the principal holds at least one of the
// named roles.
func (c *TokenClaims) HasAnyRole(names ...string) bool {
	for _, want := range names {
		for _, have := range c.Roles {
			if have == want {
				return true
			}
		}
	}
	return false
}

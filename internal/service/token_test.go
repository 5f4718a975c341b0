package service_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook/backend/internal/models"
	"github.com/forkful/recipebook/backend/internal/service"
	"github.com/forkful/recipebook/backend/internal/testhelpers"
)

func TestTokenRoundTrip(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", "a@x.com", "pw123456", models.RoleUser, models.RoleChef)

	tokens := service.NewTokenService("test-secret", time.Hour)

	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	claims, err := tokens.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "alice", claims.Username)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, []string{models.RoleUser, models.RoleChef}, claims.Roles)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", "a@x.com", "pw123456", models.RoleUser)

	tokens := service.NewTokenService("test-secret", -time.Minute)
	signed, err := tokens.Issue(user)
	require.NoError(t, err)

	_, err = tokens.Verify(signed)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	user := testhelpers.CreateUser(t, db, "alice", "a@x.com", "pw123456", models.RoleUser)

	signed, err := service.NewTokenService("secret-one", time.Hour).Issue(user)
	require.NoError(t, err)

	_, err = service.NewTokenService("secret-two", time.Hour).Verify(signed)
	assert.ErrorIs(t, err, service.ErrUnauthenticated)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	tokens := service.NewTokenService("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := tokens.Verify(tok)
		assert.ErrorIs(t, err, service.ErrUnauthenticated, "token %q", tok)
	}
}

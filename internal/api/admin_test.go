package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/forkful/recipebook/backend/internal/models"
	"github.com/forkful/recipebook/backend/internal/testhelpers"
	"github.com/forkful/recipebook/backend/internal/types"
)

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	srv := setupServer(t)
	_, userToken := srv.signinAs(t, "plain", models.RoleUser)
	_, chefToken := srv.signinAs(t, "chef1", models.RoleChef)

	w := srv.do(t, http.MethodGet, "/api/admin/users", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = srv.do(t, http.MethodGet, "/api/admin/users", userToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = srv.do(t, http.MethodGet, "/api/admin/users", chefToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAdminListUsers(t *testing.T) {
	srv := setupServer(t)
	_, adminToken := srv.signinAs(t, "root", models.RoleAdmin)
	srv.signinAs(t, "plain", models.RoleUser)

	w := srv.do(t, http.MethodGet, "/api/admin/users", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []types.UserInfoResponse
	decodeBody(t, w, &users)
	require.Len(t, users, 2)

	// Password material never leaves the server.
	assert.NotContains(t, w.Body.String(), "password")
	assert.NotContains(t, w.Body.String(), "$2a$")
}

func TestAdminDeleteUser(t *testing.T) {
	srv := setupServer(t)
	_, adminToken := srv.signinAs(t, "root", models.RoleAdmin)
	chef, _ := srv.signinAs(t, "chef1", models.RoleChef)
	recipe := testhelpers.CreateRecipe(t, srv.db, chef, "Bread", "flour", "baking")

	w := srv.do(t, http.MethodDelete, "/api/admin/users/"+chef.ID.String(), adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var msg types.MessageResponse
	decodeBody(t, w, &msg)
	assert.Equal(t, "User deleted successfully!", msg.Message)

	// The user's recipes go with the account.
	w = srv.do(t, http.MethodGet, "/api/recipe/"+recipe.ID.String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Deleting again is a no-op, not an error.
	w = srv.do(t, http.MethodDelete, "/api/admin/users/"+chef.ID.String(), adminToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAdminUpdateUser(t *testing.T) {
	srv := setupServer(t)
	_, adminToken := srv.signinAs(t, "root", models.RoleAdmin)
	target, _ := srv.signinAs(t, "plain", models.RoleUser)

	body := types.UpdateUserRequest{
		Username: "renamed",
		Email:    "renamed@x.com",
		Password: "newsecret",
	}
	w := srv.do(t, http.MethodPut, "/api/admin/users/"+target.ID.String(), adminToken, body)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, srv.db.First(&stored, "id = ?", target.ID).Error)
	assert.Equal(t, "renamed", stored.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("newsecret")))

	w = srv.do(t, http.MethodPut, "/api/admin/users/"+uuid.NewString(), adminToken, body)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAdminSetAndRemoveRole(t *testing.T) {
	srv := setupServer(t)
	_, adminToken := srv.signinAs(t, "root", models.RoleAdmin)
	target, _ := srv.signinAs(t, "plain", models.RoleUser)

	w := srv.do(t, http.MethodPut, "/api/admin/"+target.ID.String()+"/role?role=chef", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var stored models.User
	require.NoError(t, srv.db.Preload("Roles").First(&stored, "id = ?", target.ID).Error)
	assert.Equal(t, []string{models.RoleChef}, stored.RoleNames())

	w = srv.do(t, http.MethodDelete, "/api/admin/"+target.ID.String()+"/role?role=chef", adminToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Removing a role the user does not hold is rejected.
	w = srv.do(t, http.MethodDelete, "/api/admin/"+target.ID.String()+"/role?role=chef", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAdminSetRoleUnknownRole(t *testing.T) {
	srv := setupServer(t)
	_, adminToken := srv.signinAs(t, "root", models.RoleAdmin)
	target, _ := srv.signinAs(t, "plain", models.RoleUser)

	w := srv.do(t, http.MethodPut, "/api/admin/"+target.ID.String()+"/role?role=wizard", adminToken, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

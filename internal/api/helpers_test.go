package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/internal/api"
	"github.com/forkful/recipebook/backend/internal/models"
	"github.com/forkful/recipebook/backend/internal/router"
	"github.com/forkful/recipebook/backend/internal/service"
	"github.com/forkful/recipebook/backend/internal/testhelpers"
)

const testCookie = "recipebook_jwt"

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
	tokens *service.TokenService
}

func setupServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := testhelpers.SetupTestDB(t)
	tokens := service.NewTokenService("test-secret", time.Hour)

	authHandler := api.NewAuthHandler(service.NewAuthService(db, nil), tokens, testCookie, 3600)
	userHandler := api.NewUserHandler()
	recipeHandler := api.NewRecipeHandler(service.NewRecipeService(db, nil))
	adminHandler := api.NewAdminHandler(service.NewAdminService(db))

	engine := router.Setup(authHandler, userHandler, recipeHandler, adminHandler, tokens, testCookie)
	return &testServer{router: engine, db: db, tokens: tokens}
}

// signinAs creates a user with the given roles and returns a signed
// session token for it.
func (s *testServer) signinAs(t *testing.T, username string, roles ...string) (*models.User, string) {
	t.Helper()
	user := testhelpers.CreateUser(t, s.db, username, username+"@x.com", "pw123456", roles...)
	token, err := s.tokens.Issue(user)
	require.NoError(t, err)
	return user, token
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dest any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dest))
}

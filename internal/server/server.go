package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/forkful/recipebook/backend/config"
	"github.com/forkful/recipebook/backend/internal/api"
	"github.com/forkful/recipebook/backend/internal/router"
	"github.com/forkful/recipebook/backend/internal/service"
)

// Server bundles the HTTP server with the services it serves.
type Server struct {
	engine     *gin.Engine
	http       *http.Server
	dispatcher *service.Dispatcher
}

// New wires services, handlers and routes into a runnable server.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *Server {
	tokens := service.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	dispatcher := service.NewDispatcher(service.NewEmailService(cfg), 64)

	authService := service.NewAuthService(db, dispatcher)
	recipeService := service.NewRecipeService(db, rdb)
	adminService := service.NewAdminService(db)

	authHandler := api.NewAuthHandler(authService, tokens, cfg.CookieName, int(cfg.TokenTTL.Seconds()))
	userHandler := api.NewUserHandler()
	recipeHandler := api.NewRecipeHandler(recipeService)
	adminHandler := api.NewAdminHandler(adminService)

	engine := router.Setup(authHandler, userHandler, recipeHandler, adminHandler, tokens, cfg.CookieName)

	return &Server{
		engine:     engine,
		dispatcher: dispatcher,
		http: &http.Server{
			Addr:    cfg.ServerHost + ":" + cfg.ServerPort,
			Handler: engine,
		},
	}
}

// Start runs the HTTP server until it is shut down.
func (s *Server) Start() error {
	if err := s.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops accepting requests, drains in-flight ones, then drains
// the notification queue.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err := s.http.Shutdown(ctx)
	s.dispatcher.Close()
	return err
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/forkful/recipebook/backend/config"
	"github.com/forkful/recipebook/backend/internal/database"
	"github.com/forkful/recipebook/backend/internal/server"
)

func main() {
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		logrus.Fatalf("failed to run migrations: %v", err)
	}

	rdb, err := database.NewRedisClient(cfg)
	if err != nil {
		// The cache is optional; the server runs without it.
		logrus.Warnf("failed to connect to Redis, continuing without cache: %v", err)
		rdb = nil
	}

	srv := server.New(cfg, db, rdb)

	errChan := make(chan error, 1)
	go func() {
		logrus.Infof("starting server on %s:%s", cfg.ServerHost, cfg.ServerPort)
		errChan <- srv.Start()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		if err != nil {
			logrus.Fatalf("server error: %v", err)
		}
	case sig := <-quit:
		logrus.Infof("received signal: %v", sig)
	}

	logrus.Info("shutting down server")
	if err := srv.Shutdown(context.Background()); err != nil {
		logrus.Fatalf("server shutdown error: %v", err)
	}
	logrus.Info("server stopped")
}

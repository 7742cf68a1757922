package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"shopcore/api"
	"shopcore/config"
	"shopcore/pkg/logger"
)

// App is the assembled application.
type App struct {
	config *config.Config
	router *api.Router
	server *http.Server
	db     *gorm.DB
	redis  *redis.Client
}

// Run serves HTTP until SIGINT or SIGTERM, then drains in-flight requests
// within the configured shutdown timeout.
func (a *App) Run() error {
	errChan := make(chan error, 1)
	go func() {
		logger.Info("Server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		logger.Info("Shutdown signal received", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
	defer cancel()

	if err := a.server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", zap.Error(err))
		return err
	}

	a.close()
	logger.Info("Server stopped")
	return logger.Sync()
}

// close releases external connections.
func (a *App) close() {
	if a.db != nil {
		if sqlDB, err := a.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logger.Warn("Closing database failed", zap.Error(err))
			}
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			logger.Warn("Closing redis failed", zap.Error(err))
		}
	}
}

// Engine exposes the gin engine for tests.
func (a *App) Engine() http.Handler {
	return a.server.Handler
}

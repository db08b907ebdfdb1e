package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"placementhub/internal/cache"
	"placementhub/internal/config"
	"placementhub/internal/database"
	"placementhub/internal/repositories"
	"placementhub/internal/router"
	"placementhub/internal/services"
	"placementhub/internal/storage"

	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		stderrLogger, _ := zap.NewProduction()
		stderrLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	logger := newLogger(cfg.Server.Environment)
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	db, err := database.NewManager(&cfg.Database, logger)
	if err != nil {
		return err
	}
	defer db.Close()

	if err := db.Migrate(cfg.Database.MigrationsPath); err != nil {
		return err
	}

	c, err := cache.New(cfg.Cache, logger)
	if err != nil {
		return err
	}
	defer c.Close()

	files := newFileStorage(cfg, logger)

	repos := repositories.NewRepositories(db, logger)
	svcs := services.NewServiceCollection(repos, c, files, cfg, logger)
	defer svcs.Close()

	handler := router.New(router.Dependencies{
		Config:   cfg,
		Services: svcs,
		DB:       db,
		Cache:    c,
		Logger:   logger,
	})

	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening",
			zap.String("addr", server.Addr),
			zap.String("environment", cfg.Server.Environment),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-stop:
		logger.Info("Shutting down", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return err
	}

	logger.Info("Server stopped")
	return nil
}

// newFileStorage uses Cloudinary when credentials are configured and a
// disabled backend otherwise, so local development does not require an
// account.
func newFileStorage(cfg *config.Config, logger *zap.Logger) storage.FileStorage {
	if cfg.Cloudinary.CloudName == "" {
		logger.Warn("Cloudinary not configured, resume uploads disabled")
		return storage.DisabledStorage{}
	}
	files, err := storage.NewCloudinaryStorage(cfg.Cloudinary, logger)
	if err != nil {
		logger.Warn("Cloudinary initialization failed, resume uploads disabled", zap.Error(err))
		return storage.DisabledStorage{}
	}
	return files
}

func newLogger(environment string) *zap.Logger {
	var logger *zap.Logger
	var err error
	if environment == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	return logger
}

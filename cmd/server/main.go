package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"filmshelf/internal/config"
	"filmshelf/internal/handlers"
	"filmshelf/internal/logger"
	"filmshelf/internal/repository"
	"filmshelf/internal/repository/db"
	"filmshelf/internal/server"
	"filmshelf/internal/service"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.InfoLevel, "").Fatalw("error reading config", "err", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.File)
	if cfg.UsingDevSecret() {
		log.Warnw("RUNNING WITH THE DEVELOPMENT SIGNING SECRET — set FILMSHELF_AUTH_SECRET before deploying")
	}

	// open DB
	sqlDB, err := db.InitDB(cfg.DB.Path)
	if err != nil {
		log.Fatalw("failed to init sqlite", "path", cfg.DB.Path, "err", err)
	}
	defer func() {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Errorw("failed to close sqlite", "err", cerr)
		}
	}()

	// wire dependencies
	repos := repository.NewRepository(sqlDB)
	services := service.NewService(repos, service.Config{
		SigningSecret:    cfg.Auth.Secret,
		TokenTTL:         cfg.Auth.TokenTTL,
		AnonymousListAll: cfg.Films.AnonymousListAll,
	})
	apiHandler := handlers.NewHandler(services, log)

	// start HTTP server
	srv := &server.Server{}
	go func() {
		log.Infow("films service listening", "port", cfg.Server.Port)
		if err := srv.Run(cfg.Server.Port, apiHandler.InitRoutes()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting server", "err", err)
		}
	}()

	waitForShutdown(srv, log)
}

// waitForShutdown listens for termination signals and performs graceful shutdown.
func waitForShutdown(srv *server.Server, log *logger.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down server...")

	// allow in-flight requests to complete
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("server forced to shutdown", "err", err)
	}
}

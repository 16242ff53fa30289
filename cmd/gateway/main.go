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
	"filmshelf/internal/gateway"
	"filmshelf/internal/logger"
	"filmshelf/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New(logger.InfoLevel, "").Fatalw("error reading config", "err", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.File)

	router, err := gateway.NewRouter(cfg.Gateway.FilmsServiceURL, cfg.Gateway.StaticDir, log)
	if err != nil {
		log.Fatalw("invalid films service url", "url", cfg.Gateway.FilmsServiceURL, "err", err)
	}

	srv := &server.Server{}
	go func() {
		log.Infow("gateway listening", "port", cfg.Gateway.Port, "upstream", cfg.Gateway.FilmsServiceURL)
		if err := srv.Run(cfg.Gateway.Port, router); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("error starting gateway", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infow("shutting down gateway...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalw("gateway forced to shutdown", "err", err)
	}
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/portfoliocms/internal/config"
	"github.com/portfoliocms/internal/db"
	"github.com/portfoliocms/internal/logging"
	"github.com/portfoliocms/internal/router"
)

func main() {
	cfg, err := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	gin.SetMode(cfg.GinMode)

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatal().Err(err).Str("path", cfg.DatabasePath).Msg("failed to initialize database")
	}
	if err := db.EnsureUser(db.DB, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to ensure admin user")
	}

	r, err := router.SetupRouter(db.DB, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to set up router")
	}

	httpServer := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info().Str("address", cfg.ListenAddr).Str("store", cfg.PageStore).Msg("server starting")
		err := httpServer.ListenAndServe()
		if !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		log.Fatal().Err(err).Msg("server failed to start")

	case sig := <-shutdown:
		log.Info().Str("signal", sig.String()).Msg("shutdown signal received")
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(ctx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
			_ = httpServer.Close()
		}
		if err := <-serverErr; err != nil {
			log.Error().Err(err).Msg("ListenAndServe error during shutdown")
		}
	}

	if sqlDB, err := db.DB.DB(); err == nil {
		sqlDB.Close()
	}
	log.Info().Msg("server exited")
}

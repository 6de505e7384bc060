package main

// @title Journey Planner API
// @version 1.0.0
// @description Front-end service for a transit journey-planning backend: place autocomplete and journey search.

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @BasePath /
// @schemes http https

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/journey-planner/docs"
	"github.com/journey-planner/internal/config"
	httpDelivery "github.com/journey-planner/internal/delivery/http"
	"github.com/journey-planner/internal/delivery/http/handler"
	"github.com/journey-planner/internal/infrastructure/httpclient"
	"github.com/journey-planner/internal/infrastructure/transitapi"
	"github.com/journey-planner/internal/pkg/logger"
	"github.com/journey-planner/internal/usecase"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	// 2. Initialize logger
	log, err := logger.New(cfg.Log.Level)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize logger: %v", err))
	}
	defer log.Sync()

	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", zap.Error(err))
	}

	log.Info("Starting Journey Planner")
	log.Info("Configuration loaded",
		zap.String("env", cfg.Server.Env),
		zap.String("server_addr", cfg.GetServerAddr()),
		zap.String("api_base_url", cfg.API.BaseURL),
		zap.Duration("api_timeout", cfg.API.Timeout),
		zap.Bool("discard_stale_searches", cfg.Store.DiscardStale),
	)

	// 3. Backend client and query functions
	apiClient := httpclient.NewClient(&cfg.API, log)
	journeyRepo := transitapi.NewTransitClient(apiClient, log)

	// 4. HTTP handlers and server
	journeyHandler := handler.NewJourneyHandler(journeyRepo, usecase.StoreOptions{
		DiscardStale: cfg.Store.DiscardStale,
	}, log)
	placeHandler := handler.NewPlaceHandler(journeyRepo, log)

	server := httpDelivery.NewServer(cfg, log, journeyHandler, placeHandler)

	go func() {
		if err := server.Start(); err != nil {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	log.Info("Server started successfully",
		zap.String("address", cfg.GetServerAddr()),
		zap.String("env", cfg.Server.Env),
	)

	// 5. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Server shutdown error", zap.Error(err))
	}

	log.Info("Server stopped successfully")
}

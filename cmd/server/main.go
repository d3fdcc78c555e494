package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stwalsh4118/neowatch/internal/config"
	"github.com/stwalsh4118/neowatch/internal/database"
	"github.com/stwalsh4118/neowatch/internal/handlers"
	"github.com/stwalsh4118/neowatch/internal/ingest"
	"github.com/stwalsh4118/neowatch/internal/logger"
	"github.com/stwalsh4118/neowatch/internal/middleware"
	"github.com/stwalsh4118/neowatch/internal/services"
)

const (
	shutdownTimeout = 30 * time.Second
)

func main() {
	// Load configuration from environment variables
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize structured logger
	log := logger.New(cfg.Server.Env)
	log.Info("Starting Neowatch API", map[string]interface{}{
		"version":     handlers.APIVersion,
		"environment": cfg.Server.Env,
		"port":        cfg.Server.Port,
	})

	// Load the dataset and build the in-memory database
	neos, err := ingest.LoadNeos(cfg.Dataset.NeoCSVPath)
	if err != nil {
		log.Fatal("Failed to load NEO dataset", err, map[string]interface{}{
			"path": cfg.Dataset.NeoCSVPath,
		})
	}

	approaches, err := ingest.LoadApproaches(cfg.Dataset.CadJSONPath)
	if err != nil {
		log.Fatal("Failed to load close-approach dataset", err, map[string]interface{}{
			"path": cfg.Dataset.CadJSONPath,
		})
	}

	db, err := database.New(neos, approaches, log)
	if err != nil {
		log.Fatal("Failed to build NEO database", err, nil)
	}

	log.Info("Dataset loaded", map[string]interface{}{
		"neos":       db.NeoCount(),
		"approaches": db.ApproachCount(),
	})

	// Setup Gin router
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware in order: RequestID -> Logger -> Recovery -> CORS
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger(log))
	router.Use(middleware.Recovery(log))
	router.Use(middleware.CORS(cfg.CORS.Origins))

	// Register health check routes
	healthHandler := handlers.NewHealthHandler(db, cfg.Server.Env)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/api/v1/info", healthHandler.Info)

	// Initialize service layer
	neoService := services.NewNeoService(db, log, cfg.Query.MaxLimit)

	// Initialize handlers
	neoHandler := handlers.NewNeoHandler(neoService)

	// Register API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/neos", neoHandler.ByName)
		v1.GET("/neos/:designation", neoHandler.ByDesignation)
		v1.GET("/approaches", neoHandler.Approaches)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"port": cfg.Server.Port,
			"addr": srv.Addr,
		})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start", err, nil)
		}
	}()

	// Wait for interrupt signal (SIGINT or SIGTERM)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	log.Info("Shutting down server...", nil)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", err, map[string]interface{}{
			"timeout": shutdownTimeout.String(),
		})
	}

	log.Info("Server exited", nil)
}

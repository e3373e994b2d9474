package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"synagogue-manager/internal/di"
	"synagogue-manager/internal/shared/logger"
	synagoguehttp "synagogue-manager/internal/synagogue/adapter/http"
	"synagogue-manager/internal/synagogue/config"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLogger()
	appLogger.Info("Configuration loaded")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	container, err := di.NewContainer(ctx, cfg, appLogger)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}
	defer container.Close()

	app := synagoguehttp.NewApp(synagoguehttp.RouterDeps{
		Global:      container.Global,
		Factory:     container.TenantServices,
		Verifier:    container.Verifier,
		Storage:     container.Storage,
		HealthCheck: container.HealthCheck,
		Log:         appLogger,
	})

	addr := cfg.Server.Addr()
	appLogger.Infof("Starting HTTP server on %s", addr)

	serverShutdown := make(chan error, 1)
	go func() {
		serverShutdown <- app.Listen(addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverShutdown:
		if err != nil {
			log.Fatalf("Server startup failed: %v", err)
		}
	case sig := <-quit:
		appLogger.Infof("Received shutdown signal: %v", sig)
		fmt.Println("Shutting down gracefully...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := app.ShutdownWithContext(shutdownCtx); err != nil {
			appLogger.Errorf("Server forced to shutdown: %v", err)
		}
		appLogger.Info("HTTP server stopped")
	}
}

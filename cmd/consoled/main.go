package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"schedule-console/config"
	"schedule-console/internal/api"
	"schedule-console/internal/backend"
	"schedule-console/internal/console"
	"schedule-console/internal/db"
	"schedule-console/internal/jobs"
	"schedule-console/internal/model"
	"schedule-console/internal/store"
)

func main() {
	// Setup logger
	logger := log.New(os.Stdout, "schedule-console ", log.LstdFlags)

	// .env is optional; real environment variables win.
	for _, path := range []string{".env", "../.env"} {
		if err := godotenv.Load(path); err == nil {
			logger.Printf("environment loaded from %s", path)
			break
		}
	}

	// Load configuration
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logger.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}
	logger.Printf("configuration loaded from %s; scheduling service at %s", configPath, cfg.Backend.BaseURL)

	// Initialize database
	gormDB, err := db.Init(&cfg.Database)
	if err != nil {
		logger.Fatalf("failed to initialize database: %v", err)
	}
	logger.Println("database initialized successfully")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	runStore := store.NewGormStore(gormDB)

	client := backend.NewClient(&cfg.Backend)
	panel := console.New(client, console.Options{
		Range:                   model.DateRange{Start: cfg.Console.DefaultStart, End: cfg.Console.DefaultEnd},
		DiscardStaleGenerations: cfg.Console.DiscardStaleGenerations,
		Runs:                    runStore,
	})

	pool := jobs.NewWorkerPool(cfg.WorkerPool.Size, panel)
	pool.Start(ctx)
	logger.Printf("worker pool started with %d workers", cfg.WorkerPool.Size)

	go panel.ProbeHealth(ctx)

	// Initialize router
	router, err := api.NewRouter(&cfg.Server, api.NewHandler(panel, pool, runStore, cfg.Console.RecentRuns, client.BaseURL()))
	if err != nil {
		logger.Fatalf("failed to build router: %v", err)
	}
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start the server in a goroutine
	go func() {
		logger.Printf("HTTP server starting on port %d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("HTTP server ListenAndServe: %v", err)
		}
	}()

	// Setup signal handling for graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Block until a signal is received.
	<-stop
	logger.Println("Shutdown signal received, stopping services...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Printf("HTTP server Shutdown: %v", err)
	}

	// Cancelling aborts in-flight service calls; their workflows record a failure.
	cancel()
	pool.Wait()

	logger.Println("Server gracefully stopped")
}

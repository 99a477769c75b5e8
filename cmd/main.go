package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/ESPSA/El-Wataneya/docs/swagger"
	"github.com/ESPSA/El-Wataneya/internal/api"
	"github.com/ESPSA/El-Wataneya/internal/config"
	"github.com/ESPSA/El-Wataneya/internal/db"
	"github.com/ESPSA/El-Wataneya/internal/handlers"
	"github.com/ESPSA/El-Wataneya/internal/models"
	"github.com/ESPSA/El-Wataneya/internal/services"
	"github.com/ESPSA/El-Wataneya/internal/tasks"
	"github.com/ESPSA/El-Wataneya/internal/utils/logger"
)

// @title El-Wataneya API
// @version 1.0
// @description Bilingual marketplace API for aluminum products and kitchen artisans
// @host localhost:8000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

func main() {
	logger := logger.New("elwataneya")

	// check if .env file exists
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		logger.Info("No .env file found, skipping environment variable loading")
	} else {
		logger.Info("Loading environment variables from .env file")
		if err := godotenv.Load(); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	if err := db.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Fatalf("Failed to close database connection: %v", err)
		}
	}()

	dbInstance := db.GetDB()

	// Initialize task handlers and servers
	taskHandler := tasks.NewTaskHandler(dbInstance)
	taskServer := tasks.NewServer(cfg.Redis, cfg.Worker, taskHandler, logger)

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	go func() {
		if err := taskServer.Start(serverCtx); err != nil {
			logger.Error("Task server error", err)
		}
	}()

	taskScheduler := tasks.NewScheduler(cfg.Redis, logger)
	go func() {
		if err := taskScheduler.Start(); err != nil {
			logger.Error("Task scheduler error", err)
		}
	}()

	taskClient := tasks.NewTaskClient(cfg.Redis)
	defer taskClient.Close()

	// Initialize API server
	apiServer := api.NewServer(cfg, dbInstance, taskClient)
	go func() {
		// Object storage backs image uploads and signed URLs.
		s3Service, err := services.NewS3Service(cfg.Storage)
		if err != nil {
			log.Fatalf("Failed to initialize S3 service: %v", err)
		}

		models.RegisterFileURLGenerator(s3Service)
		handlers.RegisterStorageHandler(s3Service)

		swagger.SwaggerInfo.Title = "El-Wataneya API Documentation"
		swagger.SwaggerInfo.Description = "Bilingual marketplace API for aluminum products and kitchen artisans"
		swagger.SwaggerInfo.Version = "1.0"
		swagger.SwaggerInfo.Host = cfg.Server.PublicURL
		swagger.SwaggerInfo.Schemes = []string{"http", "https"}

		logger.Success("API server starting on %s:%d", cfg.Server.Host, cfg.Server.Port)

		if err := apiServer.Start(); err != nil {
			logger.Error("API server error", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the servers
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	taskScheduler.Stop()
	serverCancel()
	taskServer.Shutdown()

	if err := apiServer.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown API server", err)
	}

	logger.Info("Servers shutdown gracefully")
}

package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	mongodrv "go.mongodb.org/mongo-driver/mongo"

	"alcyxob/fitness-center/internal/api"
	"alcyxob/fitness-center/internal/calc"
	"alcyxob/fitness-center/internal/config"
	"alcyxob/fitness-center/internal/repository/mongo"
	"alcyxob/fitness-center/internal/repository/postgres"
	"alcyxob/fitness-center/internal/service"
	"alcyxob/fitness-center/internal/storage"
)

// @title Fitness Center API
// @version 1.0
// @description Public gym site, Pro Trainer tools, mock checkout and the admin console.
// @host localhost:8080
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	log.Println("Starting Fitness Center Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)
	log.Println("Configuration loaded.")

	// --- Primary Store ---
	primaryCtx, stopPrimary := context.WithCancel(context.Background())
	defer stopPrimary()
	db, err := postgres.Open(cfg.Postgres.DSN, cfg.Postgres.LogLevel)
	switch {
	case err == nil:
		if err := postgres.AutoMigrate(db); err != nil {
			log.Fatalf("FATAL: Could not migrate PostgreSQL schema: %v", err)
		}
		log.Println("Primary store ready.")
	case cfg.Mongo.Enabled:
		log.Printf("WARN: PostgreSQL unreachable at startup: %v; reads fall back to MongoDB and writes fail until it returns", err)
		if db, err = postgres.OpenLazy(cfg.Postgres.DSN, cfg.Postgres.LogLevel); err != nil {
			log.Fatalf("FATAL: Invalid PostgreSQL configuration: %v", err)
		}
		go migrateWhenReachable(primaryCtx, db, primaryRetryInterval)
	default:
		log.Fatalf("FATAL: Could not connect to PostgreSQL and MongoDB is disabled: %v", err)
	}
	defer postgres.Close(db)

	// --- Secondary Store ---
	var appDB *mongodrv.Database
	if cfg.Mongo.Enabled {
		client, err := mongo.ConnectDB(cfg.Mongo.URI)
		if err != nil {
			log.Fatalf("FATAL: Could not connect to MongoDB: %v", err)
		}
		defer func() {
			log.Println("Disconnecting MongoDB...")
			if err := mongo.DisconnectDB(client); err != nil {
				log.Printf("ERROR: Failed to disconnect MongoDB: %v", err)
			}
		}()
		appDB = client.Database(cfg.Mongo.Name)

		log.Println("Ensuring database indexes...")
		go func() { // Run index creation in background
			ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
			defer cancel()
			if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
				log.Printf("ERROR: Index creation failed: %v", err)
				return
			}
			log.Println("Index creation process completed.")
		}()
		log.Println("Secondary store ready.")
	} else {
		log.Println("WARN: MongoDB disabled; reads have no fallback source and exercise logging is off.")
	}

	// --- Initialize Repositories ---
	repos := newRepositories(db, appDB)

	// --- Object Storage ---
	var uploader *storage.ImageUploader
	if cfg.S3.Enabled() {
		fileStorage, err := storage.NewS3Storage(context.Background(), cfg.S3)
		if err != nil {
			log.Fatalf("FATAL: Failed to initialize S3 storage: %v", err)
		}
		uploader = storage.NewImageUploader(fileStorage, storage.DefaultPresignedURLExpiry)
	} else {
		log.Println("WARN: S3 not configured; admin image uploads are disabled.")
	}

	// --- Initialize Services ---
	log.Println("Initializing services...")
	converter, err := calc.NewConverter(cfg.Currency.INRPerUSD)
	if err != nil {
		log.Fatalf("FATAL: Invalid currency configuration: %v", err)
	}
	sessions := service.NewAdminSessions(service.AdminRepositories{
		Trainers:    repos.trainers,
		Schedules:   repos.schedules,
		MealPlans:   repos.mealPlans,
		Memberships: repos.memberships,
	})
	authService := service.NewAuthService(repos.users, sessions, cfg.JWT.Secret, cfg.JWT.Expiration)
	catalogService := service.NewCatalogService(repos.trainers, repos.schedules, repos.mealPlans, repos.memberships, converter)
	purchaseService := service.NewPurchaseService(repos.memberships, repos.purchases, converter)
	var exerciseService service.ExerciseService
	if repos.exerciseLog != nil {
		exerciseService = service.NewExerciseService(repos.exerciseLog)
	}

	expiryCron, err := service.StartExpiryJob(purchaseService, sessions, cfg.Jobs.ExpirySchedule)
	if err != nil {
		log.Fatalf("FATAL: %v", err)
	}

	// --- Initialize Gin Engine ---
	router := gin.Default() // Includes Logger and Recovery middleware

	log.Println("Setting up API routes...")
	api.SetupRoutes(router, cfg.JWT.Secret, api.Services{
		Auth:      authService,
		Catalog:   catalogService,
		Purchases: purchaseService,
		Exercises: exerciseService,
		Sessions:  sessions,
		Users:     repos.users,
		Uploader:  uploader,
	})

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	log.Printf("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("FATAL: ListenAndServe Error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	<-expiryCron.Stop().Done()
	stopPrimary()

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		log.Printf("ERROR: Server forced to shutdown: %v", err)
	}

	log.Println("Server exiting.")
}

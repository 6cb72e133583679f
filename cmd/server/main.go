package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/akashad48/DnaikEquipRent-sub000/internal/api/http"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/config"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/jobs"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/logger"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/repository/postgres"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/scheduler"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/security"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/service"
	"github.com/akashad48/DnaikEquipRent-sub000/internal/storage"

	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting equipment rental backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	if err := postgres.EnsureSchema(db); err != nil {
		logger.Error("Failed to create database schema", "error", err)
		log.Fatalf("Failed to create database schema: %v", err)
	}

	store := postgres.NewStore(db, cfg.Billing.TxMaxRetries)

	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry, cfg.JWT.RefreshTokenExpiry)

	photoStore, err := storage.NewFileStorage(cfg.Storage.UploadDir, cfg.Storage.BaseURL)
	if err != nil {
		logger.Error("Failed to initialize photo storage", "error", err)
		log.Fatalf("Failed to initialize photo storage: %v", err)
	}
	logger.Info("Photo storage initialized", "upload_dir", cfg.Storage.UploadDir)

	emailSvc := service.NewEmailService(cfg.Email)

	authSvc := service.NewAuthService(store.UserRepository, tokenManager)
	customerSvc := service.NewCustomerService(store.CustomerRepository, store.RentalRepository)
	equipmentSvc := service.NewEquipmentService(store.EquipmentRepository)
	rentalSvc := service.NewRentalService(store.RentalRepository, store.SettlementRepository, store.CustomerRepository, emailSvc)
	analyticsSvc := service.NewAnalyticsService(store.AnalyticsRepository)

	router := httpapi.NewRouter(httpapi.Handlers{
		Auth:      httpapi.NewAuthHandler(authSvc),
		Customer:  httpapi.NewCustomerHandler(customerSvc),
		Equipment: httpapi.NewEquipmentHandler(equipmentSvc),
		Rental:    httpapi.NewRentalHandler(rentalSvc),
		Analytics: httpapi.NewAnalyticsHandler(analyticsSvc),
		Photo:     httpapi.NewPhotoHandler(photoStore, cfg.Storage.MaxFileSize),
	}, tokenManager)

	jobRunner := jobs.NewJobRunner(store.RentalRepository, emailSvc, cfg)
	sched := scheduler.NewScheduler(jobRunner)
	sched.Start()
	defer sched.Stop()

	server := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
	logger.Info("Server stopped")
}

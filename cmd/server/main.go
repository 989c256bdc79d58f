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

	httpapi "juntaai-backend/internal/api/http"
	"juntaai-backend/internal/config"
	"juntaai-backend/internal/logger"
	"juntaai-backend/internal/realtime"
	"juntaai-backend/internal/repository/postgres"
	"juntaai-backend/internal/security"
	"juntaai-backend/internal/service"
	"juntaai-backend/internal/storage"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting JuntaAi backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
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

	store := postgres.NewStore(db)

	tokenValidator := security.NewTokenValidator(cfg.JWT.Secret)

	localStorage, err := storage.NewLocalStorage(
		cfg.Storage.UploadDir,
		cfg.Storage.PublicBaseURL,
		cfg.Storage.SignSecret,
		time.Duration(cfg.Storage.UploadTTL)*time.Minute,
	)
	if err != nil {
		logger.Error("Failed to initialize storage", "error", err)
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	emailSvc := service.NewEmailService(cfg.Email.SendGridAPIKey, cfg.Email.FromEmail, cfg.Email.FromName)

	groupSvc := service.NewGroupService(store.GroupRepository, store.MemberRepository, store.ProfileRepository)
	paymentSvc := service.NewPaymentService(store.PaymentRepository, store.GroupRepository, store.MemberRepository, store.ProfileRepository, emailSvc)
	expenseSvc := service.NewExpenseService(store.ExpenseRepository, store.GroupRepository, localStorage, cfg.Storage.AllowedTypes)
	ledgerSvc := service.NewLedgerService(store.GroupRepository, store.MemberRepository, store.PaymentRepository, store.ExpenseRepository)
	profileSvc := service.NewProfileService(store.ProfileRepository)

	// Realtime: change feed listener feeding the broadcast hub.
	hub := realtime.NewHub(ledgerSvc, time.Duration(cfg.Realtime.CoalesceWindowMillis)*time.Millisecond, logger.WithComponent("realtime"))
	listener := realtime.NewListener(
		cfg.GetDatabaseConnectionString(),
		time.Duration(cfg.Realtime.MinReconnect)*time.Second,
		time.Duration(cfg.Realtime.MaxReconnect)*time.Second,
		hub,
		logger.WithComponent("listener"),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := listener.Run(ctx); err != nil && ctx.Err() == nil {
			logger.Error("Change feed listener stopped", "error", err)
		}
	}()

	router := httpapi.NewRouter(
		tokenValidator,
		httpapi.NewGroupHandler(groupSvc, ledgerSvc),
		httpapi.NewPaymentHandler(paymentSvc),
		httpapi.NewExpenseHandler(expenseSvc),
		httpapi.NewProfileHandler(profileSvc),
		httpapi.NewStreamHandler(hub),
		httpapi.NewStorageHandler(localStorage, cfg.Storage.MaxFileSize),
	)

	// WriteTimeout stays unset: it would cut long-lived SSE streams.
	server := &http.Server{
		Addr:        cfg.GetServerAddress(),
		Handler:     router,
		ReadTimeout: cfg.Server.ReadTimeoutDuration(),
		IdleTimeout: 120 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	logger.Info("Shutdown complete")
}

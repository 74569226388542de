package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"database/sql"

	"github.com/golang-migrate/migrate/v4"
	migratepg "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/uida/property-portal/internal/config"
	"github.com/uida/property-portal/internal/handler"
	"github.com/uida/property-portal/internal/integrations/gateway"
	"github.com/uida/property-portal/internal/middleware"
	"github.com/uida/property-portal/internal/repository"
	"github.com/uida/property-portal/internal/scheduler"
	"github.com/uida/property-portal/internal/service"
	"github.com/uida/property-portal/internal/utils/email"
)

func main() {
	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logLevel, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	// Load configuration
	cfg, err := config.NewConfig()
	if err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}

	// Initialize database
	db, err := sql.Open("postgres", cfg.DBConn)
	if err != nil {
		logger.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatalf("Failed to ping database: %v", err)
	}

	// Run migrations
	driver, err := migratepg.WithInstance(db, &migratepg.Config{})
	if err != nil {
		logger.Fatalf("Failed to init migration driver: %v", err)
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+cfg.MigrationsDir, "postgres", driver)
	if err != nil {
		logger.Fatalf("Failed to init migrations: %v", err)
	}
	if err := m.Up(); err != nil && err != migrate.ErrNoChange {
		logger.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize layers
	repo := repository.NewRepository(db)
	gw := gateway.NewClient(cfg, logger)
	svc := service.NewService(repo, gw, logger, cfg)
	sender := email.NewSender(cfg, logger)
	svc.SetNotifier(sender)
	h := handler.NewHandler(svc, logger)

	// Installment reminder sweep
	reminders := scheduler.NewReminderScheduler(repo, sender, logger, cfg)
	if err := reminders.Start(); err != nil {
		logger.Fatalf("Failed to start reminder scheduler: %v", err)
	}
	defer reminders.Stop()

	// Setup router
	r := mux.NewRouter()
	r.Use(middleware.LoggingMiddleware(logger))

	// Public routes
	r.HandleFunc("/api/auth/otp", h.RequestLoginCode).Methods("POST")
	r.HandleFunc("/api/auth/verify", h.VerifyLoginCode).Methods("POST")
	r.HandleFunc("/api/info/about", h.About).Methods("GET")
	r.HandleFunc("/api/info/organization", h.OrganizationChart).Methods("GET")
	r.HandleFunc("/api/info/byelaws", h.ByeLaws).Methods("GET")

	// Protected routes
	authRouter := r.PathPrefix("/api").Subrouter()
	authRouter.Use(middleware.AuthMiddleware(cfg))
	authRouter.HandleFunc("/properties", h.ListProperties).Methods("GET")
	authRouter.HandleFunc("/properties/{id}", h.GetProperty).Methods("GET")
	authRouter.HandleFunc("/properties/{id}/emi-quote", h.EMIQuote).Methods("GET")
	authRouter.HandleFunc("/properties/{id}/service-charge-quote", h.ServiceChargeQuote).Methods("GET")
	authRouter.HandleFunc("/payments/installments", h.SubmitInstallmentPayment).Methods("POST")
	authRouter.HandleFunc("/payments/service-charges", h.SubmitServiceCharges).Methods("POST")
	authRouter.HandleFunc("/payments/history", h.PaymentHistory).Methods("GET")
	authRouter.HandleFunc("/profile", h.GetProfile).Methods("GET")
	authRouter.HandleFunc("/profile", h.UpdateProfile).Methods("PUT")
	authRouter.HandleFunc("/documents", h.UploadDocument).Methods("POST")
	authRouter.HandleFunc("/documents", h.ListDocuments).Methods("GET")
	authRouter.HandleFunc("/documents/{kind}", h.DownloadDocument).Methods("GET")

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
	logger.Infof("Starting server on %s", addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server failed: %v", err)
	}
}

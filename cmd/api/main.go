package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/slateworks/budget-api/docs"
	"github.com/slateworks/budget-api/internal/auth"
	"github.com/slateworks/budget-api/internal/config"
	"github.com/slateworks/budget-api/internal/database"
	"github.com/slateworks/budget-api/internal/erp"
	"github.com/slateworks/budget-api/internal/http/handler"
	"github.com/slateworks/budget-api/internal/http/middleware"
	"github.com/slateworks/budget-api/internal/http/router"
	"github.com/slateworks/budget-api/internal/jobs"
	"github.com/slateworks/budget-api/internal/logger"
	"github.com/slateworks/budget-api/internal/repository"
	"github.com/slateworks/budget-api/internal/service"
	"github.com/slateworks/budget-api/internal/storage"
)

// @title Slateworks Budget API
// @version 1.0
// @description Production budget calculation and reconciliation API for projects, budget lines and invoices

// @contact.name API Support
// @contact.email support@slateworks.io

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description JWT Bearer token

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// Load basic configuration first (for logging setup)
	basicCfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&basicCfg.Logging, &basicCfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", basicCfg.App.Name),
		zap.String("env", basicCfg.App.Environment),
		zap.Int("port", basicCfg.App.Port),
	)

	// Configure Swagger host based on environment
	switch basicCfg.App.Environment {
	case "staging", "production":
		docs.SwaggerInfo.Host = os.Getenv("PUBLIC_HOST")
	default:
		docs.SwaggerInfo.Host = fmt.Sprintf("localhost:%d", basicCfg.App.Port)
	}

	// Load full configuration with secrets
	// In development: uses environment variables
	// In staging/production: fetches from Azure Key Vault
	cfg, err := config.LoadWithSecrets(ctx, log)
	if err != nil {
		return fmt.Errorf("failed to load secrets: %w", err)
	}

	// Connect to database
	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Development convenience; schema changes in staging/production go through
	// the migrate command
	if cfg.App.Environment == "development" || cfg.App.Environment == "local" {
		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run auto migrations: %w", err)
		}
	}

	// Initialize attachment storage
	fileStorage, err := storage.NewStorage(&cfg.Storage, log)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}

	log.Info("Storage initialized", zap.String("mode", cfg.Storage.Mode))

	// Initialize the accounting system connection (optional, read-only).
	// The app continues without it if not configured.
	var erpClient *erp.Client
	if cfg.ERP.Enabled {
		erpClient, err = erp.NewClient(&cfg.ERP, log)
		if err != nil {
			log.Warn("ERP connection failed, continuing without it", zap.Error(err))
		} else if erpClient != nil {
			log.Info("ERP connected successfully",
				zap.Int("max_open_conns", cfg.ERP.MaxOpenConns),
				zap.Int("query_timeout_seconds", cfg.ERP.QueryTimeout),
			)
		}
	} else {
		log.Info("ERP not configured, skipping payee import support")
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	payeeRepo := repository.NewPayeeRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	lineRepo := repository.NewBudgetLineRepository(db)
	fringeRepo := repository.NewFringeRuleRepository(db)
	invoiceRepo := repository.NewInvoiceRepository(db)

	// Initialize services
	reconciler := service.NewReconcileService(db, projectRepo, lineRepo, invoiceRepo, log)
	projectService := service.NewProjectService(projectRepo, lineRepo, fringeRepo, payeeRepo, reconciler, log)
	lineService := service.NewBudgetLineService(lineRepo, projectRepo, fringeRepo, payeeRepo, reconciler, log)
	fringeService := service.NewFringeRuleService(fringeRepo, projectRepo, lineRepo, reconciler, log)
	invoiceService := service.NewInvoiceService(invoiceRepo, projectRepo, lineRepo, payeeRepo, reconciler, fileStorage, log)
	autoMatchService := service.NewAutoMatchService(payeeRepo, projectRepo, lineRepo, invoiceRepo, reconciler, log)
	payeeService := service.NewPayeeService(payeeRepo, log)
	payeeImportService := service.NewPayeeImportService(erpClient, payeeRepo, log)

	// Initialize middleware
	jwtManager, err := auth.NewJWTManager(&cfg.Auth)
	if err != nil {
		return fmt.Errorf("failed to initialize JWT manager: %w", err)
	}
	authMiddleware := auth.NewMiddleware(jwtManager, log)
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(userRepo, log)
	projectHandler := handler.NewProjectHandler(projectService, log)
	lineHandler := handler.NewBudgetLineHandler(lineService, log)
	fringeHandler := handler.NewFringeRuleHandler(fringeService, log)
	invoiceHandler := handler.NewInvoiceHandler(invoiceService, log)
	payeeHandler := handler.NewPayeeHandler(payeeService, payeeImportService, log)
	submitHandler := handler.NewSubmitHandler(autoMatchService, log)

	// Setup router
	rt := router.NewRouter(
		cfg,
		log,
		db,
		authMiddleware,
		rateLimiter,
		authHandler,
		projectHandler,
		lineHandler,
		fringeHandler,
		invoiceHandler,
		payeeHandler,
		submitHandler,
	)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.ReconcileSweepEnabled || (cfg.Jobs.PayeeImportEnabled && erpClient != nil) {
		scheduler = jobs.NewScheduler(log)

		if cfg.Jobs.ReconcileSweepEnabled {
			if err := jobs.RegisterReconcileSweepJob(
				scheduler,
				reconciler,
				projectRepo,
				log,
				cfg.Jobs.ReconcileSweepSchedule,
				30*time.Minute,
			); err != nil {
				log.Error("Failed to register reconcile sweep job", zap.Error(err))
			}
		}

		if cfg.Jobs.PayeeImportEnabled && erpClient != nil {
			if err := jobs.RegisterPayeeImportJob(
				scheduler,
				payeeImportService,
				userRepo,
				log,
				cfg.Jobs.PayeeImportSchedule,
				10*time.Minute,
			); err != nil {
				log.Error("Failed to register payee import job", zap.Error(err))
			}
		}

		scheduler.Start()
		log.Info("Scheduler started",
			zap.Strings("jobs", scheduler.GetJobNames()))
	} else {
		log.Info("Background jobs disabled",
			zap.Bool("reconcile_sweep_enabled", cfg.Jobs.ReconcileSweepEnabled),
			zap.Bool("payee_import_enabled", cfg.Jobs.PayeeImportEnabled),
		)
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		// Close ERP connection if initialized
		if erpClient != nil {
			if err := erpClient.Close(); err != nil {
				log.Warn("Error closing ERP connection", zap.Error(err))
			}
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}

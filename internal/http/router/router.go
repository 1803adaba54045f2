package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/slateworks/budget-api/internal/auth"
	"github.com/slateworks/budget-api/internal/config"
	"github.com/slateworks/budget-api/internal/database"
	"github.com/slateworks/budget-api/internal/http/handler"
	"github.com/slateworks/budget-api/internal/http/middleware"

	_ "github.com/slateworks/budget-api/docs" // Import generated swagger docs
)

type Router struct {
	cfg               *config.Config
	logger            *zap.Logger
	db                *gorm.DB
	authMiddleware    *auth.Middleware
	rateLimiter       *middleware.RateLimiter
	authHandler       *handler.AuthHandler
	projectHandler    *handler.ProjectHandler
	budgetLineHandler *handler.BudgetLineHandler
	fringeRuleHandler *handler.FringeRuleHandler
	invoiceHandler    *handler.InvoiceHandler
	payeeHandler      *handler.PayeeHandler
	submitHandler     *handler.SubmitHandler
}

func NewRouter(
	cfg *config.Config,
	logger *zap.Logger,
	db *gorm.DB,
	authMiddleware *auth.Middleware,
	rateLimiter *middleware.RateLimiter,
	authHandler *handler.AuthHandler,
	projectHandler *handler.ProjectHandler,
	budgetLineHandler *handler.BudgetLineHandler,
	fringeRuleHandler *handler.FringeRuleHandler,
	invoiceHandler *handler.InvoiceHandler,
	payeeHandler *handler.PayeeHandler,
	submitHandler *handler.SubmitHandler,
) *Router {
	return &Router{
		cfg:               cfg,
		logger:            logger,
		db:                db,
		authMiddleware:    authMiddleware,
		rateLimiter:       rateLimiter,
		authHandler:       authHandler,
		projectHandler:    projectHandler,
		budgetLineHandler: budgetLineHandler,
		fringeRuleHandler: fringeRuleHandler,
		invoiceHandler:    invoiceHandler,
		payeeHandler:      payeeHandler,
		submitHandler:     submitHandler,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logging(rt.logger))
	r.Use(middleware.SecurityHeaders(&rt.cfg.Security))
	r.Use(middleware.CORS(&rt.cfg.CORS, rt.cfg.App.Environment, rt.logger))
	r.Use(rt.rateLimiter.Limit)

	// Health check (basic liveness probe)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Database health check (readiness probe with detailed stats)
	r.Get("/health/db", func(w http.ResponseWriter, r *http.Request) {
		stats, err := database.HealthCheckWithStats(rt.db)
		if err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status":  "unhealthy",
				"error":   err.Error(),
				"service": "database",
			})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  "healthy",
			"service": "database",
			"stats": map[string]interface{}{
				"max_open_connections": stats.MaxOpenConnections,
				"open_connections":     stats.OpenConnections,
				"in_use":               stats.InUse,
				"idle":                 stats.Idle,
				"wait_count":           stats.WaitCount,
				"wait_duration_ms":     stats.WaitDuration.Milliseconds(),
			},
		})
	})

	// Combined readiness check
	r.Get("/health/ready", func(w http.ResponseWriter, r *http.Request) {
		checks := make(map[string]interface{})
		allHealthy := true

		if err := database.HealthCheck(rt.db); err != nil {
			rt.logger.Error("Database health check failed", zap.Error(err))
			checks["database"] = map[string]interface{}{
				"status": "unhealthy",
				"error":  err.Error(),
			}
			allHealthy = false
		} else {
			checks["database"] = map[string]interface{}{
				"status": "healthy",
			}
		}

		w.Header().Set("Content-Type", "application/json")
		if allHealthy {
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "healthy",
				"checks": checks,
			})
		} else {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": "unhealthy",
				"checks": checks,
			})
		}
	})

	// Swagger documentation
	if rt.cfg.Server.EnableSwagger {
		r.Get("/swagger/*", httpSwagger.Handler(
			httpSwagger.URL("/swagger/doc.json"),
		))
	}

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public external submission, strictly rate limited
		r.With(rt.rateLimiter.LimitSubmit).Post("/submit", rt.submitHandler.Submit)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(rt.authMiddleware.Authenticate)

			// Auth
			r.Get("/auth/me", rt.authHandler.Me)

			// Projects
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", rt.projectHandler.List)
				r.Post("/", rt.projectHandler.Create)
				r.Get("/{id}", rt.projectHandler.GetByID)
				r.Put("/{id}", rt.projectHandler.Update)
				r.Delete("/{id}", rt.projectHandler.Delete)
				r.Put("/{id}/status", rt.projectHandler.UpdateStatus)
				r.Post("/{id}/recalculate", rt.projectHandler.Recalculate)

				// Budget line sub-resources
				r.Get("/{id}/lines", rt.budgetLineHandler.ListByProject)
				r.Post("/{id}/lines", rt.budgetLineHandler.Create)
				r.Put("/{id}/lines/reorder", rt.budgetLineHandler.Reorder)

				// Fringe rule sub-resources
				r.Get("/{id}/fringes", rt.fringeRuleHandler.ListByProject)
				r.Post("/{id}/fringes", rt.fringeRuleHandler.Create)

				// Invoices assigned to the project
				r.Get("/{id}/invoices", rt.invoiceHandler.ListByProject)
			})

			// Budget lines
			r.Route("/lines", func(r chi.Router) {
				r.Get("/{id}", rt.budgetLineHandler.GetByID)
				r.Put("/{id}", rt.budgetLineHandler.Update)
				r.Delete("/{id}", rt.budgetLineHandler.Delete)
				r.Put("/{id}/fringe", rt.budgetLineHandler.AssignFringe)
			})

			// Fringe rules
			r.Route("/fringes", func(r chi.Router) {
				r.Put("/{id}", rt.fringeRuleHandler.Update)
				r.Delete("/{id}", rt.fringeRuleHandler.Delete)
			})

			// Invoices
			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", rt.invoiceHandler.List)
				r.Post("/", rt.invoiceHandler.Create)
				r.Get("/{id}", rt.invoiceHandler.GetByID)
				r.Delete("/{id}", rt.invoiceHandler.Delete)
				r.Put("/{id}/status", rt.invoiceHandler.UpdateStatus)
				r.Put("/{id}/assign", rt.invoiceHandler.Reassign)
				r.Post("/{id}/attachment", rt.invoiceHandler.UploadAttachment)
				r.Get("/{id}/attachment", rt.invoiceHandler.DownloadAttachment)
			})

			// Payees
			r.Route("/payees", func(r chi.Router) {
				r.Get("/", rt.payeeHandler.List)
				r.Post("/", rt.payeeHandler.Create)
				r.Post("/import", rt.payeeHandler.Import)
				r.Get("/{id}", rt.payeeHandler.GetByID)
				r.Put("/{id}", rt.payeeHandler.Update)
				r.Delete("/{id}", rt.payeeHandler.Delete)
			})
		})
	})

	return r
}

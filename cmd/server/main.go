package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/hayder75/clinic-core/internal/cache"
	"github.com/hayder75/clinic-core/internal/config"
	"github.com/hayder75/clinic-core/internal/database"
	"github.com/hayder75/clinic-core/internal/handlers"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/hayder75/clinic-core/internal/services"
	"github.com/hayder75/clinic-core/internal/workflow"
	"github.com/hayder75/clinic-core/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	// Initialize logger
	logger.Init(cfg.Log.Level, cfg.Log.Format)
	log.Info().Msg("Starting Clinic Core")

	// Connect to database
	dbConfig := database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
		LogLevel: cfg.Database.LogLevel,
	}

	if err := database.Connect(dbConfig); err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer database.Close()

	// Initialize cache
	var cacheImpl cache.Cache
	if cfg.Cache.Enabled && cfg.Cache.Type == "redis" {
		addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
		cacheImpl, err = cache.NewRedisCache(addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to Redis")
		}
		log.Info().Msg("Redis cache initialized")
	} else {
		cacheImpl = cache.NewMemoryCache()
		log.Info().Msg("Memory cache initialized")
	}

	// Initialize repositories
	patientRepo := repository.NewPatientRepository()
	visitRepo := repository.NewVisitRepository()
	orderRepo := repository.NewOrderRepository()
	catalogRepo := repository.NewCatalogRepository()
	billingRepo := repository.NewBillingRepository()
	accountRepo := repository.NewAccountRepository()
	loanRepo := repository.NewLoanRepository()
	templateRepo := repository.NewTemplateRepository()
	staffRepo := repository.NewStaffRepository()
	reportRepo := repository.NewReportRepository()

	// Initialize services
	authService := services.NewAuthService(staffRepo, cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	patientService := services.NewPatientService(patientRepo)
	visitService := services.NewVisitService(visitRepo, patientRepo, orderRepo, staffRepo)
	templateService := services.NewTemplateService(templateRepo, cacheImpl, cfg.Cache.TTL)
	catalogService := services.NewCatalogService(catalogRepo, templateRepo)
	orderService := services.NewOrderService(orderRepo, catalogRepo, billingRepo, visitRepo, templateService)
	billingService := services.NewBillingService(billingRepo, orderRepo, accountRepo)
	accountService := services.NewAccountService(accountRepo, patientRepo, billingRepo)
	loanService := services.NewLoanService(loanRepo)
	reportService := services.NewReportService(reportRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService)
	patientHandler := handlers.NewPatientHandler(patientService, accountService)
	visitHandler := handlers.NewVisitHandler(visitService, orderService)
	orderHandler := handlers.NewOrderHandler(orderService)
	billingHandler := handlers.NewBillingHandler(billingService)
	accountHandler := handlers.NewAccountHandler(accountService)
	loanHandler := handlers.NewLoanHandler(loanService)
	templateHandler := handlers.NewTemplateHandler(templateService, catalogService)
	reportHandler := handlers.NewReportHandler(reportService)

	auth := middleware.NewAuthenticator(cfg.Auth.JWTSecret)

	// Setup router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Recovery)
	r.Use(middleware.Logging)
	r.Use(chimiddleware.Compress(5))

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   cfg.CORS.AllowedMethods,
		AllowedHeaders:   cfg.CORS.AllowedHeaders,
		ExposedHeaders:   []string{"Content-Length", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	// Health endpoints (no authentication required)
	r.Get("/health", healthHandler.Health)
	r.Get("/ready", healthHandler.Ready)

	// Metrics endpoint
	if cfg.Metrics.Enabled {
		r.Handle("/metrics", promhttp.Handler())
	}

	// Login
	r.Post("/auth/login", authHandler.Login)

	// Authenticated API
	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.Authenticate)

		// Staff
		r.With(middleware.RequireAction(workflow.ActionManageCatalog)).Post("/staff", authHandler.CreateStaff)
		r.Get("/staff/doctors", authHandler.ListDoctors)

		// Patients
		r.With(middleware.RequireAction(workflow.ActionRegisterPatient)).Post("/patients", patientHandler.Register)
		r.Get("/patients", patientHandler.List)
		r.Get("/patients/{id}", patientHandler.Get)
		r.With(middleware.RequireAction(workflow.ActionManageAccounts)).Post("/patients/{id}/accounts", patientHandler.OpenAccount)
		r.Get("/patients/{id}/accounts", patientHandler.ListAccounts)

		// Visits
		r.With(middleware.RequireAction(workflow.ActionOpenVisit)).Post("/visits", visitHandler.Open)
		r.Get("/visits", visitHandler.List)
		r.Get("/visits/{id}", visitHandler.Get)
		r.Get("/visits/{id}/events", visitHandler.Events)
		r.Get("/visits/{id}/vitals", visitHandler.GetVitals)
		r.With(middleware.RequireAction(workflow.ActionRecordVitals)).Post("/visits/{id}/vitals", visitHandler.RecordVitals)
		r.With(middleware.RequireAction(workflow.ActionRecordVitals)).Post("/visits/{id}/vitals/continuous", visitHandler.RecordContinuousVitals)
		r.With(middleware.RequireAction(workflow.ActionAssignDoctor)).Post("/visits/{id}/assign", visitHandler.Assign)
		r.With(middleware.RequireAction(workflow.ActionStartVisit)).Post("/visits/{id}/start", visitHandler.Start)
		r.With(middleware.RequireAction(workflow.ActionCompleteVisit)).Post("/visits/{id}/complete", visitHandler.Complete)
		r.With(middleware.RequireAction(workflow.ActionCancelVisit)).Post("/visits/{id}/cancel", visitHandler.Cancel)
		r.With(middleware.RequireAction(workflow.ActionCreateOrder)).Post("/visits/{id}/orders", visitHandler.CreateOrders)
		r.Get("/visits/{id}/orders", visitHandler.ListOrders)

		// Orders
		r.Get("/orders", orderHandler.List)
		r.Get("/orders/{id}", orderHandler.Get)
		r.With(middleware.RequireAction(workflow.ActionSubmitResult)).Post("/orders/{id}/results", orderHandler.SubmitResult)

		// Billing
		r.Get("/billings", billingHandler.List)
		r.Get("/billings/{id}", billingHandler.Get)
		r.With(middleware.RequireAction(workflow.ActionPayBilling)).Post("/billings/{id}/pay", billingHandler.Pay)

		// Accounts
		r.Get("/accounts/{id}", accountHandler.Get)
		r.Get("/accounts/{id}/transactions", accountHandler.Ledger)
		r.With(middleware.RequireAction(workflow.ActionManageAccounts)).Post("/accounts/{id}/requests", accountHandler.FileRequest)
		r.With(middleware.RequireAction(workflow.ActionVerifyRequests)).Get("/account-requests", accountHandler.ListRequests)
		r.With(middleware.RequireAction(workflow.ActionVerifyRequests)).Post("/account-requests/{id}/verify", accountHandler.VerifyRequest)
		r.With(middleware.RequireAction(workflow.ActionVerifyRequests)).Post("/account-requests/{id}/reject", accountHandler.RejectRequest)

		// Loans
		r.With(middleware.RequireAction(workflow.ActionRequestLoan)).Post("/loans", loanHandler.Request)
		r.Get("/loans", loanHandler.List)
		r.With(middleware.RequireAction(workflow.ActionReviewLoan)).Post("/loans/{id}/review", loanHandler.Review)
		r.With(middleware.RequireAction(workflow.ActionDisburseLoan)).Post("/loans/{id}/disburse", loanHandler.Disburse)

		// Templates and catalog
		r.Get("/templates", templateHandler.List)
		r.Get("/templates/{id}", templateHandler.Get)
		r.With(middleware.RequireAction(workflow.ActionManageTemplates)).Post("/templates", templateHandler.Create)
		r.With(middleware.RequireAction(workflow.ActionManageTemplates)).Put("/templates/{id}", templateHandler.Update)
		r.Get("/catalog", templateHandler.ListServices)
		r.With(middleware.RequireAction(workflow.ActionManageCatalog)).Post("/catalog", templateHandler.CreateService)

		// Reports
		r.With(middleware.RequireAction(workflow.ActionViewReports)).Get("/reports/doctor-performance", reportHandler.DoctorPerformance)
		r.With(middleware.RequireAction(workflow.ActionViewReports)).Get("/reports/revenue", reportHandler.Revenue)
	})

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Str("addr", addr).Msg("Server starting")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"asset-backend/internal/auth"
	"asset-backend/internal/cache"
	"asset-backend/internal/config"
	"asset-backend/internal/database"
	"asset-backend/internal/db"
	"asset-backend/internal/events"
	"asset-backend/internal/handlers"
	"asset-backend/internal/health"
	h "asset-backend/internal/http"
	"asset-backend/internal/mail"
	"asset-backend/internal/middleware"
	"asset-backend/internal/monitoring"
	"asset-backend/internal/repositories"
	"asset-backend/internal/services"
	"asset-backend/internal/whatsapp"
)

func main() {
	cfg := config.Load()

	pool := db.Connect(cfg)
	defer pool.Close()

	log.Println("Running database migrations...")
	migrator := database.NewMigrator(pool)
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis is optional. A failed connection degrades to no caching.
	redisAddr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	if err := cache.Init(redisAddr, cfg.Redis.Password); err != nil {
		log.Printf("[Cache] Redis unavailable, continuing without cache: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(pool)
	requestRepo := repositories.NewRequestRepository(pool)
	loanRepo := repositories.NewLoanRepository(pool)
	assetRepo := repositories.NewAssetRepository(pool)
	movementRepo := repositories.NewStockMovementRepository(pool)
	activityRepo := repositories.NewActivityLogRepository(pool)

	// Auth
	jwtManager := auth.NewJWTManager(cfg)
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	// Events and notifications
	dispatcher := events.NewDispatcher()
	defer dispatcher.Close()

	waProvider := whatsapp.NewProvider(cfg.WhatsApp.APIKey, cfg.WhatsApp.PhoneNumberID)
	mailer := mail.NewMailer(cfg.SMTP.Host, cfg.SMTP.Port, cfg.SMTP.Username, cfg.SMTP.Password, cfg.SMTP.From)
	notifier := services.NewNotificationService(waProvider, mailer)
	notifier.ApproverPhones = cfg.WhatsApp.ApproverPhones
	notifier.WarehousePhones = cfg.WhatsApp.WarehousePhones
	notifier.ApproverEmails = cfg.SMTP.ApproverEmails
	notifier.WarehouseEmails = cfg.SMTP.WarehouseEmails
	dispatcher.Subscribe(notifier)

	// Services
	stockService := services.NewStockService(movementRepo, assetRepo)
	requestService := services.NewRequestService(requestRepo, assetRepo, activityRepo, dispatcher)
	assetService := services.NewAssetService(assetRepo, stockService, requestService)
	loanService := services.NewLoanService(loanRepo, stockService, dispatcher)
	documentService := services.NewDocumentService(requestRepo)
	userService := services.NewUserService(userRepo, jwtManager)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	requestHandler := handlers.NewRequestHandler(requestService, documentService)
	assetHandler := handlers.NewAssetHandler(assetService)
	stockHandler := handlers.NewStockHandler(stockService)
	loanHandler := handlers.NewLoanHandler(loanService)

	healthChecker := health.NewHealthChecker(pool, cache.GetClient())
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Monitoring stats server on its own port
	go monitoring.NewMonitoringServer(pool, cfg.Server.MonitoringPort).Start()

	router := h.NewRouter(
		authHandler, userHandler, requestHandler, assetHandler,
		stockHandler, loanHandler, healthHandler, authMiddleware,
	)

	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

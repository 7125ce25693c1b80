package http

import (
	"net/http"

	"asset-backend/internal/handlers"
	"asset-backend/internal/middleware"
	"asset-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	requestHandler *handlers.RequestHandler,
	assetHandler *handlers.AssetHandler,
	stockHandler *handlers.StockHandler,
	loanHandler *handlers.LoanHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Health and metrics (no auth)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Public API routes - Authentication
	r.HandleFunc("/auth/signup", authHandler.Signup).Methods("POST")
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	reviewer := authMiddleware.RequireRole(models.RoleLogistic, models.RoleCEO, models.RoleAdmin)
	warehouse := authMiddleware.RequireRole(models.RoleLogistic, models.RoleAdmin)

	// Protected API routes - Purchase Requests
	requestsAPI := r.PathPrefix("/api/requests").Subrouter()
	requestsAPI.Use(authMiddleware.Authenticate)
	requestsAPI.HandleFunc("", requestHandler.ListRequests).Methods("GET")
	requestsAPI.HandleFunc("", requestHandler.CreateRequest).Methods("POST")
	requestsAPI.HandleFunc("/{id}", requestHandler.GetRequest).Methods("GET")
	requestsAPI.HandleFunc("/{id}/review", reviewer(http.HandlerFunc(requestHandler.ReviewRequest)).ServeHTTP).Methods("POST")
	requestsAPI.HandleFunc("/{id}/submit-final", warehouse(http.HandlerFunc(requestHandler.SubmitForFinalApproval)).ServeHTTP).Methods("POST")
	requestsAPI.HandleFunc("/{id}/status", warehouse(http.HandlerFunc(requestHandler.AdvanceStatus)).ServeHTTP).Methods("POST")
	requestsAPI.HandleFunc("/{id}/items/{item_id}/register", warehouse(http.HandlerFunc(requestHandler.RegisterItem)).ServeHTTP).Methods("POST")
	requestsAPI.HandleFunc("/{id}/complete", warehouse(http.HandlerFunc(requestHandler.CompleteRequest)).ServeHTTP).Methods("POST")
	requestsAPI.HandleFunc("/{id}/cancel", requestHandler.CancelRequest).Methods("POST")
	requestsAPI.HandleFunc("/{id}/activities", requestHandler.GetActivities).Methods("GET")
	requestsAPI.HandleFunc("/{id}/pdf", requestHandler.DownloadPDF).Methods("GET")

	// Protected API routes - Assets
	assetsAPI := r.PathPrefix("/api/assets").Subrouter()
	assetsAPI.Use(authMiddleware.Authenticate)
	assetsAPI.HandleFunc("", assetHandler.ListAssets).Methods("GET")
	assetsAPI.HandleFunc("", warehouse(http.HandlerFunc(assetHandler.RegisterAssets)).ServeHTTP).Methods("POST")
	assetsAPI.HandleFunc("/{id}", assetHandler.GetAsset).Methods("GET")
	assetsAPI.HandleFunc("/{id}/status", warehouse(http.HandlerFunc(assetHandler.UpdateAssetStatus)).ServeHTTP).Methods("PATCH")

	// Protected API routes - Stock ledger
	stockAPI := r.PathPrefix("/api/stock").Subrouter()
	stockAPI.Use(authMiddleware.Authenticate)
	stockAPI.HandleFunc("/summary", stockHandler.GetSummary).Methods("GET")
	stockAPI.HandleFunc("/history", stockHandler.GetHistory).Methods("GET")
	stockAPI.HandleFunc("/adjustments", warehouse(http.HandlerFunc(stockHandler.RecordAdjustment)).ServeHTTP).Methods("POST")

	// Protected API routes - Loans
	loansAPI := r.PathPrefix("/api/loans").Subrouter()
	loansAPI.Use(authMiddleware.Authenticate)
	loansAPI.HandleFunc("", loanHandler.ListLoans).Methods("GET")
	loansAPI.HandleFunc("", loanHandler.CreateLoan).Methods("POST")
	loansAPI.HandleFunc("/{id}", loanHandler.GetLoan).Methods("GET")
	loansAPI.HandleFunc("/{id}/decide", reviewer(http.HandlerFunc(loanHandler.DecideLoan)).ServeHTTP).Methods("POST")
	loansAPI.HandleFunc("/{id}/activate", warehouse(http.HandlerFunc(loanHandler.ActivateLoan)).ServeHTTP).Methods("POST")
	loansAPI.HandleFunc("/{id}/request-return", loanHandler.RequestReturn).Methods("POST")
	loansAPI.HandleFunc("/{id}/confirm-return", warehouse(http.HandlerFunc(loanHandler.ConfirmReturn)).ServeHTTP).Methods("POST")
	loansAPI.HandleFunc("/{id}/cancel", loanHandler.CancelLoan).Methods("POST")

	// Protected API routes - Users (admin only)
	usersAPI := r.PathPrefix("/api/users").Subrouter()
	usersAPI.Use(authMiddleware.RequireRole(models.RoleAdmin))
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", userHandler.DeleteUser).Methods("DELETE")

	return r
}

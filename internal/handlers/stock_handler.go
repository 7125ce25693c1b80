package handlers

import (
	"encoding/json"
	"net/http"

	"asset-backend/internal/cache"
	"asset-backend/internal/middleware"
	"asset-backend/internal/models"
	"asset-backend/internal/services"
)

type StockHandler struct {
	Service *services.StockService
}

func NewStockHandler(service *services.StockService) *StockHandler {
	return &StockHandler{Service: service}
}

// GetSummary returns current IN_STORAGE counts grouped by name and brand.
// Served from Redis when fresh.
func (h *StockHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	if data, ok := cache.GetCachedStockSummary(r.Context()); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	counts, err := h.Service.Summary(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if counts == nil {
		counts = []models.StockCount{}
	}

	data, err := json.Marshal(counts)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.CacheStockSummary(r.Context(), data)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// GetHistory returns the ledger with running balances for one item
func (h *StockHandler) GetHistory(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	brand := r.URL.Query().Get("brand")
	if name == "" {
		http.Error(w, "name query parameter is required", http.StatusBadRequest)
		return
	}

	if data, ok := cache.GetCachedStockHistory(r.Context(), name, brand); ok {
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}

	entries, err := h.Service.History(r.Context(), name, brand)
	if err != nil {
		writeError(w, err)
		return
	}
	if entries == nil {
		entries = []models.StockHistoryEntry{}
	}

	data, err := json.Marshal(entries)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.CacheStockHistory(r.Context(), name, brand, data)

	w.Header().Set("Content-Type", "application/json")
	w.Write(data)
}

// RecordAdjustment books a manual stock correction
func (h *StockHandler) RecordAdjustment(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		Quantity int    `json:"quantity"`
		Notes    string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetNameFromContext(r.Context())

	movement, err := h.Service.RecordMovement(r.Context(), models.MovementOutAdjustment,
		input.Name, input.Brand, input.Quantity, "", actor, input.Notes)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateStockCache(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(movement)
}

package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"asset-backend/internal/cache"
	"asset-backend/internal/middleware"
	"asset-backend/internal/models"
	"asset-backend/internal/services"

	"github.com/gorilla/mux"
)

type AssetHandler struct {
	Service *services.AssetService
}

func NewAssetHandler(service *services.AssetService) *AssetHandler {
	return &AssetHandler{Service: service}
}

// RegisterAssets creates asset records, optionally against a request item
func (h *AssetHandler) RegisterAssets(w http.ResponseWriter, r *http.Request) {
	var input models.RegisterAssetInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	registeredBy, _ := middleware.GetNameFromContext(r.Context())

	assets, err := h.Service.Register(r.Context(), &input, registeredBy)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateStockCache(r.Context())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(assets)
}

// ListAssets returns all assets
func (h *AssetHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	assets, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if assets == nil {
		assets = []models.Asset{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(assets)
}

// GetAsset returns one asset
func (h *AssetHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	asset, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(asset)
}

// UpdateAssetStatus changes an asset's status, moving stock when the
// change crosses the storage boundary
func (h *AssetHandler) UpdateAssetStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "Invalid asset id", http.StatusBadRequest)
		return
	}

	var input struct {
		Status     models.AssetStatus `json:"status"`
		AssignedTo string             `json:"assigned_to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetNameFromContext(r.Context())

	asset, err := h.Service.UpdateStatus(r.Context(), id, input.Status, input.AssignedTo, actor)
	if err != nil {
		writeError(w, err)
		return
	}
	cache.InvalidateStockCache(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(asset)
}

package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"asset-backend/internal/middleware"
	"asset-backend/internal/models"
	"asset-backend/internal/services"

	"github.com/gorilla/mux"
)

type RequestHandler struct {
	Service   *services.RequestService
	Documents *services.DocumentService
}

func NewRequestHandler(service *services.RequestService, documents *services.DocumentService) *RequestHandler {
	return &RequestHandler{Service: service, Documents: documents}
}

// CreateRequest submits a new purchase request
func (h *RequestHandler) CreateRequest(w http.ResponseWriter, r *http.Request) {
	var input models.CreateRequestInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if name, ok := middleware.GetNameFromContext(r.Context()); ok && input.Requester == "" {
		input.Requester = name
	}
	if division, ok := middleware.GetDivisionFromContext(r.Context()); ok && input.Division == "" {
		input.Division = division
	}

	req, err := h.Service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(req)
}

// ListRequests returns all purchase requests
func (h *RequestHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}

	// Ensure we return empty array instead of null
	if requests == nil {
		requests = []models.Request{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(requests)
}

// GetRequest returns one purchase request
func (h *RequestHandler) GetRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	req, err := h.Service.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// ReviewRequest applies a reviewer's per-item adjustments
func (h *RequestHandler) ReviewRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input models.ReviewInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	reviewer, _ := middleware.GetNameFromContext(r.Context())
	division, _ := middleware.GetDivisionFromContext(r.Context())

	req, err := h.Service.Review(r.Context(), id, &input, reviewer, division)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// SubmitForFinalApproval moves a logistic-approved request to the CEO stage
func (h *RequestHandler) SubmitForFinalApproval(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetNameFromContext(r.Context())

	req, err := h.Service.SubmitForFinalApproval(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// AdvanceStatus moves a request along the fulfillment chain
func (h *RequestHandler) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var input models.AdvanceStatusInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetNameFromContext(r.Context())

	req, err := h.Service.AdvanceStatus(r.Context(), id, &input, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// RegisterItem records registered units against one request item
func (h *RequestHandler) RegisterItem(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id := vars["id"]
	itemID, err := strconv.Atoi(vars["item_id"])
	if err != nil {
		http.Error(w, "Invalid item id", http.StatusBadRequest)
		return
	}

	var input models.RegisterItemInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	completed, err := h.Service.RegisterItem(r.Context(), id, itemID, input.Count)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]bool{"fully_registered": completed})
}

// CompleteRequest finishes a request after handover
func (h *RequestHandler) CompleteRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetNameFromContext(r.Context())

	req, err := h.Service.Complete(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// CancelRequest terminates a request from any non-terminal state
func (h *RequestHandler) CancelRequest(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	actor, _ := middleware.GetNameFromContext(r.Context())

	req, err := h.Service.Cancel(r.Context(), id, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(req)
}

// GetActivities returns the audit trail for one request
func (h *RequestHandler) GetActivities(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	activities, err := h.Service.ActivityLog(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	if activities == nil {
		activities = []models.RequestActivity{}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(activities)
}

// DownloadPDF streams the printable document for one request
func (h *RequestHandler) DownloadPDF(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	data, err := h.Documents.RequestPDF(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.pdf"`, id))
	w.Write(data)
}

package handlers

import (
	"encoding/json"
	"net/http"

	"asset-backend/internal/middleware"
	"asset-backend/internal/models"
	"asset-backend/internal/services"
	"asset-backend/pkg/utils"

	"github.com/gorilla/mux"
)

type LoanHandler struct {
	Service *services.LoanService
}

func NewLoanHandler(service *services.LoanService) *LoanHandler {
	return &LoanHandler{Service: service}
}

// CreateLoan submits a new borrowing request
func (h *LoanHandler) CreateLoan(w http.ResponseWriter, r *http.Request) {
	var input models.CreateLoanInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if name, ok := middleware.GetNameFromContext(r.Context()); ok && input.Borrower == "" {
		input.Borrower = name
	}
	if division, ok := middleware.GetDivisionFromContext(r.Context()); ok && input.Division == "" {
		input.Division = division
	}

	loan, err := h.Service.Create(r.Context(), &input)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusCreated, loan)
}

// ListLoans returns all loans
func (h *LoanHandler) ListLoans(w http.ResponseWriter, r *http.Request) {
	loans, err := h.Service.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if loans == nil {
		loans = []models.LoanRequest{}
	}

	utils.JSON(w, http.StatusOK, loans)
}

// GetLoan returns one loan
func (h *LoanHandler) GetLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Service.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// DecideLoan approves or rejects a pending loan
func (h *LoanHandler) DecideLoan(w http.ResponseWriter, r *http.Request) {
	var input models.LoanDecisionInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	actor, _ := middleware.GetNameFromContext(r.Context())

	loan, err := h.Service.Decide(r.Context(), mux.Vars(r)["id"], &input, actor)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// ActivateLoan hands items over to the borrower
func (h *LoanHandler) ActivateLoan(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetNameFromContext(r.Context())

	loan, err := h.Service.Activate(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// RequestReturn flags an active loan as awaiting return inspection
func (h *LoanHandler) RequestReturn(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Service.RequestReturn(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// ConfirmReturn closes the loan and books stock back in
func (h *LoanHandler) ConfirmReturn(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.GetNameFromContext(r.Context())

	loan, err := h.Service.ConfirmReturn(r.Context(), mux.Vars(r)["id"], actor)
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

// CancelLoan terminates a loan before handover
func (h *LoanHandler) CancelLoan(w http.ResponseWriter, r *http.Request) {
	loan, err := h.Service.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}

	utils.JSON(w, http.StatusOK, loan)
}

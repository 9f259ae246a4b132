package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type LoanHandler struct {
	loanService *services.LoanService
}

func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// Request files a loan for the acting staff member
func (h *LoanHandler) Request(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var req models.LoanRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	loan, err := h.loanService.Request(r.Context(), &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, loan)
}

// List retrieves loans. Non-admin staff only see their own.
func (h *LoanHandler) List(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())

	var staffID *uuid.UUID
	if user.Role != models.RoleAdmin && user.Role != models.RoleBilling {
		staffID = &user.UserID
	}

	loans, err := h.loanService.List(r.Context(),
		models.LoanStatus(r.URL.Query().Get("status")), staffID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loans)
}

// Review approves or denies a pending loan
func (h *LoanHandler) Review(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.LoanReviewRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	loan, err := h.loanService.Review(r.Context(), loanID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

// Disburse pays out an approved loan
func (h *LoanHandler) Disburse(w http.ResponseWriter, r *http.Request) {
	loanID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid loan id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	loan, err := h.loanService.Disburse(r.Context(), loanID, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, loan)
}

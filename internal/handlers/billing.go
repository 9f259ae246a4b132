package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type BillingHandler struct {
	billingService *services.BillingService
}

func NewBillingHandler(billingService *services.BillingService) *BillingHandler {
	return &BillingHandler{billingService: billingService}
}

// List retrieves billings, optionally scoped to a visit or status
func (h *BillingHandler) List(w http.ResponseWriter, r *http.Request) {
	var visitID *uuid.UUID
	if v := r.URL.Query().Get("visit"); v != "" {
		id, err := uuid.Parse(v)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid visit id"})
			return
		}
		visitID = &id
	}

	billings, err := h.billingService.List(r.Context(),
		visitID,
		models.BillingStatus(r.URL.Query().Get("status")),
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, billings)
}

// Get retrieves a billing with its lines
func (h *BillingHandler) Get(w http.ResponseWriter, r *http.Request) {
	billingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid billing id"})
		return
	}

	billing, err := h.billingService.Get(r.Context(), billingID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, billing)
}

// Pay settles a pending billing
func (h *BillingHandler) Pay(w http.ResponseWriter, r *http.Request) {
	billingID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid billing id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.PayRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	txn, err := h.billingService.Pay(r.Context(), billingID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txn)
}

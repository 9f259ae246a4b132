package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type AccountHandler struct {
	accountService *services.AccountService
}

func NewAccountHandler(accountService *services.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Get retrieves an account
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountParam(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.Get(r.Context(), accountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// FileRequest files a pending account mutation
func (h *AccountHandler) FileRequest(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.AccountMutationRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	request, err := h.accountService.FileRequest(r.Context(), accountID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, request)
}

// Ledger retrieves an account's transaction history
func (h *AccountHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	accountID, ok := accountParam(w, r)
	if !ok {
		return
	}

	txns, err := h.accountService.Ledger(r.Context(), accountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, txns)
}

// ListRequests retrieves account requests by status (admin review queue)
func (h *AccountHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.accountService.ListRequests(r.Context(),
		models.AccountRequestStatus(r.URL.Query().Get("status")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, requests)
}

// VerifyRequest applies a pending account request
func (h *AccountHandler) VerifyRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	account, err := h.accountService.Verify(r.Context(), requestID, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, account)
}

// RejectRequest declines a pending account request
func (h *AccountHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	requestID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	if err := h.accountService.Reject(r.Context(), requestID, user.UserID); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": string(models.AccountRequestRejected)})
}

func accountParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid account id"})
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type PatientHandler struct {
	patientService *services.PatientService
	accountService *services.AccountService
}

func NewPatientHandler(patientService *services.PatientService, accountService *services.AccountService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
		accountService: accountService,
	}
}

// Register creates a patient record
func (h *PatientHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.PatientRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	patient, err := h.patientService.Register(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, patient)
}

// Get retrieves a patient by surrogate id or PAT identifier
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "id")

	if strings.HasPrefix(idStr, "PAT-") {
		patient, err := h.patientService.GetByUID(r.Context(), idStr)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, patient)
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid patient id"})
		return
	}

	patient, err := h.patientService.Get(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, patient)
}

// List searches patients
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	patients, err := h.patientService.List(r.Context(),
		r.URL.Query().Get("search"),
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, patients)
}

// OpenAccount opens a credit or advance account for a patient
func (h *PatientHandler) OpenAccount(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid patient id"})
		return
	}

	var req models.OpenAccountRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	account, err := h.accountService.Open(r.Context(), patientID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, account)
}

// ListAccounts returns a patient's accounts
func (h *PatientHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	patientID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid patient id"})
		return
	}

	accounts, err := h.accountService.ListByPatient(r.Context(), patientID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, accounts)
}

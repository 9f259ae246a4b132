package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type VisitHandler struct {
	visitService *services.VisitService
	orderService *services.OrderService
}

func NewVisitHandler(visitService *services.VisitService, orderService *services.OrderService) *VisitHandler {
	return &VisitHandler{
		visitService: visitService,
		orderService: orderService,
	}
}

// Open creates a visit for a patient
func (h *VisitHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req models.VisitRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	visit, err := h.visitService.Open(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, visit)
}

// Get retrieves a visit
func (h *VisitHandler) Get(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}

	visit, err := h.visitService.Get(r.Context(), visitID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// List retrieves visits by status and/or doctor
func (h *VisitHandler) List(w http.ResponseWriter, r *http.Request) {
	var doctorID *uuid.UUID
	if d := r.URL.Query().Get("doctor"); d != "" {
		id, err := uuid.Parse(d)
		if err != nil {
			respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid doctor id"})
			return
		}
		doctorID = &id
	}

	visits, err := h.visitService.List(r.Context(),
		models.VisitStatus(r.URL.Query().Get("status")),
		doctorID,
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visits)
}

// RecordVitals stores the triage reading and moves the visit to TRIAGED
func (h *VisitHandler) RecordVitals(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.VitalsRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	vitals, err := h.visitService.RecordVitals(r.Context(), visitID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vitals)
}

// RecordContinuousVitals appends a monitoring reading
func (h *VisitHandler) RecordContinuousVitals(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.VitalsRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	vitals, err := h.visitService.RecordContinuousVitals(r.Context(), visitID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, vitals)
}

// GetVitals returns a visit's vitals history
func (h *VisitHandler) GetVitals(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}

	vitals, err := h.visitService.GetVitals(r.Context(), visitID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, vitals)
}

// Assign assigns a doctor and bills the consultation fee
func (h *VisitHandler) Assign(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.AssignRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	billing, err := h.visitService.AssignDoctor(r.Context(), visitID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, billing)
}

// Start begins the doctor consultation
func (h *VisitHandler) Start(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	visit, err := h.visitService.Start(r.Context(), visitID, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// Complete closes a visit once all orders are resolved
func (h *VisitHandler) Complete(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	visit, err := h.visitService.Complete(r.Context(), visitID, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// Cancel terminates a visit with a reason
func (h *VisitHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.CancelRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	visit, err := h.visitService.Cancel(r.Context(), visitID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, visit)
}

// Events returns a visit's transition audit trail
func (h *VisitHandler) Events(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}

	events, err := h.visitService.Events(r.Context(), visitID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, events)
}

// CreateOrders creates a batch order against a visit
func (h *VisitHandler) CreateOrders(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var req models.OrderRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.orderService.CreateBatch(r.Context(), visitID, &req, user.UserID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, result)
}

// ListOrders returns a visit's orders
func (h *VisitHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	visitID, ok := visitParam(w, r)
	if !ok {
		return
	}

	orders, err := h.orderService.ListByVisit(r.Context(), visitID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

func visitParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid visit id"})
		return uuid.Nil, false
	}
	return id, true
}

package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/middleware"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type OrderHandler struct {
	orderService *services.OrderService
}

func NewOrderHandler(orderService *services.OrderService) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// List returns a technician work queue filtered by category and status
func (h *OrderHandler) List(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orderService.List(r.Context(),
		models.OrderCategory(r.URL.Query().Get("category")),
		models.OrderStatus(r.URL.Query().Get("status")),
		queryInt(r, "limit"),
		queryInt(r, "offset"),
	)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, orders)
}

// Get retrieves a batch order with its items
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}

	order, err := h.orderService.Get(r.Context(), orderID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

// SubmitResult records a result payload for one order item
func (h *OrderHandler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid order id"})
		return
	}
	user, _ := middleware.GetUser(r.Context())

	var sub models.ResultSubmission
	if err := decodeBody(r, &sub); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	order, err := h.orderService.SubmitResult(r.Context(), orderID, &sub, user)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, order)
}

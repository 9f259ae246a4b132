package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/services"
)

type TemplateHandler struct {
	templateService *services.TemplateService
	catalogService  *services.CatalogService
}

func NewTemplateHandler(templateService *services.TemplateService, catalogService *services.CatalogService) *TemplateHandler {
	return &TemplateHandler{
		templateService: templateService,
		catalogService:  catalogService,
	}
}

// Create stores a result template
func (h *TemplateHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req models.TemplateRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	template, err := h.templateService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, template)
}

// Get retrieves a template (cache-backed)
func (h *TemplateHandler) Get(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid template id"})
		return
	}

	template, err := h.templateService.Get(r.Context(), templateID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, template)
}

// List retrieves templates by category
func (h *TemplateHandler) List(w http.ResponseWriter, r *http.Request) {
	templates, err := h.templateService.List(r.Context(),
		models.OrderCategory(r.URL.Query().Get("category")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, templates)
}

// Update replaces a template
func (h *TemplateHandler) Update(w http.ResponseWriter, r *http.Request) {
	templateID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid template id"})
		return
	}

	var req models.TemplateRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	template, err := h.templateService.Update(r.Context(), templateID, &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, template)
}

// CreateService adds an orderable service to the catalog
func (h *TemplateHandler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req services.CatalogRequest
	if err := decodeBody(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	service, err := h.catalogService.Create(r.Context(), &req)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, service)
}

// ListServices retrieves the orderable catalog
func (h *TemplateHandler) ListServices(w http.ResponseWriter, r *http.Request) {
	list, err := h.catalogService.List(r.Context(),
		models.OrderCategory(r.URL.Query().Get("category")))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, list)
}

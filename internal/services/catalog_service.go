package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
)

// CatalogService manages the orderable service price list
type CatalogService struct {
	catalogRepo  *repository.CatalogRepository
	templateRepo *repository.TemplateRepository
}

// NewCatalogService creates a new catalog service
func NewCatalogService(catalogRepo *repository.CatalogRepository, templateRepo *repository.TemplateRepository) *CatalogService {
	return &CatalogService{
		catalogRepo:  catalogRepo,
		templateRepo: templateRepo,
	}
}

// CatalogRequest creates an orderable service
type CatalogRequest struct {
	Name       string               `json:"name"`
	Category   models.OrderCategory `json:"category"`
	Price      float64              `json:"price"`
	TemplateID *uuid.UUID           `json:"template_id,omitempty"`
}

// Create adds a service to the catalog
func (s *CatalogService) Create(ctx context.Context, req *CatalogRequest) (*models.ServiceCatalog, error) {
	if req.Name == "" {
		return nil, invalid("service name is required")
	}
	if req.Price < 0 {
		return nil, invalid("price cannot be negative")
	}
	switch req.Category {
	case models.OrderCategoryLab, models.OrderCategoryRadiology, models.OrderCategoryDental:
	default:
		return nil, invalid("unknown category %q", req.Category)
	}

	if req.TemplateID != nil {
		template, err := s.templateRepo.GetByID(ctx, *req.TemplateID)
		if err != nil {
			return nil, err
		}
		if template.Category != req.Category {
			return nil, invalid("template %s belongs to %s, not %s", template.Name, template.Category, req.Category)
		}
	}

	service := &models.ServiceCatalog{
		Name:       req.Name,
		Category:   req.Category,
		Price:      req.Price,
		TemplateID: req.TemplateID,
		IsActive:   true,
	}
	if err := s.catalogRepo.Create(ctx, service); err != nil {
		return nil, err
	}
	return service, nil
}

// List retrieves active services by category
func (s *CatalogService) List(ctx context.Context, category models.OrderCategory) ([]models.ServiceCatalog, error) {
	return s.catalogRepo.List(ctx, category)
}

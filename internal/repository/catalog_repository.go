package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/database"
	"github.com/hayder75/clinic-core/internal/models"
	"gorm.io/gorm"
)

// CatalogRepository handles service catalog database operations
type CatalogRepository struct{}

// NewCatalogRepository creates a new catalog repository
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{}
}

// Create adds an orderable service to the catalog
func (r *CatalogRepository) Create(ctx context.Context, service *models.ServiceCatalog) error {
	if err := database.DB.WithContext(ctx).Create(service).Error; err != nil {
		return fmt.Errorf("failed to create catalog service: %w", err)
	}
	return nil
}

// GetByID retrieves one catalog service
func (r *CatalogRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ServiceCatalog, error) {
	var service models.ServiceCatalog
	if err := database.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&service).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get catalog service: %w", err)
	}
	return &service, nil
}

// List retrieves active catalog services, optionally by category
func (r *CatalogRepository) List(ctx context.Context, category models.OrderCategory) ([]models.ServiceCatalog, error) {
	var services []models.ServiceCatalog
	query := database.DB.WithContext(ctx).Where("is_active = ?", true).Order("name ASC")

	if category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&services).Error; err != nil {
		return nil, fmt.Errorf("failed to list catalog services: %w", err)
	}
	return services, nil
}

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

// TemplateRepository handles result template database operations
type TemplateRepository struct{}

// NewTemplateRepository creates a new template repository
func NewTemplateRepository() *TemplateRepository {
	return &TemplateRepository{}
}

// Create stores a result template
func (r *TemplateRepository) Create(ctx context.Context, template *models.ResultTemplate) error {
	if err := database.DB.WithContext(ctx).Create(template).Error; err != nil {
		return fmt.Errorf("failed to create template: %w", err)
	}
	return nil
}

// GetByID retrieves a result template
func (r *TemplateRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.ResultTemplate, error) {
	var template models.ResultTemplate
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&template).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}
	return &template, nil
}

// List retrieves templates, optionally by category
func (r *TemplateRepository) List(ctx context.Context, category models.OrderCategory) ([]models.ResultTemplate, error) {
	var templates []models.ResultTemplate
	query := database.DB.WithContext(ctx).Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}
	return templates, nil
}

// Update replaces a template's name, category and fields
func (r *TemplateRepository) Update(ctx context.Context, template *models.ResultTemplate) error {
	if err := database.DB.WithContext(ctx).Save(template).Error; err != nil {
		return fmt.Errorf("failed to update template: %w", err)
	}
	return nil
}

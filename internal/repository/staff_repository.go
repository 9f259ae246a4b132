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

// StaffRepository handles staff database operations
type StaffRepository struct{}

// NewStaffRepository creates a new staff repository
func NewStaffRepository() *StaffRepository {
	return &StaffRepository{}
}

// Create registers a staff member
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) error {
	if err := database.DB.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

// GetByID retrieves a staff member
func (r *StaffRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Staff, error) {
	var staff models.Staff
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

// GetByUsername retrieves an active staff member by username
func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*models.Staff, error) {
	var staff models.Staff
	if err := database.DB.WithContext(ctx).
		Where("username = ? AND is_active = ?", username, true).
		First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get staff: %w", err)
	}
	return &staff, nil
}

// ListByRole retrieves active staff members of one role
func (r *StaffRepository) ListByRole(ctx context.Context, role models.Role) ([]models.Staff, error) {
	var staff []models.Staff
	if err := database.DB.WithContext(ctx).
		Where("role = ? AND is_active = ?", role, true).
		Order("full_name ASC").
		Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

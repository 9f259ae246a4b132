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

// LoanRepository handles staff loan database operations
type LoanRepository struct{}

// NewLoanRepository creates a new loan repository
func NewLoanRepository() *LoanRepository {
	return &LoanRepository{}
}

// Create files a loan request
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	if err := database.DB.WithContext(ctx).Create(loan).Error; err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// GetByID retrieves a loan
func (r *LoanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	var loan models.Loan
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&loan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return &loan, nil
}

// List retrieves loans, optionally by status or requesting staff member
func (r *LoanRepository) List(ctx context.Context, status models.LoanStatus, staffID *uuid.UUID) ([]models.Loan, error) {
	var loans []models.Loan
	query := database.DB.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if staffID != nil {
		query = query.Where("staff_id = ?", *staffID)
	}
	if err := query.Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to list loans: %w", err)
	}
	return loans, nil
}

// Review approves or denies a pending loan with a guarded update
func (r *LoanRepository) Review(ctx context.Context, id uuid.UUID, to models.LoanStatus, approvedAmount float64, reviewerID uuid.UUID) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{
			"status":      to,
			"reviewed_by": reviewerID,
		}
		if to == models.LoanStatusApproved {
			updates["approved_amount"] = approvedAmount
		}

		res := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", id, models.LoanStatusPending).
			Updates(updates)
		if res.Error != nil {
			return fmt.Errorf("failed to review loan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		event := &models.VisitEvent{
			EntityType: "loan",
			EntityID:   id,
			FromStatus: string(models.LoanStatusPending),
			ToStatus:   string(to),
			ActorID:    reviewerID,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record loan event: %w", err)
		}
		return nil
	})
}

// Disburse pays out an approved loan. The status guard makes a second
// disbursement lose with ErrConflict instead of paying twice.
func (r *LoanRepository) Disburse(ctx context.Context, id uuid.UUID, officerID uuid.UUID) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Loan{}).
			Where("id = ? AND status = ?", id, models.LoanStatusApproved).
			Updates(map[string]interface{}{
				"status":       models.LoanStatusGiven,
				"disbursed_by": officerID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to disburse loan: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		event := &models.VisitEvent{
			EntityType: "loan",
			EntityID:   id,
			FromStatus: string(models.LoanStatusApproved),
			ToStatus:   string(models.LoanStatusGiven),
			ActorID:    officerID,
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record loan event: %w", err)
		}
		return nil
	})
}

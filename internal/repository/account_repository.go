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

// AccountRepository handles patient account and account request operations
type AccountRepository struct{}

// NewAccountRepository creates a new account repository
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{}
}

// Create opens an account for a patient. One account per type per patient.
func (r *AccountRepository) Create(ctx context.Context, account *models.Account) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing int64
		if err := tx.Model(&models.Account{}).
			Where("patient_id = ? AND type = ?", account.PatientID, account.Type).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("failed to check existing accounts: %w", err)
		}
		if existing > 0 {
			return ErrConflict
		}
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
		return nil
	})
}

// GetByID retrieves an account
func (r *AccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// ListByPatient retrieves a patient's accounts
func (r *AccountRepository) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// CreateRequest files a pending account mutation. The balance stays untouched
// until an admin verifies.
func (r *AccountRepository) CreateRequest(ctx context.Context, request *models.AccountRequest) error {
	if err := database.DB.WithContext(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create account request: %w", err)
	}
	return nil
}

// GetRequest retrieves an account request
func (r *AccountRepository) GetRequest(ctx context.Context, id uuid.UUID) (*models.AccountRequest, error) {
	var request models.AccountRequest
	if err := database.DB.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get account request: %w", err)
	}
	return &request, nil
}

// ListRequests retrieves account requests by status
func (r *AccountRepository) ListRequests(ctx context.Context, status models.AccountRequestStatus) ([]models.AccountRequest, error) {
	var requests []models.AccountRequest
	query := database.DB.WithContext(ctx).Order("created_at ASC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("failed to list account requests: %w", err)
	}
	return requests, nil
}

// Verify applies a pending account request: the guarded status flip, the
// balance delta and the paired transaction record commit atomically. A
// request that already left PENDING loses with ErrConflict.
func (r *AccountRepository) Verify(ctx context.Context, request *models.AccountRequest, balanceDelta, debtDelta float64, reviewerID uuid.UUID) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.AccountRequest{}).
			Where("id = ? AND status = ?", request.ID, models.AccountRequestPending).
			Updates(map[string]interface{}{
				"status":      models.AccountRequestVerified,
				"reviewed_by": reviewerID,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to verify account request: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if balanceDelta < 0 {
			debit := tx.Model(&models.Account{}).
				Where("id = ? AND balance >= ?", request.AccountID, -balanceDelta).
				Update("balance", gorm.Expr("balance + ?", balanceDelta))
			if debit.Error != nil {
				return fmt.Errorf("failed to apply balance delta: %w", debit.Error)
			}
			if debit.RowsAffected == 0 {
				return ErrInsufficientFunds
			}
		} else if balanceDelta != 0 {
			if err := tx.Model(&models.Account{}).
				Where("id = ?", request.AccountID).
				Update("balance", gorm.Expr("balance + ?", balanceDelta)).Error; err != nil {
				return fmt.Errorf("failed to apply balance delta: %w", err)
			}
		}

		if debtDelta < 0 {
			settle := tx.Model(&models.Account{}).
				Where("id = ? AND debt_owed >= ?", request.AccountID, -debtDelta).
				Update("debt_owed", gorm.Expr("debt_owed + ?", debtDelta))
			if settle.Error != nil {
				return fmt.Errorf("failed to apply debt delta: %w", settle.Error)
			}
			if settle.RowsAffected == 0 {
				return ErrInsufficientFunds
			}
		} else if debtDelta != 0 {
			if err := tx.Model(&models.Account{}).
				Where("id = ?", request.AccountID).
				Update("debt_owed", gorm.Expr("debt_owed + ?", debtDelta)).Error; err != nil {
				return fmt.Errorf("failed to apply debt delta: %w", err)
			}
		}

		txn := &models.Transaction{
			AccountID: &request.AccountID,
			Method:    models.PaymentMethodAdjustment,
			Amount:    request.Amount,
			ActorID:   reviewerID,
			Reference: string(request.Type),
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to record account transaction: %w", err)
		}

		event := &models.VisitEvent{
			EntityType: "account_request",
			EntityID:   request.ID,
			FromStatus: string(models.AccountRequestPending),
			ToStatus:   string(models.AccountRequestVerified),
			ActorID:    reviewerID,
			Note:       string(request.Type),
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record account event: %w", err)
		}
		return nil
	})
}

// Reject declines a pending account request with no balance effect
func (r *AccountRepository) Reject(ctx context.Context, id uuid.UUID, reviewerID uuid.UUID) error {
	res := database.DB.WithContext(ctx).
		Model(&models.AccountRequest{}).
		Where("id = ? AND status = ?", id, models.AccountRequestPending).
		Updates(map[string]interface{}{
			"status":      models.AccountRequestRejected,
			"reviewed_by": reviewerID,
		})
	if res.Error != nil {
		return fmt.Errorf("failed to reject account request: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

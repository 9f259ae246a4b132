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

// BillingRepository handles billing and transaction database operations
type BillingRepository struct{}

// NewBillingRepository creates a new billing repository
func NewBillingRepository() *BillingRepository {
	return &BillingRepository{}
}

// CreateWithLines stores an invoice and its lines in one transaction. The
// total is recomputed from the lines here so it can never drift.
func (r *BillingRepository) CreateWithLines(ctx context.Context, billing *models.Billing) error {
	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		billing.TotalAmount = billing.LineTotal()
		if err := tx.Create(billing).Error; err != nil {
			return fmt.Errorf("failed to create billing: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a billing with its lines
func (r *BillingRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Billing, error) {
	var billing models.Billing
	if err := database.DB.WithContext(ctx).Preload("Lines").Where("id = ?", id).First(&billing).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get billing: %w", err)
	}
	return &billing, nil
}

// List retrieves billings filtered by visit and status
func (r *BillingRepository) List(ctx context.Context, visitID *uuid.UUID, status models.BillingStatus, limit, offset int) ([]models.Billing, error) {
	var billings []models.Billing
	query := database.DB.WithContext(ctx).Preload("Lines").Order("created_at ASC")

	if visitID != nil {
		query = query.Where("visit_id = ?", *visitID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&billings).Error; err != nil {
		return nil, fmt.Errorf("failed to list billings: %w", err)
	}
	return billings, nil
}

// Pay settles a pending billing. The status flip, the optional account
// debit and the transaction record all commit together; the WHERE guard on
// status makes a concurrent double-pay lose with ErrConflict.
func (r *BillingRepository) Pay(ctx context.Context, billing *models.Billing, method models.PaymentMethod, account *models.Account, actorID uuid.UUID, reference string) (*models.Transaction, error) {
	var txn *models.Transaction

	err := database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Billing{}).
			Where("id = ? AND status = ?", billing.ID, models.BillingStatusPending).
			Update("status", models.BillingStatusPaid)
		if res.Error != nil {
			return fmt.Errorf("failed to settle billing: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrConflict
		}

		if method == models.PaymentMethodAccount {
			if account == nil {
				return fmt.Errorf("account payment requires an account")
			}
			switch account.Type {
			case models.AccountTypeAdvance:
				debit := tx.Model(&models.Account{}).
					Where("id = ? AND balance >= ?", account.ID, billing.TotalAmount).
					Update("balance", gorm.Expr("balance - ?", billing.TotalAmount))
				if debit.Error != nil {
					return fmt.Errorf("failed to debit account: %w", debit.Error)
				}
				if debit.RowsAffected == 0 {
					return ErrInsufficientFunds
				}
			case models.AccountTypeCredit:
				if err := tx.Model(&models.Account{}).
					Where("id = ?", account.ID).
					Update("debt_owed", gorm.Expr("debt_owed + ?", billing.TotalAmount)).Error; err != nil {
					return fmt.Errorf("failed to add account debt: %w", err)
				}
			}
		}

		txn = &models.Transaction{
			BillingID: &billing.ID,
			Method:    method,
			Amount:    billing.TotalAmount,
			ActorID:   actorID,
			Reference: reference,
		}
		if method == models.PaymentMethodAccount {
			txn.AccountID = &account.ID
		}
		if err := tx.Create(txn).Error; err != nil {
			return fmt.Errorf("failed to record transaction: %w", err)
		}

		event := &models.VisitEvent{
			VisitID:    &billing.VisitID,
			EntityType: "billing",
			EntityID:   billing.ID,
			FromStatus: string(models.BillingStatusPending),
			ToStatus:   string(models.BillingStatusPaid),
			ActorID:    actorID,
			Note:       string(method),
		}
		if err := tx.Create(event).Error; err != nil {
			return fmt.Errorf("failed to record billing event: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions retrieves transactions, optionally scoped to one billing
// or one account
func (r *BillingRepository) ListTransactions(ctx context.Context, billingID, accountID *uuid.UUID) ([]models.Transaction, error) {
	var txns []models.Transaction
	query := database.DB.WithContext(ctx).Order("created_at DESC")
	if billingID != nil {
		query = query.Where("billing_id = ?", *billingID)
	}
	if accountID != nil {
		query = query.Where("account_id = ?", *accountID)
	}
	if err := query.Find(&txns).Error; err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txns, nil
}

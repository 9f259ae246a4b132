package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/metrics"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/rs/zerolog/log"
)

// BillingService settles invoices and unlocks the orders gated on them
type BillingService struct {
	billingRepo *repository.BillingRepository
	orderRepo   *repository.OrderRepository
	accountRepo *repository.AccountRepository
}

// NewBillingService creates a new billing service
func NewBillingService(
	billingRepo *repository.BillingRepository,
	orderRepo *repository.OrderRepository,
	accountRepo *repository.AccountRepository,
) *BillingService {
	return &BillingService{
		billingRepo: billingRepo,
		orderRepo:   orderRepo,
		accountRepo: accountRepo,
	}
}

// Get retrieves a billing with its lines
func (s *BillingService) Get(ctx context.Context, id uuid.UUID) (*models.Billing, error) {
	return s.billingRepo.GetByID(ctx, id)
}

// List retrieves billings by visit and status
func (s *BillingService) List(ctx context.Context, visitID *uuid.UUID, status models.BillingStatus, limit, offset int) ([]models.Billing, error) {
	return s.billingRepo.List(ctx, visitID, status, limit, offset)
}

// Pay settles a pending billing and moves any gated orders to PAID. Paying
// an already-settled billing returns ErrConflict, never a double count.
func (s *BillingService) Pay(ctx context.Context, billingID uuid.UUID, req *models.PayRequest, actorID uuid.UUID) (*models.Transaction, error) {
	switch req.Method {
	case models.PaymentMethodCash, models.PaymentMethodBank, models.PaymentMethodInsurance, models.PaymentMethodCharity, models.PaymentMethodAccount:
	default:
		return nil, invalid("unknown payment method %q", req.Method)
	}

	billing, err := s.billingRepo.GetByID(ctx, billingID)
	if err != nil {
		return nil, err
	}

	var account *models.Account
	if req.Method == models.PaymentMethodAccount {
		if req.AccountID == nil {
			return nil, invalid("account_id is required for account payments")
		}
		account, err = s.accountRepo.GetByID(ctx, *req.AccountID)
		if err != nil {
			return nil, err
		}
	}

	txn, err := s.billingRepo.Pay(ctx, billing, req.Method, account, actorID, req.Reference)
	if err != nil {
		if err == repository.ErrConflict {
			metrics.Conflicts.WithLabelValues("billing").Inc()
		}
		return nil, err
	}

	unlocked, err := s.orderRepo.UnlockByBilling(ctx, billingID)
	if err != nil {
		// The payment is committed; an unlock failure is recoverable by a
		// retry, so it is logged rather than failing the settled payment.
		log.Error().Err(err).Str("billing_id", billingID.String()).Msg("Failed to unlock orders after payment")
	}

	metrics.Payments.WithLabelValues(string(req.Method)).Inc()
	metrics.PaymentAmount.WithLabelValues(string(req.Method)).Add(billing.TotalAmount)
	log.Info().
		Str("billing_id", billingID.String()).
		Str("method", string(req.Method)).
		Float64("amount", billing.TotalAmount).
		Int64("orders_unlocked", unlocked).
		Msg("Billing settled")

	return txn, nil
}

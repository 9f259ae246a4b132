package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/metrics"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/hayder75/clinic-core/internal/workflow"
)

// AccountService handles patient credit/advance accounts and their two-phase
// mutation requests.
type AccountService struct {
	accountRepo *repository.AccountRepository
	patientRepo *repository.PatientRepository
	billingRepo *repository.BillingRepository
}

// NewAccountService creates a new account service
func NewAccountService(
	accountRepo *repository.AccountRepository,
	patientRepo *repository.PatientRepository,
	billingRepo *repository.BillingRepository,
) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		patientRepo: patientRepo,
		billingRepo: billingRepo,
	}
}

// Open creates an account for a patient
func (s *AccountService) Open(ctx context.Context, patientID uuid.UUID, req *models.OpenAccountRequest) (*models.Account, error) {
	if req.Type != models.AccountTypeCredit && req.Type != models.AccountTypeAdvance {
		return nil, invalid("unknown account type %q", req.Type)
	}
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	account := &models.Account{PatientID: patientID, Type: req.Type}
	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, err
	}
	return account, nil
}

// Get retrieves an account
func (s *AccountService) Get(ctx context.Context, id uuid.UUID) (*models.Account, error) {
	return s.accountRepo.GetByID(ctx, id)
}

// ListByPatient retrieves a patient's accounts
func (s *AccountService) ListByPatient(ctx context.Context, patientID uuid.UUID) ([]models.Account, error) {
	return s.accountRepo.ListByPatient(ctx, patientID)
}

// FileRequest records a pending mutation. Nothing touches the balance until
// an admin verifies.
func (s *AccountService) FileRequest(ctx context.Context, accountID uuid.UUID, req *models.AccountMutationRequest, actorID uuid.UUID) (*models.AccountRequest, error) {
	if req.Amount <= 0 {
		return nil, invalid("amount must be positive")
	}

	account, err := s.accountRepo.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if _, _, ok := workflow.RequestDelta(account.Type, req.Type, req.Amount); !ok {
		return nil, invalid("request type %s is not valid for a %s account", req.Type, account.Type)
	}

	request := &models.AccountRequest{
		AccountID:   accountID,
		Type:        req.Type,
		Amount:      req.Amount,
		Status:      models.AccountRequestPending,
		RequestedBy: actorID,
		Note:        req.Note,
	}
	if err := s.accountRepo.CreateRequest(ctx, request); err != nil {
		return nil, err
	}
	return request, nil
}

// ListRequests retrieves account requests by status
func (s *AccountService) ListRequests(ctx context.Context, status models.AccountRequestStatus) ([]models.AccountRequest, error) {
	return s.accountRepo.ListRequests(ctx, status)
}

// Verify applies a pending request to the account balance atomically with
// its transaction record
func (s *AccountService) Verify(ctx context.Context, requestID uuid.UUID, reviewerID uuid.UUID) (*models.Account, error) {
	request, err := s.accountRepo.GetRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	account, err := s.accountRepo.GetByID(ctx, request.AccountID)
	if err != nil {
		return nil, err
	}

	balanceDelta, debtDelta, ok := workflow.RequestDelta(account.Type, request.Type, request.Amount)
	if !ok {
		return nil, invalid("request type %s is not valid for a %s account", request.Type, account.Type)
	}

	if err := s.accountRepo.Verify(ctx, request, balanceDelta, debtDelta, reviewerID); err != nil {
		if err == repository.ErrConflict {
			metrics.Conflicts.WithLabelValues("account_request").Inc()
		}
		return nil, err
	}

	return s.accountRepo.GetByID(ctx, request.AccountID)
}

// Reject declines a pending request with no balance effect
func (s *AccountService) Reject(ctx context.Context, requestID uuid.UUID, reviewerID uuid.UUID) error {
	err := s.accountRepo.Reject(ctx, requestID, reviewerID)
	if err == repository.ErrConflict {
		metrics.Conflicts.WithLabelValues("account_request").Inc()
	}
	return err
}

// Ledger retrieves an account's transaction history
func (s *AccountService) Ledger(ctx context.Context, accountID uuid.UUID) ([]models.Transaction, error) {
	if _, err := s.accountRepo.GetByID(ctx, accountID); err != nil {
		return nil, err
	}
	return s.billingRepo.ListTransactions(ctx, nil, &accountID)
}

package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/metrics"
	"github.com/hayder75/clinic-core/internal/models"
	"github.com/hayder75/clinic-core/internal/repository"
)

// LoanService handles the staff loan workflow: request, review, disburse
type LoanService struct {
	loanRepo *repository.LoanRepository
}

// NewLoanService creates a new loan service
func NewLoanService(loanRepo *repository.LoanRepository) *LoanService {
	return &LoanService{loanRepo: loanRepo}
}

// Request files a loan for the acting staff member
func (s *LoanService) Request(ctx context.Context, req *models.LoanRequest, staffID uuid.UUID) (*models.Loan, error) {
	if req.Amount <= 0 {
		return nil, invalid("loan amount must be positive")
	}
	if req.Reason == "" {
		return nil, invalid("loan reason is required")
	}

	loan := &models.Loan{
		StaffID: staffID,
		Amount:  req.Amount,
		Reason:  req.Reason,
		Status:  models.LoanStatusPending,
	}
	if err := s.loanRepo.Create(ctx, loan); err != nil {
		return nil, err
	}
	return loan, nil
}

// Get retrieves a loan
func (s *LoanService) Get(ctx context.Context, id uuid.UUID) (*models.Loan, error) {
	return s.loanRepo.GetByID(ctx, id)
}

// List retrieves loans by status or staff member
func (s *LoanService) List(ctx context.Context, status models.LoanStatus, staffID *uuid.UUID) ([]models.Loan, error) {
	return s.loanRepo.List(ctx, status, staffID)
}

// Review approves or denies a pending loan. The reviewer may adjust the
// approved amount; zero keeps the requested amount.
func (s *LoanService) Review(ctx context.Context, loanID uuid.UUID, req *models.LoanReviewRequest, reviewerID uuid.UUID) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, loanID)
	if err != nil {
		return nil, err
	}

	to := models.LoanStatusDenied
	amount := 0.0
	if req.Approve {
		to = models.LoanStatusApproved
		amount = req.Amount
		if amount <= 0 {
			amount = loan.Amount
		}
	}

	if err := s.loanRepo.Review(ctx, loanID, to, amount, reviewerID); err != nil {
		if err == repository.ErrConflict {
			metrics.Conflicts.WithLabelValues("loan").Inc()
		}
		return nil, err
	}
	return s.loanRepo.GetByID(ctx, loanID)
}

// Disburse pays out an approved loan exactly once. A second call finds the
// status already GIVEN and gets ErrConflict.
func (s *LoanService) Disburse(ctx context.Context, loanID uuid.UUID, officerID uuid.UUID) (*models.Loan, error) {
	if err := s.loanRepo.Disburse(ctx, loanID, officerID); err != nil {
		if err == repository.ErrConflict {
			metrics.Conflicts.WithLabelValues("loan").Inc()
		}
		return nil, err
	}
	return s.loanRepo.GetByID(ctx, loanID)
}

package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
)

func TestPaySettlesExactlyOnce(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewBillingRepository()

	billing := &models.Billing{
		VisitID: uuid.New(),
		Status:  models.BillingStatusPending,
		Lines: []models.BillingLine{
			{Description: "Consultation", UnitPrice: 300},
			{Description: "CBC", UnitPrice: 120},
		},
	}
	if err := repo.CreateWithLines(ctx, billing); err != nil {
		t.Fatalf("CreateWithLines: %v", err)
	}
	if billing.TotalAmount != 420 {
		t.Fatalf("TotalAmount = %v, want 420", billing.TotalAmount)
	}

	actor := uuid.New()
	txn, err := repo.Pay(ctx, billing, models.PaymentMethodCash, nil, actor, "")
	if err != nil {
		t.Fatalf("first Pay: %v", err)
	}
	if txn.Amount != 420 || txn.Method != models.PaymentMethodCash {
		t.Errorf("transaction = %v %v, want 420 CASH", txn.Amount, txn.Method)
	}

	if _, err := repo.Pay(ctx, billing, models.PaymentMethodCash, nil, actor, ""); err != ErrConflict {
		t.Fatalf("second Pay: got %v, want ErrConflict", err)
	}

	txns, err := repo.ListTransactions(ctx, &billing.ID, nil)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions after double pay, want 1", len(txns))
	}

	settled, err := repo.GetByID(ctx, billing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if settled.Status != models.BillingStatusPaid {
		t.Errorf("status = %s, want PAID", settled.Status)
	}
}

func TestPayFromAdvanceAccount(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewBillingRepository()
	accountRepo := NewAccountRepository()

	account := &models.Account{PatientID: uuid.New(), Type: models.AccountTypeAdvance, Balance: 500}
	if err := accountRepo.Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	billing := &models.Billing{
		VisitID: uuid.New(),
		Status:  models.BillingStatusPending,
		Lines:   []models.BillingLine{{Description: "X-Ray", UnitPrice: 200}},
	}
	if err := repo.CreateWithLines(ctx, billing); err != nil {
		t.Fatalf("CreateWithLines: %v", err)
	}

	if _, err := repo.Pay(ctx, billing, models.PaymentMethodAccount, account, uuid.New(), ""); err != nil {
		t.Fatalf("Pay: %v", err)
	}

	got, err := accountRepo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Balance != 300 {
		t.Errorf("balance = %v, want 300", got.Balance)
	}
}

func TestPayFromAdvanceAccountInsufficient(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewBillingRepository()
	accountRepo := NewAccountRepository()

	account := &models.Account{PatientID: uuid.New(), Type: models.AccountTypeAdvance, Balance: 50}
	if err := accountRepo.Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	billing := &models.Billing{
		VisitID: uuid.New(),
		Status:  models.BillingStatusPending,
		Lines:   []models.BillingLine{{Description: "X-Ray", UnitPrice: 200}},
	}
	if err := repo.CreateWithLines(ctx, billing); err != nil {
		t.Fatalf("CreateWithLines: %v", err)
	}

	if _, err := repo.Pay(ctx, billing, models.PaymentMethodAccount, account, uuid.New(), ""); err != ErrInsufficientFunds {
		t.Fatalf("Pay: got %v, want ErrInsufficientFunds", err)
	}

	// The whole settlement rolls back: billing stays payable, ledger empty.
	got, err := repo.GetByID(ctx, billing.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != models.BillingStatusPending {
		t.Errorf("status = %s, want PENDING", got.Status)
	}
	txns, err := repo.ListTransactions(ctx, &billing.ID, nil)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 0 {
		t.Errorf("got %d transactions, want 0", len(txns))
	}
}

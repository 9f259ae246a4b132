package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/hayder75/clinic-core/internal/models"
)

func TestVerifyAppliesDeltaOnce(t *testing.T) {
	setupTestDB(t)
	ctx := context.Background()
	repo := NewAccountRepository()

	account := &models.Account{PatientID: uuid.New(), Type: models.AccountTypeAdvance}
	if err := repo.Create(ctx, account); err != nil {
		t.Fatalf("create account: %v", err)
	}

	request := &models.AccountRequest{
		AccountID:   account.ID,
		Type:        models.AccountRequestAddDeposit,
		Amount:      500,
		Status:      models.AccountRequestPending,
		RequestedBy: uuid.New(),
	}
	if err := repo.CreateRequest(ctx, request); err != nil {
		t.Fatalf("create request: %v", err)
	}

	reviewer := uuid.New()
	if err := repo.Verify(ctx, request, 500, 0, reviewer); err != nil {
		t.Fatalf("first Verify: %v", err)
	}
	if err := repo.Verify(ctx, request, 500, 0, reviewer); err != ErrConflict {
		t.Fatalf("second Verify: got %v, want ErrConflict", err)
	}

	got, err := repo.GetByID(ctx, account.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Balance != 500 {
		t.Errorf("balance = %v, want 500 (delta applied exactly once)", got.Balance)
	}

	txns, err := NewBillingRepository().ListTransactions(ctx, nil, &account.ID)
	if err != nil {
		t.Fatalf("ListTransactions: %v", err)
	}
	if len(txns) != 1 {
		t.Fatalf("got %d transactions, want 1", len(txns))
	}
	if txns[0].Method != models.PaymentMethodAdjustment {
		t.Errorf("method = %s, want %s", txns[0].Method, models.PaymentMethodAdjustment)
	}
	if txns[0].Amount != 500 {
		t.Errorf("amount = %v, want 500", txns[0].Amount)
	}
}

func TestVerifyReturnMoneyGuards(t *testing.T) {
	ctx := context.Background()

	t.Run("credit debt cannot go negative", func(t *testing.T) {
		setupTestDB(t)
		repo := NewAccountRepository()

		account := &models.Account{PatientID: uuid.New(), Type: models.AccountTypeCredit, DebtOwed: 100}
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("create account: %v", err)
		}
		request := &models.AccountRequest{
			AccountID:   account.ID,
			Type:        models.AccountRequestReturnMoney,
			Amount:      150,
			Status:      models.AccountRequestPending,
			RequestedBy: uuid.New(),
		}
		if err := repo.CreateRequest(ctx, request); err != nil {
			t.Fatalf("create request: %v", err)
		}

		if err := repo.Verify(ctx, request, 0, -150, uuid.New()); err != ErrInsufficientFunds {
			t.Fatalf("Verify: got %v, want ErrInsufficientFunds", err)
		}

		// The rollback must leave both the request and the debt untouched.
		got, err := repo.GetRequest(ctx, request.ID)
		if err != nil {
			t.Fatalf("GetRequest: %v", err)
		}
		if got.Status != models.AccountRequestPending {
			t.Errorf("request status = %s, want PENDING", got.Status)
		}
		acc, err := repo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if acc.DebtOwed != 100 {
			t.Errorf("debt_owed = %v, want 100", acc.DebtOwed)
		}
	})

	t.Run("advance balance cannot go negative", func(t *testing.T) {
		setupTestDB(t)
		repo := NewAccountRepository()

		account := &models.Account{PatientID: uuid.New(), Type: models.AccountTypeAdvance, Balance: 80}
		if err := repo.Create(ctx, account); err != nil {
			t.Fatalf("create account: %v", err)
		}
		request := &models.AccountRequest{
			AccountID:   account.ID,
			Type:        models.AccountRequestReturnMoney,
			Amount:      200,
			Status:      models.AccountRequestPending,
			RequestedBy: uuid.New(),
		}
		if err := repo.CreateRequest(ctx, request); err != nil {
			t.Fatalf("create request: %v", err)
		}

		if err := repo.Verify(ctx, request, -200, 0, uuid.New()); err != ErrInsufficientFunds {
			t.Fatalf("Verify: got %v, want ErrInsufficientFunds", err)
		}
		acc, err := repo.GetByID(ctx, account.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if acc.Balance != 80 {
			t.Errorf("balance = %v, want 80", acc.Balance)
		}
	})
}

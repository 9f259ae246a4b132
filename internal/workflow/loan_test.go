package workflow

import (
	"testing"

	"github.com/hayder75/clinic-core/internal/models"
)

func TestLoanTransitions(t *testing.T) {
	cases := []struct {
		from, to models.LoanStatus
		ok       bool
	}{
		{models.LoanStatusPending, models.LoanStatusApproved, true},
		{models.LoanStatusPending, models.LoanStatusDenied, true},
		{models.LoanStatusPending, models.LoanStatusGiven, false},
		{models.LoanStatusApproved, models.LoanStatusGiven, true},
		{models.LoanStatusApproved, models.LoanStatusDenied, false},
		{models.LoanStatusGiven, models.LoanStatusGiven, false},
		{models.LoanStatusDenied, models.LoanStatusApproved, false},
	}

	for _, c := range cases {
		if got := CanTransitionLoan(c.from, c.to); got != c.ok {
			t.Errorf("CanTransitionLoan(%s, %s) = %v, want %v", c.from, c.to, got, c.ok)
		}
	}
}

func TestRequestDelta(t *testing.T) {
	cases := []struct {
		name    string
		acct    models.AccountType
		req     models.AccountRequestType
		amount  float64
		balance float64
		debt    float64
		ok      bool
	}{
		{"deposit into advance", models.AccountTypeAdvance, models.AccountRequestAddDeposit, 500, 500, 0, true},
		{"deposit into credit rejected", models.AccountTypeCredit, models.AccountRequestAddDeposit, 500, 0, 0, false},
		{"credit onto credit account", models.AccountTypeCredit, models.AccountRequestAddCredit, 200, 0, 200, true},
		{"credit onto advance rejected", models.AccountTypeAdvance, models.AccountRequestAddCredit, 200, 0, 0, false},
		{"return from advance", models.AccountTypeAdvance, models.AccountRequestReturnMoney, 150, -150, 0, true},
		{"settle credit debt", models.AccountTypeCredit, models.AccountRequestReturnMoney, 150, 0, -150, true},
	}

	for _, c := range cases {
		balance, debt, ok := RequestDelta(c.acct, c.req, c.amount)
		if ok != c.ok {
			t.Errorf("%s: ok = %v, want %v", c.name, ok, c.ok)
			continue
		}
		if balance != c.balance || debt != c.debt {
			t.Errorf("%s: deltas = (%v, %v), want (%v, %v)", c.name, balance, debt, c.balance, c.debt)
		}
	}
}

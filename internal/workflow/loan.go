package workflow

import "github.com/hayder75/clinic-core/internal/models"

var loanEdges = map[models.LoanStatus][]models.LoanStatus{
	models.LoanStatusPending:  {models.LoanStatusApproved, models.LoanStatusDenied},
	models.LoanStatusApproved: {models.LoanStatusGiven},
	models.LoanStatusDenied:   {},
	models.LoanStatusGiven:    {},
}

// CanTransitionLoan reports whether from -> to is a legal loan transition.
func CanTransitionLoan(from, to models.LoanStatus) bool {
	for _, next := range loanEdges[from] {
		if next == to {
			return true
		}
	}
	return false
}

// CheckLoanTransition returns an ErrTransition if from -> to is illegal.
func CheckLoanTransition(from, to models.LoanStatus) error {
	if !CanTransitionLoan(from, to) {
		return &ErrTransition{Entity: "loan", From: string(from), To: string(to)}
	}
	return nil
}

// RequestDelta returns the signed balance/debt effect of verifying an account
// request. Advance accounts move Balance; credit accounts move DebtOwed.
// RETURN_MONEY pays balance out of an advance account or settles credit debt.
func RequestDelta(acctType models.AccountType, reqType models.AccountRequestType, amount float64) (balanceDelta, debtDelta float64, ok bool) {
	switch reqType {
	case models.AccountRequestAddDeposit:
		if acctType != models.AccountTypeAdvance {
			return 0, 0, false
		}
		return amount, 0, true
	case models.AccountRequestAddCredit:
		if acctType != models.AccountTypeCredit {
			return 0, 0, false
		}
		return 0, amount, true
	case models.AccountRequestReturnMoney:
		if acctType == models.AccountTypeAdvance {
			return -amount, 0, true
		}
		return 0, -amount, true
	}
	return 0, 0, false
}

package repository

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrConflict is returned when a guarded status update matched zero rows,
	// meaning another actor already moved the record past the expected state.
	ErrConflict = errors.New("state conflict")

	// ErrInsufficientFunds is returned when an advance account cannot cover a
	// debit.
	ErrInsufficientFunds = errors.New("insufficient account balance")
)

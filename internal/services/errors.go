package services

import (
	"errors"
	"fmt"

	"github.com/hayder75/clinic-core/internal/repository"
	"github.com/hayder75/clinic-core/pkg/formschema"
)

var (
	// ErrNotFound mirrors the repository sentinel for handler mapping.
	ErrNotFound = repository.ErrNotFound

	// ErrConflict mirrors the repository sentinel for handler mapping.
	ErrConflict = repository.ErrConflict

	// ErrInsufficientFunds mirrors the repository sentinel.
	ErrInsufficientFunds = repository.ErrInsufficientFunds

	// ErrInvalid marks a request that fails validation.
	ErrInvalid = errors.New("invalid request")

	// ErrForbidden marks an operation the acting role may not perform.
	ErrForbidden = errors.New("forbidden")

	// ErrUnauthorized marks failed credential checks.
	ErrUnauthorized = errors.New("invalid credentials")
)

// invalid wraps ErrInvalid with a message
func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalid, fmt.Sprintf(format, args...))
}

// ValidationError carries template validation output. Warnings alone do not
// fail a submission; the handler returns them so the client can confirm.
type ValidationError struct {
	Result *formschema.Result
}

func (e *ValidationError) Error() string {
	if len(e.Result.Errors) > 0 {
		return fmt.Sprintf("validation failed: %v", e.Result.Errors)
	}
	return fmt.Sprintf("values need confirmation: %d warnings", len(e.Result.Warnings))
}

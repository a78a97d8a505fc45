package market

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation marks malformed or missing input. Nothing is mutated.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized covers role and ownership check failures.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidTransition is returned when the requested status is not a
	// legal successor of the current status for the acting role.
	ErrInvalidTransition = errors.New("invalid status transition")

	ErrOrderNotFound = errors.New("order not found")

	// ErrConflict is returned when a concurrent update won the race for the
	// same order. The caller may retry.
	ErrConflict = errors.New("order was modified concurrently")
)

// ProductNotFoundError is returned when a referenced product does not exist
// or is no longer active.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// InsufficientStockError is returned when a reservation asks for more units
// than a product has available. The whole reservation is rejected and no
// stock is mutated.
type InsufficientStockError struct {
	ProductID string
	Title     string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %s. Available: %d, Requested: %d",
		e.Title, e.Available, e.Requested)
}

func validationError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

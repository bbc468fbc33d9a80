package domain

import (
	"errors"
	"fmt"
)

var (
	ErrValidation = errors.New("validation")

	ErrNotFound          = errors.New("not found")          // 404
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrInvalidStatus     = errors.New("invalid status")     // 400
	ErrAmountMismatch    = errors.New("amount mismatch")    // 400
)

// Error is the validation failure returned by the ledger and the inventory
// processor. Its text is the human readable message; errors.Is matches both
// ErrValidation and Kind.
type Error struct {
	Kind error
	Msg  string
}

func (e *Error) Error() string { return e.Msg }

func (e *Error) Unwrap() []error { return []error{ErrValidation, e.Kind} }

func Errorf(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func NotFound(format string, args ...any) error {
	return Errorf(ErrNotFound, format, args...)
}

func InsufficientStock(productName string) error {
	return Errorf(ErrInsufficientStock, "Insufficient stock for product %s", productName)
}

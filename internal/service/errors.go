package service

import "errors"

// Failure taxonomy of the sale and product workflows. Everything here is a
// caller mistake and surfaces as HTTP 400 (409 for conflicts); anything else
// is treated as an unexpected persistence failure and surfaces as 500.
var (
	ErrValidation        = errors.New("validation failed")
	ErrProductNotFound   = errors.New("product not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrPriceMismatch     = errors.New("product price mismatch")
	ErrTotalMismatch     = errors.New("transaction total mismatch")
	ErrProductExists     = errors.New("product with this name already exists")
	ErrProductInUse      = errors.New("product cannot be deleted because it appears in transactions")
	ErrEmailExists       = errors.New("email already registered")
	ErrUserNotFound      = errors.New("user not found")
	ErrWrongPassword     = errors.New("wrong password")
	ErrInvalidDateRange  = errors.New("start date must not be after end date")
)

var clientErrors = []error{
	ErrValidation,
	ErrProductNotFound,
	ErrInsufficientStock,
	ErrPriceMismatch,
	ErrTotalMismatch,
	ErrProductExists,
	ErrProductInUse,
	ErrEmailExists,
	ErrUserNotFound,
	ErrWrongPassword,
	ErrInvalidDateRange,
}

// IsClientError reports whether err belongs to the validation taxonomy, i.e.
// the request was at fault and the message is safe to return to the caller.
func IsClientError(err error) bool {
	for _, e := range clientErrors {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}

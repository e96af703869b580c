// Package errors provides custom error types for the Datamint API.
// All service-layer errors should use AppError to ensure consistent,
// secure error responses that never leak internal details to clients.
package errors

import "net/http"

// AppError represents a structured application error with an error code,
// human-readable message, HTTP status code, and optional internal error.
type AppError struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
	Internal   error  `json:"-"`
}

// Error implements the error interface.
func (e *AppError) Error() string { return e.Message }

// Unwrap returns the internal error for use with errors.Is/As.
func (e *AppError) Unwrap() error { return e.Internal }

// Wrap creates a new AppError with the same code/message/status but wraps an internal error.
func Wrap(sentinel *AppError, internal error) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    sentinel.Message,
		StatusCode: sentinel.StatusCode,
		Internal:   internal,
	}
}

// WithMessage creates a new AppError with a custom message.
func WithMessage(sentinel *AppError, message string) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		StatusCode: sentinel.StatusCode,
		Internal:   sentinel.Internal,
	}
}

// Authentication & authorization errors.
var (
	ErrUnauthorized  = &AppError{Code: "UNAUTHORIZED", Message: "Authentication required", StatusCode: http.StatusUnauthorized}
	ErrInvalidAPIKey = &AppError{Code: "INVALID_API_KEY", Message: "Invalid or missing API key", StatusCode: http.StatusUnauthorized}
	ErrForbidden     = &AppError{Code: "FORBIDDEN", Message: "Access denied", StatusCode: http.StatusForbidden}
)

// General errors.
var (
	ErrInvalidInput   = &AppError{Code: "INVALID_INPUT", Message: "Invalid input", StatusCode: http.StatusBadRequest}
	ErrNotFound       = &AppError{Code: "NOT_FOUND", Message: "Resource not found", StatusCode: http.StatusNotFound}
	ErrInternalServer = &AppError{Code: "INTERNAL_ERROR", Message: "An internal error occurred", StatusCode: http.StatusInternalServerError}
)

// Share validation errors. All are rejected before any state mutation.
var (
	ErrEmptyShareSet      = &AppError{Code: "EMPTY_SHARE_SET", Message: "Ownership share set must not be empty", StatusCode: http.StatusBadRequest}
	ErrZeroPercentage     = &AppError{Code: "ZERO_PERCENTAGE", Message: "Every ownership share must be greater than zero", StatusCode: http.StatusBadRequest}
	ErrInvalidOwner       = &AppError{Code: "INVALID_OWNER", Message: "Share owner address must not be empty", StatusCode: http.StatusBadRequest}
	ErrPercentageMismatch = &AppError{Code: "PERCENTAGE_MISMATCH", Message: "Ownership shares must sum to exactly 10000 basis points", StatusCode: http.StatusBadRequest}
)

// Curve errors.
var (
	ErrInvalidPrice            = &AppError{Code: "INVALID_PRICE", Message: "Price must be a positive amount", StatusCode: http.StatusBadRequest}
	ErrCurveNotInitialized     = &AppError{Code: "CURVE_NOT_INITIALIZED", Message: "Price curve has not been initialized for this dataset", StatusCode: http.StatusNotFound}
	ErrCurveAlreadyInitialized = &AppError{Code: "CURVE_ALREADY_INITIALIZED", Message: "Price curve is already initialized for this dataset", StatusCode: http.StatusConflict}
)

// Dataset errors.
var (
	ErrDatasetNotFound  = &AppError{Code: "DATASET_NOT_FOUND", Message: "Dataset not found", StatusCode: http.StatusNotFound}
	ErrDatasetNotListed = &AppError{Code: "DATASET_NOT_LISTED", Message: "Dataset is not listed for sale", StatusCode: http.StatusConflict}
)

// Settlement errors.
var (
	ErrAlreadyPurchased      = &AppError{Code: "ALREADY_PURCHASED", Message: "Buyer has already purchased this dataset", StatusCode: http.StatusConflict}
	ErrPurchaseInProgress    = &AppError{Code: "PURCHASE_IN_PROGRESS", Message: "Another purchase of this dataset is in progress", StatusCode: http.StatusConflict}
	ErrInsufficientFunds     = &AppError{Code: "INSUFFICIENT_FUNDS", Message: "Insufficient payment balance", StatusCode: http.StatusBadRequest}
	ErrInsufficientAllowance = &AppError{Code: "INSUFFICIENT_ALLOWANCE", Message: "Settlement allowance does not cover the current price", StatusCode: http.StatusBadRequest}
	ErrPaymentTransferFailed = &AppError{Code: "PAYMENT_TRANSFER_FAILED", Message: "Payment transfer failed", StatusCode: http.StatusBadRequest}
	ErrOwnerHasNoUnits       = &AppError{Code: "OWNER_HAS_NO_UNITS", Message: "An expected owner no longer holds a unit of this dataset", StatusCode: http.StatusConflict}
)

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents standardized error codes
type ErrorCode string

const (
	// Validation errors
	ErrCodeValidation        ErrorCode = "VALIDATION_ERROR"
	ErrCodeInvalidInput      ErrorCode = "INVALID_INPUT"
	ErrCodeEmptyPortfolio    ErrorCode = "EMPTY_PORTFOLIO"
	ErrCodeDuplicateTickers  ErrorCode = "DUPLICATE_TICKERS"
	ErrCodeZeroWeightSum     ErrorCode = "ZERO_WEIGHT_SUM"
	ErrCodeNonPositiveWeight ErrorCode = "NONPOSITIVE_WEIGHTS"
	ErrCodeInvalidTickers    ErrorCode = "INVALID_TICKERS"

	// Lookup errors
	ErrCodeDataUnavailable ErrorCode = "DATA_UNAVAILABLE"
	ErrCodeCompanyNotFound ErrorCode = "COMPANY_NOT_FOUND"
	ErrCodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"

	// External accessor errors
	ErrCodeMarketData ErrorCode = "MARKET_DATA_ERROR"

	// System errors
	ErrCodeInternal  ErrorCode = "INTERNAL_ERROR"
	ErrCodeTimeout   ErrorCode = "TIMEOUT"
	ErrCodeRateLimit ErrorCode = "RATE_LIMIT_EXCEEDED"
)

// AppError represents a standardized application error
type AppError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	Details    map[string]interface{} `json:"details,omitempty"`
	StatusCode int                    `json:"-"`
	Err        error                  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *AppError) Unwrap() error {
	return e.Err
}

// Is implements error comparison by code
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// New creates a new AppError
func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusCode(code),
	}
}

// Wrap wraps an existing error with an AppError
func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: httpStatusCode(code),
		Err:        err,
	}
}

// AddDetail adds a detail to the error
func (e *AppError) AddDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsCode reports whether an error chain carries an AppError with the code
func IsCode(err error, code ErrorCode) bool {
	appErr, ok := AsAppError(err)
	return ok && appErr.Code == code
}

// AsAppError extracts an AppError from an error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// httpStatusCode maps error codes to HTTP status codes
func httpStatusCode(code ErrorCode) int {
	switch code {
	case ErrCodeInvalidInput:
		return http.StatusBadRequest
	case ErrCodeValidation, ErrCodeEmptyPortfolio, ErrCodeDuplicateTickers,
		ErrCodeZeroWeightSum, ErrCodeNonPositiveWeight, ErrCodeInvalidTickers:
		return http.StatusUnprocessableEntity
	case ErrCodeDataUnavailable, ErrCodeCompanyNotFound, ErrCodeSessionNotFound:
		return http.StatusNotFound
	case ErrCodeMarketData:
		return http.StatusBadGateway
	case ErrCodeRateLimit:
		return http.StatusTooManyRequests
	case ErrCodeTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// Common error constructors

func ValidationError(message string) *AppError {
	return New(ErrCodeValidation, message)
}

func InvalidInput(message string) *AppError {
	return New(ErrCodeInvalidInput, message)
}

func DataUnavailable(symbol string) *AppError {
	return New(ErrCodeDataUnavailable, fmt.Sprintf("no data available for %s", symbol)).
		AddDetail("symbol", symbol)
}

func MarketDataError(err error) *AppError {
	return Wrap(err, ErrCodeMarketData, "market data request failed")
}

func Internal(message string) *AppError {
	return New(ErrCodeInternal, message)
}

package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeMissingToken       ErrorType = "missing_token"
	ErrorTypeInvalidToken       ErrorType = "invalid_token"
	ErrorTypePermissionDenied   ErrorType = "permission_denied"
	ErrorTypeUnknownPrincipal   ErrorType = "unknown_principal"
	ErrorTypeInvalidParameter   ErrorType = "invalid_parameter"
	ErrorTypeStorageUnavailable ErrorType = "storage_unavailable"
	ErrorTypeInternal           ErrorType = "internal"
)

// DomainError represents a structured error with additional context.
// Message is safe to return to clients; Err is not.
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is matches any DomainError of the same Type
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Client-facing messages. These strings are part of the HTTP contract.
const (
	MsgMissingToken      = "Token is missing!"
	MsgInvalidToken      = "Token is invalid!"
	MsgPermissionDenied  = "Permission denied"
	MsgUnknownPrincipal  = "Invalid user"
	MsgInvalidParameter  = "Invalid pagination parameters"
	MsgInternal          = "Internal server error"
	MsgInvalidBody       = "Invalid request body"
	MsgRateLimitExceeded = "Too many requests"
)

// Sentinels for errors.Is. Use the New* constructors to attach a cause.
var (
	ErrMissingToken       = NewDomainError(ErrorTypeMissingToken, MsgMissingToken, nil)
	ErrInvalidToken       = NewDomainError(ErrorTypeInvalidToken, MsgInvalidToken, nil)
	ErrPermissionDenied   = NewDomainError(ErrorTypePermissionDenied, MsgPermissionDenied, nil)
	ErrUnknownPrincipal   = NewDomainError(ErrorTypeUnknownPrincipal, MsgUnknownPrincipal, nil)
	ErrInvalidParameter   = NewDomainError(ErrorTypeInvalidParameter, MsgInvalidParameter, nil)
	ErrStorageUnavailable = NewDomainError(ErrorTypeStorageUnavailable, MsgInternal, nil)
	ErrInternal           = NewDomainError(ErrorTypeInternal, MsgInternal, nil)
)

// NewInvalidToken wraps a decode failure
func NewInvalidToken(err error) *DomainError {
	return NewDomainError(ErrorTypeInvalidToken, MsgInvalidToken, err)
}

// NewPermissionDenied records the role the caller lacked
func NewPermissionDenied(required, actual string) *DomainError {
	return NewDomainError(ErrorTypePermissionDenied, MsgPermissionDenied, nil).
		WithDetail("required_role", required).
		WithDetail("role", actual)
}

// NewUnknownPrincipal wraps a failed login lookup
func NewUnknownPrincipal(err error) *DomainError {
	return NewDomainError(ErrorTypeUnknownPrincipal, MsgUnknownPrincipal, err)
}

// NewInvalidParameter names the offending query parameter
func NewInvalidParameter(param string, value interface{}) *DomainError {
	return NewDomainError(ErrorTypeInvalidParameter, MsgInvalidParameter, nil).
		WithDetail(param, value)
}

// NewStorageUnavailable wraps a datastore failure
func NewStorageUnavailable(err error) *DomainError {
	return NewDomainError(ErrorTypeStorageUnavailable, MsgInternal, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, MsgInternal, fmt.Errorf("%s: %w", message, err))
}

// IsMissingTokenError checks if an error is a missing token error
func IsMissingTokenError(err error) bool { return errors.Is(err, ErrMissingToken) }

// IsInvalidTokenError checks if an error is an invalid token error
func IsInvalidTokenError(err error) bool { return errors.Is(err, ErrInvalidToken) }

// IsPermissionDeniedError checks if an error is a permission denied error
func IsPermissionDeniedError(err error) bool { return errors.Is(err, ErrPermissionDenied) }

// IsUnknownPrincipalError checks if an error is an unknown principal error
func IsUnknownPrincipalError(err error) bool { return errors.Is(err, ErrUnknownPrincipal) }

// IsInvalidParameterError checks if an error is an invalid parameter error
func IsInvalidParameterError(err error) bool { return errors.Is(err, ErrInvalidParameter) }

// IsStorageUnavailableError checks if an error is a storage error
func IsStorageUnavailableError(err error) bool { return errors.Is(err, ErrStorageUnavailable) }

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool { return errors.Is(err, ErrInternal) }

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorMessage returns the client-facing message of a domain error
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	return MsgInternal
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error // underlying error for wrapping
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for errors.Is and errors.As
func (e *DomainError) Unwrap() error {
	return e.Err
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// WrapError wraps an existing error with domain error context
func WrapError(domainErr *DomainError, err error) *DomainError {
	return &DomainError{
		Code:    domainErr.Code,
		Message: domainErr.Message,
		Err:     err,
	}
}

// Predefined domain errors
var (
	// Authentication failures are always generic: the message is identical
	// whether the email exists, the password is wrong, or the account has no
	// password hash at all.
	ErrInvalidCredentials = NewDomainError("INVALID_CREDENTIALS", "invalid credentials")
	ErrUnauthorized       = NewDomainError("UNAUTHORIZED", "unauthorized")

	// Authorization failures: a valid identity with insufficient scope. A
	// valid token for a since-deleted account is distinguished from "never
	// authenticated" and maps to 403.
	ErrForbidden       = NewDomainError("FORBIDDEN", "insufficient permissions")
	ErrAccountNotFound = NewDomainError("ACCOUNT_NOT_FOUND", "account no longer exists")

	// Temporary access token errors
	ErrTemporaryTokenInvalid = NewDomainError("TEMP_TOKEN_INVALID", "invalid or expired access token")

	// Secure form link errors
	ErrLinkNotFound      = NewDomainError("LINK_NOT_FOUND", "link not found")
	ErrLinkRevoked       = NewDomainError("LINK_REVOKED", "link has been revoked")
	ErrLinkExpired       = NewDomainError("LINK_EXPIRED", "link has expired")
	ErrAccessCodeMissing = NewDomainError("ACCESS_CODE_REQUIRED", "access code is required")
	ErrAccessCodeInvalid = NewDomainError("ACCESS_CODE_INVALID", "incorrect access code")

	// Validation errors
	ErrInvalidInput      = NewDomainError("INVALID_INPUT", "invalid input")
	ErrInvalidExpiration = NewDomainError("INVALID_EXPIRATION", "expiration must resolve to a positive duration of at most 30 days")
	ErrInvalidFormType   = NewDomainError("INVALID_FORM_TYPE", "unsupported form type")
	ErrInvalidRole       = NewDomainError("INVALID_ROLE", "unsupported system role")

	// User management errors
	ErrUserNotFound = NewDomainError("USER_NOT_FOUND", "user not found")
	ErrEmailExists  = NewDomainError("EMAIL_EXISTS", "email already exists")
	ErrSelfDeletion = NewDomainError("SELF_DELETION", "users cannot delete themselves")

	// Throttling
	ErrRateLimited = NewDomainError("RATE_LIMITED", "too many attempts, try again later")

	// System errors
	ErrInternal           = NewDomainError("INTERNAL_ERROR", "internal server error")
	ErrServiceUnavailable = NewDomainError("SERVICE_UNAVAILABLE", "service unavailable")
)

// IsDomainError checks if an error is a domain error
func IsDomainError(err error) bool {
	var domainErr *DomainError
	return errors.As(err, &domainErr)
}

// GetDomainError extracts the domain error from an error
func GetDomainError(err error) *DomainError {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return nil
}

// ToHTTPStatus maps domain errors to HTTP status codes
// This should only be used in the handler/presentation layer
func ToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusOK
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErrorToHTTPStatus(domainErr)
	}

	// Default to internal server error for unknown errors
	return http.StatusInternalServerError
}

func domainErrorToHTTPStatus(err *DomainError) int {
	switch err.Code {
	// 400 Bad Request
	case "INVALID_INPUT", "INVALID_EXPIRATION", "INVALID_FORM_TYPE",
		"INVALID_ROLE", "ACCESS_CODE_REQUIRED":
		return http.StatusBadRequest

	// 401 Unauthorized
	case "UNAUTHORIZED", "INVALID_CREDENTIALS", "TEMP_TOKEN_INVALID",
		"ACCESS_CODE_INVALID":
		return http.StatusUnauthorized

	// 403 Forbidden
	case "FORBIDDEN", "ACCOUNT_NOT_FOUND", "SELF_DELETION":
		return http.StatusForbidden

	// 404 Not Found
	case "USER_NOT_FOUND", "LINK_NOT_FOUND":
		return http.StatusNotFound

	// 409 Conflict
	case "EMAIL_EXISTS":
		return http.StatusConflict

	// 410 Gone
	case "LINK_REVOKED", "LINK_EXPIRED":
		return http.StatusGone

	// 429 Too Many Requests
	case "RATE_LIMITED":
		return http.StatusTooManyRequests

	// 503 Service Unavailable
	case "SERVICE_UNAVAILABLE":
		return http.StatusServiceUnavailable

	// 500 Internal Server Error (default)
	default:
		return http.StatusInternalServerError
	}
}

// GetErrorMessage safely extracts error message
func GetErrorMessage(err error) string {
	if err == nil {
		return ""
	}

	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}

	return err.Error()
}

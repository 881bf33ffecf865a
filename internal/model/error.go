package model

import "errors"

// ErrorResponse represents a standardised error response.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ErrorKind classifies a failure for transport mapping.
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidationFailed
	KindUnauthenticated
	KindForbidden
	KindNotFound
	KindInvalidState
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidationFailed:
		return "ValidationFailed"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindForbidden:
		return "Forbidden"
	case KindNotFound:
		return "NotFound"
	case KindInvalidState:
		return "InvalidState"
	default:
		return "Internal"
	}
}

// Standard error codes for API responses
const (
	ErrCodeInvalidJSON        = "INVALID_JSON"
	ErrCodeMissingField       = "MISSING_FIELD"
	ErrCodeValidation         = "VALIDATION_FAILED"
	ErrCodeEmailTaken         = "EMAIL_TAKEN"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeProductNotFound    = "PRODUCT_NOT_FOUND"
	ErrCodeBannerNotFound     = "BANNER_NOT_FOUND"
	ErrCodeAddressNotFound    = "ADDRESS_NOT_FOUND"
	ErrCodePaymentNotFound    = "PAYMENT_METHOD_NOT_FOUND"
	ErrCodeOrderNotFound      = "ORDER_NOT_FOUND"
	ErrCodeNotCancellable     = "ORDER_NOT_CANCELLABLE"
	ErrCodeUnauthorised       = "UNAUTHORIZED"
	ErrCodeForbidden          = "FORBIDDEN"
	ErrCodeInternalError      = "INTERNAL_ERROR"
)

// DomainError is a business-logic failure carrying its kind and a client-safe message.
type DomainError struct {
	Kind    ErrorKind
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(kind ErrorKind, code, message string) *DomainError {
	return &DomainError{
		Kind:    kind,
		Code:    code,
		Message: message,
	}
}

// NewValidationError builds a ValidationFailed error with a custom message.
func NewValidationError(message string) *DomainError {
	return NewDomainError(KindValidationFailed, ErrCodeValidation, message)
}

// KindOf reports the kind of err, defaulting to KindInternal.
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindInternal
}

// Common domain errors
var (
	ErrEmailTaken         = NewDomainError(KindValidationFailed, ErrCodeEmailTaken, "User already exists with this email")
	ErrInvalidCredentials = NewDomainError(KindUnauthenticated, ErrCodeInvalidCredentials, "Invalid email or password")
	ErrUnauthenticated    = NewDomainError(KindUnauthenticated, ErrCodeUnauthorised, "Authentication required")
	ErrInvalidToken       = NewDomainError(KindUnauthenticated, ErrCodeUnauthorised, "Invalid or expired token")
	ErrForbidden          = NewDomainError(KindForbidden, ErrCodeForbidden, "Admin access required")
	ErrUserNotFound       = NewDomainError(KindNotFound, ErrCodeUserNotFound, "User not found")
	ErrProductNotFound    = NewDomainError(KindNotFound, ErrCodeProductNotFound, "Product not found")
	ErrBannerNotFound     = NewDomainError(KindNotFound, ErrCodeBannerNotFound, "Banner not found")
	ErrAddressNotFound    = NewDomainError(KindNotFound, ErrCodeAddressNotFound, "Address not found")
	ErrPaymentNotFound    = NewDomainError(KindNotFound, ErrCodePaymentNotFound, "Payment method not found")
	ErrOrderNotFound      = NewDomainError(KindNotFound, ErrCodeOrderNotFound, "Order not found")
	ErrNotCancellable     = NewDomainError(KindInvalidState, ErrCodeNotCancellable, "Order cannot be cancelled at this stage")
	ErrEmailRequired      = NewDomainError(KindValidationFailed, ErrCodeMissingField, "Email is required")
)

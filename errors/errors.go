package errors

import (
	"fmt"
	"net/http"
)

// Fallback messages shown when a failure carries no usable message.
const (
	// MessageUnknown is used when the identity service reports a failure without a message.
	MessageUnknown = "An unknown error occurred"
	// MessageGeneric is used when the request failed before a response was obtained.
	MessageGeneric = "Something went wrong"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Kind classifies where the failure happened.
	Kind Kind `json:"kind"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Field names the form field the error belongs to, if any.
	Field string `json:"field,omitempty"`
	// Retryable indicates if the operation can be retried by the user.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the status the identity service answered with (0 if none).
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithField attaches the error to a form field and returns the receiver.
func (e *AppError) WithField(field string) *AppError {
	e.Field = field
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// DisplayMessage returns the text a banner should show for this error.
func (e *AppError) DisplayMessage() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Kind == KindTransport {
		return MessageGeneric
	}
	return MessageUnknown
}

// New creates a new AppError with automatic retryable and kind detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Kind:       KindOf(code),
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Transport errors ---

// ServiceUnavailable creates a new AppError for a service that is temporarily unavailable.
func ServiceUnavailable(service string) *AppError {
	return &AppError{
		Code: ErrCodeServiceUnavailable, Kind: KindTransport,
		Message:   fmt.Sprintf("The %s is temporarily unavailable. Please try again.", service),
		Retryable: true, Details: map[string]any{"service": service},
	}
}

// ConnectionFailed creates a new AppError for a failed connection to a service.
func ConnectionFailed(service string, cause error) *AppError {
	msg := MessageGeneric
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeConnectionFailed, Kind: KindTransport, Message: msg,
		Retryable: true, Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Timeout creates a new AppError for a request that timed out.
func Timeout(operation string) *AppError {
	return &AppError{
		Code: ErrCodeTimeout, Kind: KindTransport,
		Message:   "The request took too long. Please try again.",
		Retryable: true, Details: map[string]any{"operation": operation},
	}
}

// --- Validation errors ---

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Kind: KindValidation, Message: message,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// FieldInvalid creates a field-scoped validation error.
func FieldInvalid(field string, code ErrorCode, message string) *AppError {
	return &AppError{
		Code: code, Kind: KindValidation, Message: message, Field: field,
		Retryable: false,
	}
}

// --- Identity service errors ---

// InvalidCredentials creates a new AppError for a rejected email/password pair.
func InvalidCredentials(message string) *AppError {
	if message == "" {
		message = "Invalid email or password"
	}
	return &AppError{
		Code: ErrCodeInvalidCredentials, Kind: KindAuth, Message: message,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// AlreadyExists creates a new AppError for an account that already exists.
func AlreadyExists(message string) *AppError {
	if message == "" {
		message = "Email already registered"
	}
	return &AppError{
		Code: ErrCodeAlreadyExists, Kind: KindAuth, Message: message,
		HTTPStatus: http.StatusConflict, Retryable: false,
	}
}

// RateLimited creates a new AppError for too many requests.
func RateLimited() *AppError {
	return &AppError{
		Code: ErrCodeRateLimited, Kind: KindAuth,
		Message:    "Too many requests. Please wait a moment and try again.",
		HTTPStatus: http.StatusTooManyRequests, Retryable: true,
	}
}

// Unauthorized creates a new AppError for a request without a valid session.
func Unauthorized(reason string) *AppError {
	if reason == "" {
		reason = "Authentication required."
	}
	return &AppError{
		Code: ErrCodeUnauthorized, Kind: KindAuth, Message: reason,
		HTTPStatus: http.StatusUnauthorized, Retryable: false,
	}
}

// ExternalServiceError creates a new AppError for an unclassified service failure.
func ExternalServiceError(message string, httpStatus int) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Kind: KindAuth, Message: message,
		HTTPStatus: httpStatus, Retryable: httpStatus >= http.StatusInternalServerError,
	}
}

// Unknown creates a new AppError for a service failure that carries no
// usable detail.
func Unknown(cause error) *AppError {
	return &AppError{
		Code: ErrCodeExternalService, Kind: KindAuth, Message: MessageUnknown,
		Retryable: false, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected client-side failure.
func Internal(cause error) *AppError {
	return &AppError{
		Code: ErrCodeInternal, Kind: KindTransport, Message: MessageGeneric,
		Retryable: false, Cause: cause,
	}
}

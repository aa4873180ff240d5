package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"
)

// ErrorResponse is the JSON error envelope following RFC 7807.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody contains the error details of an envelope.
type ErrorBody struct {
	Code      ErrorCode      `json:"code"`
	Message   string         `json:"message"`
	Retryable bool           `json:"retryable"`
	Details   map[string]any `json:"details,omitempty"`
}

// ToResponse converts an AppError to an ErrorResponse for JSON serialization.
func (e *AppError) ToResponse() ErrorResponse {
	return ErrorResponse{
		Error: ErrorBody{
			Code:      e.Code,
			Message:   e.Message,
			Retryable: e.Retryable,
			Details:   e.Details,
		},
	}
}

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// serviceCodes maps codes used by identity services onto local codes.
var serviceCodes = map[string]ErrorCode{
	"INVALID_EMAIL_OR_PASSWORD": ErrCodeInvalidCredentials,
	"INVALID_PASSWORD":          ErrCodeInvalidCredentials,
	"INVALID_CREDENTIALS":       ErrCodeInvalidCredentials,
	"USER_ALREADY_EXISTS":       ErrCodeAlreadyExists,
	"ALREADY_EXISTS":            ErrCodeAlreadyExists,
	"PASSWORD_TOO_SHORT":        ErrCodeWeakPassword,
	"WEAK_PASSWORD":             ErrCodeWeakPassword,
	"RATE_LIMITED":              ErrCodeRateLimited,
	"TOO_MANY_REQUESTS":         ErrCodeRateLimited,
	"UNAUTHORIZED":              ErrCodeUnauthorized,
}

// flatBody is the un-enveloped {"code","message"} error shape.
type flatBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// FromResponse builds an AppError from a failed identity-service response.
// Both the enveloped {"error":{...}} and the flat {"code","message"} shapes
// are understood; anything else falls back to status-based classification.
func FromResponse(status int, body []byte) *AppError {
	var code, message string

	var env struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(body, &env); err == nil && len(env.Error) > 0 {
		var inner flatBody
		if json.Unmarshal(env.Error, &inner) == nil {
			code, message = inner.Code, inner.Message
		} else {
			// {"error":"text"}
			_ = json.Unmarshal(env.Error, &message)
		}
	}
	if code == "" && message == "" {
		var flat flatBody
		if json.Unmarshal(body, &flat) == nil {
			code, message = flat.Code, flat.Message
		}
	}

	appErr := New(classify(status, code), message, status)
	if code != "" {
		appErr.WithDetail("service_code", code)
	}
	if appErr.Code == ErrCodeServiceUnavailable {
		appErr.Kind = KindAuth
	}
	return appErr
}

func classify(status int, serviceCode string) ErrorCode {
	if c, ok := serviceCodes[strings.ToUpper(serviceCode)]; ok {
		return c
	}
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrCodeUnauthorized
	case status == http.StatusConflict:
		return ErrCodeAlreadyExists
	case status == http.StatusTooManyRequests:
		return ErrCodeRateLimited
	case status == http.StatusServiceUnavailable:
		return ErrCodeServiceUnavailable
	default:
		return ErrCodeExternalService
	}
}

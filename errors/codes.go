package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Kind groups error codes by where the failure happened.
type Kind string

const (
	// KindValidation is a field-scoped failure caught before any network call.
	KindValidation Kind = "validation"
	// KindAuth is a failure reported by the identity service.
	KindAuth Kind = "auth"
	// KindTransport is a failure where no response was obtained.
	KindTransport Kind = "transport"
)

// Transport errors (no response from the identity service)
const (
	// ErrCodeServiceUnavailable indicates the identity service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeConnectionFailed indicates a failed connection to the identity service.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeRequired indicates a required field is empty.
	ErrCodeRequired ErrorCode = "REQUIRED"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	// ErrCodeMismatch indicates two fields that must be equal differ.
	ErrCodeMismatch ErrorCode = "MISMATCH"
)

// Identity service errors
const (
	// ErrCodeInvalidCredentials indicates the email/password pair was rejected.
	ErrCodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	// ErrCodeAlreadyExists indicates the account already exists.
	ErrCodeAlreadyExists ErrorCode = "ALREADY_EXISTS"
	// ErrCodeRateLimited indicates the client is rate limited.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeUnauthorized indicates the request carried no valid session.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeWeakPassword indicates the password does not meet the service policy.
	ErrCodeWeakPassword ErrorCode = "WEAK_PASSWORD"
	// ErrCodeExternalService indicates an unclassified failure reported by the service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

// ErrCodeInternal indicates an unexpected client-side failure.
const ErrCodeInternal ErrorCode = "INTERNAL_ERROR"

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeConnectionFailed:   true,
	ErrCodeTimeout:            true,
	ErrCodeRateLimited:        true,
	ErrCodeExternalService:    true,
	ErrCodeInternal:           false,
}

var codeKinds = map[ErrorCode]Kind{
	ErrCodeServiceUnavailable: KindTransport,
	ErrCodeConnectionFailed:   KindTransport,
	ErrCodeTimeout:            KindTransport,
	ErrCodeInvalidInput:       KindValidation,
	ErrCodeRequired:           KindValidation,
	ErrCodeInvalidFormat:      KindValidation,
	ErrCodeMismatch:           KindValidation,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
// Retryable is informational: the flow never retries on its own.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}

// KindOf returns the kind of failure a code describes. Unknown codes are
// treated as service-reported.
func KindOf(code ErrorCode) Kind {
	if k, ok := codeKinds[code]; ok {
		return k
	}
	return KindAuth
}

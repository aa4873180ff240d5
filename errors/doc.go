// Package errors provides the unified error type for authentication flows.
// It implements structured error types with error codes, a kind classifier
// (validation, auth, transport) and decoding of identity-service error
// envelopes following RFC 7807 conventions.
package errors

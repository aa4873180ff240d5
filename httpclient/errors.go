package httpclient

import (
	"context"
	stderrors "errors"
	"net"

	"github.com/kbukum/authfront/errors"
)

const serviceName = "identity service"

// transportError classifies a failure where no response was obtained.
func transportError(ctx context.Context, op string, err error) *errors.AppError {
	var netErr net.Error
	switch {
	case stderrors.Is(err, context.DeadlineExceeded),
		ctx.Err() == context.DeadlineExceeded,
		stderrors.As(err, &netErr) && netErr.Timeout():
		return errors.Timeout(op).WithCause(err)
	default:
		return errors.ConnectionFailed(serviceName, err)
	}
}

// statusError returns the classified error for a non-2xx response, or nil.
func statusError(statusCode int, body []byte) *errors.AppError {
	if statusCode >= 200 && statusCode < 300 {
		return nil
	}
	return errors.FromResponse(statusCode, body)
}

// IsTimeout checks if an error is a timeout error.
func IsTimeout(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Code == errors.ErrCodeTimeout
}

// IsTransport checks if an error happened before a response was obtained.
func IsTransport(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Kind == errors.KindTransport
}

// IsUnauthorized checks if the service rejected the request's session.
func IsUnauthorized(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return ok && appErr.Code == errors.ErrCodeUnauthorized
}

package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/authfront/errors"
)

// Operation statuses.
const (
	StatusSuccess  = "success"
	StatusFailed   = "failed"
	StatusRejected = "rejected"
	StatusBusy     = "busy"
)

// Operation tracks one traced and counted flow attempt.
type Operation struct {
	Flow      string
	FormID    string
	StartTime time.Time
	Metrics   *FlowMetrics

	span trace.Span
}

// StartOperation starts a span named spanName and records the flow start.
// If metrics is nil, metric recording is silently skipped.
func StartOperation(ctx context.Context, spanName, flow, formID string, metrics *FlowMetrics) (*Operation, context.Context) {
	ctx, span := StartSpan(ctx, spanName)
	span.SetAttributes(attribute.String(AttrFlow, flow))
	if formID != "" {
		span.SetAttributes(attribute.String(AttrFormID, formID))
	}

	op := &Operation{
		Flow:      flow,
		FormID:    formID,
		StartTime: time.Now(),
		Metrics:   metrics,
		span:      span,
	}
	if metrics != nil {
		metrics.RecordStart(ctx, flow)
	}
	return op, ctx
}

// SetUser tags the span with the authenticated user.
func (op *Operation) SetUser(userID string) {
	if userID != "" {
		op.span.SetAttributes(attribute.String(AttrUserID, userID))
	}
}

// End finishes the span and records the outcome.
func (op *Operation) End(ctx context.Context, status string, err error) {
	duration := op.Duration()

	if err != nil {
		op.span.RecordError(err)
		op.span.SetStatus(codes.Error, err.Error())
		op.span.SetAttributes(attribute.String(AttrErrorMessage, err.Error()))
		if appErr, ok := errors.AsAppError(err); ok {
			op.span.SetAttributes(
				attribute.String(AttrErrorCode, string(appErr.Code)),
				attribute.String(AttrErrorKind, string(appErr.Kind)),
			)
		}
	}

	op.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrDurationMs, duration.Milliseconds()),
	)
	op.span.End()

	if op.Metrics != nil {
		op.Metrics.RecordEnd(ctx, op.Flow, status, duration)
	}
}

// Duration returns the elapsed time since the operation started.
func (op *Operation) Duration() time.Duration {
	return time.Since(op.StartTime)
}

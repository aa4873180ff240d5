// Package observability provides OpenTelemetry tracing and metrics for the
// authentication flows.
//
// Setup (no-op providers stay installed when cfg.Enabled is false):
//
//	shutdown, err := observability.Init(ctx, cfg, "authfront", version.Version, "development")
//	defer shutdown(ctx)
//
// Tracking a flow:
//
//	metrics, _ := observability.NewFlowMetrics(observability.Meter(observability.InstrumentationName))
//	op, ctx := observability.StartOperation(ctx, observability.SpanFlowSubmit, "sign-in", formID, metrics)
//	defer op.End(ctx, observability.StatusSuccess, nil)
package observability

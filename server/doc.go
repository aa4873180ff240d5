// Package server hosts HTTP handlers on a Gin engine served over HTTP/1.1
// and h2c.
//
// The authfront CLI uses it to run the local identity service:
//
//	srv := server.New(cfg, log)
//	srv.ApplyMiddleware()
//	srv.RegisterDefaultEndpoints("identity-dev")
//	svc.Register(srv.GinEngine().Group(identitytest.BasePath))
//	_ = srv.Start(ctx)
//
// # Middleware
//
// Built-in middleware (server/middleware):
//
//   - Recovery: Panic recovery with structured logging
//   - RequestID: Request ID generation and propagation
//   - CORS: Cross-origin resource sharing configuration
//   - RequestLogger: Request logging with latency tracking
//
// # Endpoints
//
// Built-in endpoints (server/endpoint):
//
//   - /health: Liveness with optional checks
//   - /version: Build version information
package server

// Package logger provides structured logging for authfront using zerolog.
//
// It supports JSON and console output, log level configuration, and
// component-scoped loggers with structured fields.
//
// # Configuration
//
//	logging:
//	  level: "info"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("flow")
//	log.Info("submission finished", logger.Fields(logger.FieldFlow, "sign-in"))
//
// Credentials are never logged: callers pass the email at most.
package logger

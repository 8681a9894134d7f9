// Package logging provides structured logging for homectl.
//
// This package wraps zap logger with convenience functions for common
// logging patterns used throughout the client. It provides both general
// logging functions and specialized functions for API request logging.
//
// # Log Levels
//
// The package supports standard log levels:
//   - Debug: Detailed request/response tracing (request ids, timings)
//   - Info: Normal operations (sign-in, config load)
//   - Warn: Non-fatal issues (failed requests, session write failures)
//   - Error: Fatal issues (startup failures)
//
// # Silent by Default
//
// Homectl is an interactive terminal program, so logging is silent
// unless asked for: with no configured level and no HOMECTL_LOG_LEVEL
// environment variable, the package installs a nop logger and produces
// no output that could corrupt the TUI. When a level is set, logs go to
// stderr.
//
// # Structured Logging
//
// All log functions use structured fields for queryability:
//
//	logging.Info("signed in",
//	    zap.String("server", baseURL),
//	)
//
// # Specialized Logging
//
// The package provides request-lifecycle logging used by the API client:
//
//	logging.LogRequest(requestID, "POST", "/api/devices", true)
//	logging.LogResponse(requestID, 201, elapsed)
//	logging.LogFailure(requestID, "unreachable", message)
//
// Every dispatched request carries a generated request id, so a request,
// its response and any failure classification share a correlatable field.
//
// # Configuration
//
// Initialize logging at startup:
//
//	if err := logging.Initialize(cfg.Log.Level); err != nil {
//	    log.Fatal(err)
//	}
//	defer logging.Sync()
//
// # Thread Safety
//
// All logging functions are safe for concurrent use. The underlying zap
// logger handles synchronization automatically.
package logging

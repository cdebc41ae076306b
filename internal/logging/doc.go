// Package logging assembles structured slog loggers and formatting helpers used
// across reel.
//
// It owns the console and JSON handlers, centralizes level and output
// plumbing, and exposes context-aware helpers so HTTP handlers can tag log
// lines with the request correlation ID. The package also provides a no-op
// logger for tests and for library callers that pass no logger.
package logging

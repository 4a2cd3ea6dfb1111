// Package logging provides structured logging utilities shared by all
// verscan components.
//
// # Overview
//
// This package wraps the standard library slog package with project defaults:
// JSON output to stderr, environment-based log level configuration
// (LOG_LEVEL), module/version context injection, and source location tracking
// for debug logs.
//
// # Log Levels
//
// Supported log levels (case-insensitive):
//   - DEBUG: detailed diagnostic information with source location
//   - INFO: general informational messages (default)
//   - WARN/WARNING: potentially problematic situations
//   - ERROR: failures requiring attention
//
// # Usage
//
// Setting the default logger (recommended):
//
//	func main() {
//	    logging.SetDefaultStructuredLogger("verscan", version)
//
//	    slog.Info("audit started", "hosts", len(hosts))
//	    slog.Error("dispatch failed", "error", err, "host", host)
//	}
//
// Setting an explicit log level:
//
//	logging.SetDefaultStructuredLoggerWithLevel("verscan", version, "debug")
//
// # Environment Configuration
//
// The LOG_LEVEL environment variable controls verbosity when no explicit
// level is supplied:
//
//	LOG_LEVEL=debug verscan audit --hosts hosts.txt
package logging

// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.WrapWithContext(
//	    errors.ErrCodeTransport,
//	    "failed to dispatch probe",
//	    cause,
//	    map[string]interface{}{
//	        "host": host,
//	    },
//	)
package errors

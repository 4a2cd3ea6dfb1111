// Package version provides dotted-numeric version parsing and comparison
// for compliance checks.
//
// # Overview
//
// Versions are 4-component tuples (major, minor, build, revision), e.g.
// "2.9.7653.47581". Missing trailing components default to 0, so "2.9"
// compares as 2.9.0.0. Comparison is purely numeric, component by component:
// "2.10" is newer than "2.9", even though it sorts lower lexically. Lexical
// comparison of version strings is the principal correctness risk this
// package exists to remove.
//
// # The Unknown sentinel
//
// The constant Unknown marks a version that could not be determined from a
// source. It never parses and never satisfies a minimum; MeetsMinimum
// short-circuits on it without attempting numeric parsing.
//
// # Usage
//
// Compare a collected version against a required baseline:
//
//	if version.MeetsMinimum("2.9.7654.0", "2.9.7653.47581") {
//	    // compliant
//	}
//
// Parse a version string:
//
//	v, err := version.ParseVersion("2.9.7653.47581")
//	if err != nil {
//	    // Handle error
//	}
//
// # Error Handling
//
// ParseVersion returns specific errors for different failure modes:
//
//   - ErrEmptyVersion: input string is empty
//   - ErrTooManyComponents: more than 4 version components
//   - ErrNonNumeric: component contains non-numeric characters
//   - ErrNegativeComponent: component is a negative number
//
// MeetsMinimum fails closed: a malformed candidate is treated the same as
// Unknown. Only a malformed minimum is a caller error; validate it up front
// with ValidateMinimum.
package version

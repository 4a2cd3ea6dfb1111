// Package record defines the per-host version record: the reconciled,
// provenance-preserving result of collecting version evidence from every
// source on a host (package registry, product registry, CLI output, service
// and driver binaries).
//
// A Record keeps one named field per source; a field is always present and
// holds either a version string or the Unknown sentinel. The validation
// verdict is cached in ValidationPassed but always derivable from the other
// fields via Recompute. Records are populated in a single pass and treated
// as immutable once finalized.
package record

// Package clitool invokes the audited product's command-line version
// facility and parses its colon-delimited output.
//
// The output format is positional: a fixed Schema names which sub-component
// each line reports. Parsing is tolerant by construction, short or garbled
// output yields the Unknown sentinel for the affected positions rather than
// an error.
package clitool

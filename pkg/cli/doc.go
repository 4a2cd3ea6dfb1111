// Package cli implements the verscan command line interface: the audit
// command for fleet runs and the probe command for local host collection.
package cli

// Package probe collects version evidence from every source on the host it
// runs on and reconciles it into a single record.
//
// The probe queries the installer registry first: no matching package entry
// is terminal (NotInstalled), a single entry marks the install ambiguous.
// With the expected primary and auxiliary entries present, the remaining
// sources are collected in parallel: the product's own registry, the CLI
// version-report output, and the embedded version metadata of service and
// driver binaries. A fault in any one source downgrades only that field to
// the Unknown sentinel, Run never returns an error.
//
// Sub-collectors are created through the Factory interface so tests can
// inject fakes:
//
//	p := &probe.Probe{Factory: myFactory}
//	rec := p.Run(ctx, "host-1", "2.9.7653.47581")
//
// Subpackages by source: probe/pkgstore (installer registry), probe/clitool
// (CLI output), probe/binmeta (binary metadata).
package probe

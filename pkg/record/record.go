/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package record

import (
	"fmt"
	"sort"

	"github.com/fleetops/verscan/pkg/header"
	"github.com/fleetops/verscan/pkg/version"
)

// APIVersion is the schema version for host records and audit reports.
const APIVersion = "audit.verscan.dev/v1alpha1"

// InstallState describes whether the primary package was found on a host.
type InstallState string

const (
	// InstallStateInstalled indicates the primary package was found.
	InstallStateInstalled InstallState = "Installed"

	// InstallStateNotInstalled indicates no matching package entry was found.
	InstallStateNotInstalled InstallState = "NotInstalled"

	// InstallStateAmbiguous indicates exactly one of the two expected
	// cooperating sub-packages was found; the install cannot be resolved.
	InstallStateAmbiguous InstallState = "Ambiguous"

	// InstallStateUnknown indicates the install state could not be
	// determined, e.g. because the host was unreachable.
	InstallStateUnknown InstallState = "Unknown"
)

// Well-known version source names. SourceNames fixes their order; downstream
// tabular/CSV consumers depend on both the names and the order being stable.
const (
	SourcePackageRegistry  = "package-registry"
	SourceProductRegistry  = "product-registry"
	SourceCLIAppService    = "cli-app-service"
	SourceCLIAgentService  = "cli-agent-service"
	SourceAppServiceBinary = "app-service-binary"
	SourceAgentServiceBin  = "agent-service-binary"
	SourceVolumeDriver     = "volume-driver"
	SourceFilterDriver     = "filter-driver"
)

// SourceNames is the canonical ordering of version sources in a Record.
var SourceNames = []string{
	SourcePackageRegistry,
	SourceProductRegistry,
	SourceCLIAppService,
	SourceCLIAgentService,
	SourceAppServiceBinary,
	SourceAgentServiceBin,
	SourceVolumeDriver,
	SourceFilterDriver,
}

// Record is the reconciled version evidence for a single host. It is built
// in one pass by the probe (or synthesized by the fleet collector for hosts
// that could not be probed) and is not mutated afterwards.
type Record struct {
	header.Header `json:",inline" yaml:",inline"`

	// Host is the audited host's name or address.
	Host string `json:"host" yaml:"host"`

	// InstallCheck is the primary-package install state.
	InstallCheck InstallState `json:"installCheck" yaml:"installCheck"`

	// MinimumVersion is the required baseline the sources were compared against.
	MinimumVersion string `json:"minimumVersion" yaml:"minimumVersion"`

	// ValidationPassed is true iff every source has a known version and every
	// one meets the minimum. It is derivable from the other fields; Finalize
	// keeps it consistent.
	ValidationPassed bool `json:"validationPassed" yaml:"validationPassed"`

	// Sources maps source name to a version string or version.Unknown.
	// Every name in SourceNames is always present.
	Sources map[string]string `json:"sources" yaml:"sources"`
}

// New creates a Record for the given host with every source initialized to
// the Unknown sentinel and InstallCheck set to Unknown.
func New(host, minimum string) *Record {
	r := &Record{
		Host:           host,
		InstallCheck:   InstallStateUnknown,
		MinimumVersion: minimum,
		Sources:        make(map[string]string, len(SourceNames)),
	}
	r.Header.Init(header.KindHostRecord, APIVersion, "")
	for _, name := range SourceNames {
		r.Sources[name] = version.Unknown
	}
	return r
}

// SetSource records a version value for a named source. Empty values are
// stored as Unknown so no source field is ever absent.
func (r *Record) SetSource(name, value string) {
	if value == "" {
		value = version.Unknown
	}
	r.Sources[name] = value
}

// Source returns the value for a named source, or Unknown if the name was
// never registered.
func (r *Record) Source(name string) string {
	if v, ok := r.Sources[name]; ok {
		return v
	}
	return version.Unknown
}

// ForceUnknown resets every source to the Unknown sentinel. Used when the
// primary package is absent or the install is ambiguous: sub-source findings
// are not reported without a confirmed installation.
func (r *Record) ForceUnknown() {
	for name := range r.Sources {
		r.Sources[name] = version.Unknown
	}
}

// Recompute derives the validation verdict from the current fields:
// true iff the product is installed, no source is Unknown, and every source
// meets the minimum version.
func (r *Record) Recompute() bool {
	if r.InstallCheck != InstallStateInstalled {
		return false
	}
	for _, name := range SourceNames {
		if _, ok := r.Sources[name]; !ok {
			return false
		}
	}
	for _, v := range r.Sources {
		if v == version.Unknown {
			return false
		}
		if !version.MeetsMinimum(v, r.MinimumVersion) {
			return false
		}
	}
	return true
}

// Finalize applies the record invariants and caches the validation verdict.
// If the install check did not confirm the installation, all sources are
// forced to Unknown first. Call once when the probe completes.
func (r *Record) Finalize() {
	if r.InstallCheck != InstallStateInstalled {
		r.ForceUnknown()
	}
	r.ValidationPassed = r.Recompute()
}

// UnknownSources returns the names of sources whose value is Unknown,
// in canonical order.
func (r *Record) UnknownSources() []string {
	var names []string
	for _, name := range SourceNames {
		if r.Sources[name] == version.Unknown {
			names = append(names, name)
		}
	}
	return names
}

// String returns a short human-readable summary of the record.
func (r *Record) String() string {
	return fmt.Sprintf("%s: install=%s passed=%t unknown=%d",
		r.Host, r.InstallCheck, r.ValidationPassed, len(r.UnknownSources()))
}

// ExtraSourceNames returns any source names present in the record beyond the
// canonical set, sorted. These occur when a probe registers product-specific
// sub-components at runtime.
func (r *Record) ExtraSourceNames() []string {
	var extras []string
	for name := range r.Sources {
		if !isCanonical(name) {
			extras = append(extras, name)
		}
	}
	sort.Strings(extras)
	return extras
}

func isCanonical(name string) bool {
	for _, n := range SourceNames {
		if n == name {
			return true
		}
	}
	return false
}

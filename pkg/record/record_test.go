package record

import (
	"testing"

	"github.com/fleetops/verscan/pkg/header"
	"github.com/fleetops/verscan/pkg/version"
)

const minimum = "2.9.7653.47581"

func allSourcesAt(r *Record, value string) {
	for _, name := range SourceNames {
		r.SetSource(name, value)
	}
}

func TestNewInitializesAllSources(t *testing.T) {
	r := New("host-1", minimum)

	if r.Host != "host-1" {
		t.Errorf("expected host-1, got %s", r.Host)
	}
	if r.InstallCheck != InstallStateUnknown {
		t.Errorf("expected Unknown install state, got %s", r.InstallCheck)
	}
	if r.MinimumVersion != minimum {
		t.Errorf("expected minimum %s, got %s", minimum, r.MinimumVersion)
	}
	if r.Kind != header.KindHostRecord {
		t.Errorf("expected kind %s, got %s", header.KindHostRecord, r.Kind)
	}
	if len(r.Sources) != len(SourceNames) {
		t.Fatalf("expected %d sources, got %d", len(SourceNames), len(r.Sources))
	}
	for _, name := range SourceNames {
		if r.Sources[name] != version.Unknown {
			t.Errorf("source %s: expected Unknown, got %s", name, r.Sources[name])
		}
	}
}

func TestFinalizeAllSourcesMeetMinimum(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateInstalled
	allSourcesAt(r, "2.9.7653.47581")
	r.Finalize()

	if !r.ValidationPassed {
		t.Error("expected validation to pass when all sources meet minimum")
	}
	if r.ValidationPassed != r.Recompute() {
		t.Error("cached verdict inconsistent with recomputation")
	}
}

func TestFinalizeOneUnknownFails(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateInstalled
	allSourcesAt(r, "2.10.0.0")
	r.SetSource(SourceVolumeDriver, version.Unknown)
	r.Finalize()

	if r.ValidationPassed {
		t.Error("expected validation to fail with one Unknown source")
	}
	unknown := r.UnknownSources()
	if len(unknown) != 1 || unknown[0] != SourceVolumeDriver {
		t.Errorf("expected [%s], got %v", SourceVolumeDriver, unknown)
	}
}

func TestFinalizeBelowMinimumFails(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateInstalled
	allSourcesAt(r, "2.10.0.0")
	r.SetSource(SourceFilterDriver, "2.9.0.0")
	r.Finalize()

	if r.ValidationPassed {
		t.Error("expected validation to fail with one source below minimum")
	}
}

func TestFinalizeNotInstalledForcesUnknown(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateNotInstalled
	allSourcesAt(r, "2.10.0.0") // collected values must be erased
	r.Finalize()

	if r.ValidationPassed {
		t.Error("expected validation to fail when not installed")
	}
	for _, name := range SourceNames {
		if r.Sources[name] != version.Unknown {
			t.Errorf("source %s: expected forced Unknown, got %s", name, r.Sources[name])
		}
	}
}

func TestFinalizeAmbiguousForcesUnknown(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateAmbiguous
	allSourcesAt(r, "2.10.0.0")
	r.Finalize()

	if r.ValidationPassed {
		t.Error("expected validation to fail for ambiguous install")
	}
	if len(r.UnknownSources()) != len(SourceNames) {
		t.Error("expected every source forced to Unknown")
	}
}

func TestSetSourceEmptyBecomesUnknown(t *testing.T) {
	r := New("host-1", minimum)
	r.SetSource(SourceProductRegistry, "")
	if r.Source(SourceProductRegistry) != version.Unknown {
		t.Error("expected empty value stored as Unknown")
	}
}

func TestSourceUnregisteredName(t *testing.T) {
	r := New("host-1", minimum)
	if r.Source("no-such-source") != version.Unknown {
		t.Error("expected Unknown for unregistered source name")
	}
}

func TestExtraSourceNames(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateInstalled
	allSourcesAt(r, "2.10.0.0")
	r.SetSource("cli-extra-component", "2.10.0.0")
	r.Finalize()

	extras := r.ExtraSourceNames()
	if len(extras) != 1 || extras[0] != "cli-extra-component" {
		t.Errorf("expected [cli-extra-component], got %v", extras)
	}
	if !r.ValidationPassed {
		t.Error("expected extra compliant source not to fail validation")
	}

	// an extra Unknown source must fail validation
	r.SetSource("cli-extra-component", version.Unknown)
	r.Finalize()
	if r.ValidationPassed {
		t.Error("expected extra Unknown source to fail validation")
	}
}

func TestRecomputeConsistency(t *testing.T) {
	r := New("host-1", minimum)
	r.InstallCheck = InstallStateInstalled
	allSourcesAt(r, "2.9.7653.47581")
	r.Finalize()

	// mutating a source after finalize makes the cache stale until recomputed
	r.SetSource(SourcePackageRegistry, "1.0.0.0")
	if r.Recompute() {
		t.Error("expected recompute to fail after downgrade")
	}
	r.Finalize()
	if r.ValidationPassed {
		t.Error("expected finalize to refresh the cached verdict")
	}
}

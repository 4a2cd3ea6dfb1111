package oci

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOutputTargetLocalPath(t *testing.T) {
	ref, err := ParseOutputTarget("/tmp/audit.json")
	require.NoError(t, err)
	assert.False(t, ref.IsOCI)
	assert.Equal(t, "/tmp/audit.json", ref.LocalPath)
	assert.Equal(t, "/tmp/audit.json", ref.String())
	assert.Empty(t, ref.ImageReference())
}

func TestParseOutputTargetOCI(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		registry   string
		repository string
		tag        string
	}{
		{
			name:       "full reference",
			target:     "oci://ghcr.io/fleetops/audits:2026-08",
			registry:   "ghcr.io",
			repository: "fleetops/audits",
			tag:        "2026-08",
		},
		{
			name:       "no tag",
			target:     "oci://ghcr.io/fleetops/audits",
			registry:   "ghcr.io",
			repository: "fleetops/audits",
			tag:        "",
		},
		{
			name:       "registry with port",
			target:     "oci://localhost:5000/audits:latest",
			registry:   "localhost:5000",
			repository: "audits",
			tag:        "latest",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ref, err := ParseOutputTarget(tt.target)
			require.NoError(t, err)
			assert.True(t, ref.IsOCI)
			assert.Equal(t, tt.registry, ref.Registry)
			assert.Equal(t, tt.repository, ref.Repository)
			assert.Equal(t, tt.tag, ref.Tag)
		})
	}
}

func TestParseOutputTargetInvalid(t *testing.T) {
	_, err := ParseOutputTarget("oci://not a valid ref!!")
	assert.Error(t, err)
}

func TestReferenceString(t *testing.T) {
	ref := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "fleetops/audits", Tag: "v1"}
	assert.Equal(t, "oci://ghcr.io/fleetops/audits:v1", ref.String())
	assert.Equal(t, "ghcr.io/fleetops/audits:v1", ref.ImageReference())

	ref.Tag = ""
	assert.Equal(t, "oci://ghcr.io/fleetops/audits", ref.String())
	assert.Equal(t, "ghcr.io/fleetops/audits", ref.ImageReference())
}

func TestWithTag(t *testing.T) {
	ref := &Reference{IsOCI: true, Registry: "ghcr.io", Repository: "fleetops/audits"}
	tagged := ref.WithTag("v2")
	assert.Equal(t, "v2", tagged.Tag)
	assert.Empty(t, ref.Tag, "original must be unchanged")

	local := &Reference{LocalPath: "/tmp/out"}
	assert.Same(t, local, local.WithTag("v2"))
}

func TestPushReportRequiresTag(t *testing.T) {
	_, err := PushReport(t.Context(), []byte("{}"), PushOptions{
		Registry:   "ghcr.io",
		Repository: "fleetops/audits",
	})
	assert.Error(t, err)
}

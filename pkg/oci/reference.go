/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"fmt"
	"strings"

	"github.com/distribution/reference"

	apperrors "github.com/fleetops/verscan/pkg/errors"
)

// URIScheme marks an output target as an OCI registry reference,
// e.g. "oci://ghcr.io/org/audits:2026-08".
const URIScheme = "oci://"

// Reference is a parsed output target: either an OCI registry reference or a
// local file path.
type Reference struct {
	// IsOCI indicates an OCI registry reference rather than a local path.
	IsOCI bool

	// Registry is the registry host, e.g. "ghcr.io". OCI only.
	Registry string

	// Repository is the repository path, e.g. "fleetops/audits". OCI only.
	Repository string

	// Tag is the artifact tag. Empty means the caller applies a default.
	Tag string

	// LocalPath is the output file path for non-OCI targets.
	LocalPath string
}

// ParseOutputTarget parses an output target string. Targets with the oci://
// scheme are validated as image references; anything else is a local path.
func ParseOutputTarget(target string) (*Reference, error) {
	if !strings.HasPrefix(target, URIScheme) {
		return &Reference{LocalPath: target}, nil
	}

	ref, err := reference.ParseNormalizedNamed(strings.TrimPrefix(target, URIScheme))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrCodeInvalidRequest, "invalid OCI reference", err)
	}

	var tag string
	if tagged, ok := ref.(reference.Tagged); ok {
		tag = tagged.Tag()
	}

	return &Reference{
		IsOCI:      true,
		Registry:   reference.Domain(ref),
		Repository: reference.Path(ref),
		Tag:        tag,
	}, nil
}

// String returns the full reference string, with the oci:// scheme for
// registry targets.
func (r *Reference) String() string {
	if !r.IsOCI {
		return r.LocalPath
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s%s/%s", URIScheme, r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s%s/%s:%s", URIScheme, r.Registry, r.Repository, r.Tag)
}

// ImageReference returns the Docker-style reference without the scheme,
// or an empty string for local targets.
func (r *Reference) ImageReference() string {
	if !r.IsOCI {
		return ""
	}
	if r.Tag == "" {
		return fmt.Sprintf("%s/%s", r.Registry, r.Repository)
	}
	return fmt.Sprintf("%s/%s:%s", r.Registry, r.Repository, r.Tag)
}

// WithTag returns a copy of the reference with the given tag. Local
// references are returned unchanged.
func (r *Reference) WithTag(tag string) *Reference {
	if !r.IsOCI {
		return r
	}
	return &Reference{
		IsOCI:      true,
		Registry:   r.Registry,
		Repository: r.Repository,
		Tag:        tag,
	}
}

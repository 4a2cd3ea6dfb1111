/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package oci

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/distribution/reference"
	ociv1 "github.com/opencontainers/image-spec/specs-go/v1"
	oras "oras.land/oras-go/v2"
	"oras.land/oras-go/v2/content/file"
	"oras.land/oras-go/v2/registry/remote"
	"oras.land/oras-go/v2/registry/remote/auth"
	"oras.land/oras-go/v2/registry/remote/credentials"
)

// ArtifactType is the media type for verscan audit report artifacts.
const ArtifactType = "application/vnd.verscan.audit-report"

// reportFileName is the layer file name inside the artifact.
const reportFileName = "report.json"

// PushOptions configures the report push.
type PushOptions struct {
	// Registry is the OCI registry host (e.g. "ghcr.io", "localhost:5000").
	Registry string

	// Repository is the repository path (e.g. "fleetops/audits").
	Repository string

	// Tag is the artifact tag.
	Tag string

	// PlainHTTP uses HTTP instead of HTTPS for the registry connection.
	PlainHTTP bool

	// InsecureTLS skips TLS certificate verification.
	InsecureTLS bool

	// Annotations are additional manifest annotations.
	Annotations map[string]string
}

// PushResult describes a successfully pushed artifact.
type PushResult struct {
	// Digest is the SHA256 digest of the pushed manifest.
	Digest string

	// Reference is the full image reference (registry/repository:tag).
	Reference string
}

// PushReport publishes a serialized audit report to an OCI registry using
// ORAS, as a single-layer artifact tagged with opts.Tag.
func PushReport(ctx context.Context, reportJSON []byte, opts PushOptions) (*PushResult, error) {
	if opts.Tag == "" {
		return nil, fmt.Errorf("tag is required to push an audit report")
	}

	refString := fmt.Sprintf("%s/%s:%s", opts.Registry, opts.Repository, opts.Tag)
	if _, err := reference.ParseNormalizedNamed(refString); err != nil {
		return nil, fmt.Errorf("invalid image reference %q: %w", refString, err)
	}

	// stage the report in a temp dir so the file store has a stable root
	dir, err := os.MkdirTemp("", "verscan-push-*")
	if err != nil {
		return nil, fmt.Errorf("failed to create staging directory: %w", err)
	}
	defer os.RemoveAll(dir)

	reportPath := filepath.Join(dir, reportFileName)
	if err := os.WriteFile(reportPath, reportJSON, 0o600); err != nil {
		return nil, fmt.Errorf("failed to stage report: %w", err)
	}

	fs, err := file.New(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to create file store: %w", err)
	}
	defer func() { _ = fs.Close() }()
	fs.TarReproducible = true

	layerDesc, err := fs.Add(ctx, reportFileName, "application/json", reportPath)
	if err != nil {
		return nil, fmt.Errorf("failed to add report to store: %w", err)
	}

	packOpts := oras.PackManifestOptions{
		Layers: []ociv1.Descriptor{layerDesc},
	}
	if opts.Annotations != nil {
		packOpts.ManifestAnnotations = opts.Annotations
	}

	manifestDesc, err := oras.PackManifest(ctx, fs, oras.PackManifestVersion1_1, ArtifactType, packOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to pack manifest: %w", err)
	}

	if err := fs.Tag(ctx, manifestDesc, opts.Tag); err != nil {
		return nil, fmt.Errorf("failed to tag manifest in local store: %w", err)
	}

	repo, err := remote.NewRepository(fmt.Sprintf("%s/%s", opts.Registry, opts.Repository))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize remote repository: %w", err)
	}
	repo.PlainHTTP = opts.PlainHTTP
	repo.Client = newAuthClient(opts.PlainHTTP, opts.InsecureTLS)

	desc, err := oras.Copy(ctx, fs, opts.Tag, repo, opts.Tag, oras.DefaultCopyOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to push artifact to registry: %w", err)
	}

	slog.Info("audit report pushed",
		slog.String("reference", refString),
		slog.String("digest", desc.Digest.String()),
	)

	return &PushResult{
		Digest:    desc.Digest.String(),
		Reference: refString,
	}, nil
}

// newAuthClient creates an HTTP client with optional TLS configuration and
// Docker credential support.
func newAuthClient(plainHTTP, insecureTLS bool) *auth.Client {
	credStore, _ := credentials.NewStoreFromDocker(credentials.StoreOptions{})

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !plainHTTP && insecureTLS {
		if transport.TLSClientConfig == nil {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec
		} else {
			transport.TLSClientConfig.InsecureSkipVerify = true //nolint:gosec
		}
	}

	return &auth.Client{
		Client:     &http.Client{Transport: transport},
		Cache:      auth.NewCache(),
		Credential: credentials.Credential(credStore),
	}
}

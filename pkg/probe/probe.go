/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/

package probe

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/fleetops/verscan/pkg/probe/clitool"
	"github.com/fleetops/verscan/pkg/probe/pkgstore"
	"github.com/fleetops/verscan/pkg/record"

	"golang.org/x/sync/errgroup"
)

// Defaults for hosts provisioned by the standard installer.
const (
	DefaultProduct = "Acme Sync"
	DefaultCLIPath = "/usr/bin/acme-sync"
)

// Probe collects version evidence from every source on the host it runs on
// and reconciles it into a single record. The zero value probes the standard
// install layout with production collectors.
type Probe struct {
	// Product is the display name matched against installer registry entries.
	Product string

	// Version is the tool version recorded in the result header.
	Version string

	// CLIPath and CLIArgs invoke the product's version-report facility.
	CLIPath string
	CLIArgs []string

	// CLISchema names the sub-components in the CLI output, by line position.
	CLISchema clitool.Schema

	// ServiceUnits maps source names to the systemd units whose binaries
	// carry embedded version metadata.
	ServiceUnits map[string]string

	// DriverPaths maps source names to driver files on disk.
	DriverPaths map[string]string

	// Factory creates the sub-collectors. If nil, the default factory is used.
	Factory Factory
}

func (p *Probe) applyDefaults() {
	if p.Product == "" {
		p.Product = DefaultProduct
	}
	if p.CLIPath == "" {
		p.CLIPath = DefaultCLIPath
	}
	if p.CLIArgs == nil {
		p.CLIArgs = []string{"version"}
	}
	if p.CLISchema == nil {
		p.CLISchema = clitool.Schema{
			record.SourceCLIAppService,
			record.SourceCLIAgentService,
		}
	}
	if p.ServiceUnits == nil {
		p.ServiceUnits = map[string]string{
			record.SourceAppServiceBinary: "acme-sync-app.service",
			record.SourceAgentServiceBin:  "acme-sync-agent.service",
		}
	}
	if p.DriverPaths == nil {
		p.DriverPaths = map[string]string{
			record.SourceVolumeDriver: "/lib/modules/acme-sync/volume.ko",
			record.SourceFilterDriver: "/lib/modules/acme-sync/filter.ko",
		}
	}
	if p.Factory == nil {
		p.Factory = NewDefaultFactory()
	}
}

// Run probes the host and returns its version record. It never returns an
// error: sub-source faults downgrade the affected fields to Unknown, and an
// absent or ambiguous installation short-circuits to a terminal record. The
// host identifier is stamped into the record as given, the probe itself reads
// nothing from ambient host identity.
func (p *Probe) Run(ctx context.Context, host, minimum string) *record.Record {
	p.applyDefaults()

	start := time.Now()
	defer func() {
		probeDuration.Observe(time.Since(start).Seconds())
	}()

	r := record.New(host, minimum)
	if p.Version != "" {
		r.Metadata["version"] = p.Version
	}

	entries, err := p.Factory.CreatePackageStore().Entries(ctx)
	if err != nil {
		slog.Warn("installer registry query failed",
			slog.String("host", host),
			slog.String("error", err.Error()),
		)
		probeTotal.WithLabelValues("unknown").Inc()
		r.Finalize()
		return r
	}

	matches := pkgstore.Match(entries, p.Product)
	switch len(matches) {
	case 0:
		slog.Info("product not installed",
			slog.String("host", host),
			slog.String("product", p.Product),
		)
		r.InstallCheck = record.InstallStateNotInstalled
		probeTotal.WithLabelValues("not_installed").Inc()
		r.Finalize()
		return r
	case 1:
		// the product registers a primary and an auxiliary sub-package;
		// seeing only one means the install cannot be trusted
		slog.Warn("ambiguous installation, single package entry found",
			slog.String("host", host),
			slog.String("entry", matches[0].DisplayName),
		)
		r.InstallCheck = record.InstallStateAmbiguous
		probeTotal.WithLabelValues("ambiguous").Inc()
		r.Finalize()
		return r
	}

	r.InstallCheck = record.InstallStateInstalled
	primary, _ := pkgstore.Primary(matches)
	r.SetSource(record.SourcePackageRegistry, primary.Version)

	var mu sync.Mutex
	g, gctx := errgroup.WithContext(ctx)

	// Product registry version
	g.Go(func() error {
		defer observeSource(record.SourceProductRegistry, time.Now())
		v, err := p.Factory.CreateProductRegistry().Version(gctx)
		if err != nil {
			downgrade(host, record.SourceProductRegistry, err)
			return nil
		}
		mu.Lock()
		r.SetSource(record.SourceProductRegistry, v)
		mu.Unlock()
		return nil
	})

	// CLI-reported sub-component versions
	g.Go(func() error {
		defer observeSource("cli", time.Now())
		out, err := p.Factory.CreateCLIRunner().Output(gctx, p.CLIPath, p.CLIArgs...)
		if err != nil {
			for _, name := range p.CLISchema {
				downgrade(host, name, err)
			}
			return nil
		}
		vals := p.CLISchema.Parse(out)
		mu.Lock()
		for name, v := range vals {
			r.SetSource(name, v)
		}
		mu.Unlock()
		return nil
	})

	// Service binary versions, unit resolved to its binary first
	reader := p.Factory.CreateBinaryReader()
	resolver := p.Factory.CreateUnitResolver()
	for name, unit := range p.ServiceUnits {
		g.Go(func() error {
			defer observeSource(name, time.Now())
			path, err := resolver.BinaryPath(gctx, unit)
			if err != nil {
				downgrade(host, name, err)
				return nil
			}
			v, err := reader.Version(gctx, path)
			if err != nil {
				downgrade(host, name, err)
				return nil
			}
			mu.Lock()
			r.SetSource(name, v)
			mu.Unlock()
			return nil
		})
	}

	// Driver binary versions
	for name, path := range p.DriverPaths {
		g.Go(func() error {
			defer observeSource(name, time.Now())
			v, err := reader.Version(gctx, path)
			if err != nil {
				downgrade(host, name, err)
				return nil
			}
			mu.Lock()
			r.SetSource(name, v)
			mu.Unlock()
			return nil
		})
	}

	// collectors never return errors, they downgrade instead
	_ = g.Wait()

	r.Finalize()
	probeTotal.WithLabelValues("installed").Inc()
	probeUnknownSources.Set(float64(len(r.UnknownSources())))

	slog.Debug("probe complete",
		slog.String("host", host),
		slog.Bool("passed", r.ValidationPassed),
		slog.Int("unknown_sources", len(r.UnknownSources())),
	)
	return r
}

// downgrade logs a sub-source fault. The affected field stays Unknown; a
// single failed source must never abort the probe.
func downgrade(host, source string, err error) {
	slog.Warn("version source downgraded to Unknown",
		slog.String("host", host),
		slog.String("source", source),
		slog.String("error", err.Error()),
	)
	probeSourceFailures.WithLabelValues(source).Inc()
}

func observeSource(source string, start time.Time) {
	probeSourceDuration.WithLabelValues(source).Observe(time.Since(start).Seconds())
}

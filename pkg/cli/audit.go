/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/verscan/pkg/fleet"
	"github.com/fleetops/verscan/pkg/inventory"
	"github.com/fleetops/verscan/pkg/oci"
	"github.com/fleetops/verscan/pkg/serializer"
	"github.com/fleetops/verscan/pkg/transport"
)

func auditCmd() *cli.Command {
	return &cli.Command{
		Name:                  "audit",
		EnableShellCompletion: true,
		Usage:                 "Audit a fleet of hosts against a minimum product version",
		Description: `Audit whether every host in the fleet runs at least the required version
of the managed product. Produces one record per host, in input order, plus
a batch summary. A host that cannot be reached or probed is reported with
every version field Unknown and a failed validation rather than dropped.

Hosts are taken from --host flags, a --hosts-file list, or the nodes of a
Kubernetes cluster (--k8s-nodes). With no host selection the local host is
audited in-process.

Remote hosts are probed by running the verscan binary over SSH, so it must
be installed on every target. Use --local to force in-process probing.

# Examples

Audit two hosts over SSH:
  verscan audit --minimum 2.9.7653.47581 \
    --host 10.0.0.4 --host 10.0.0.5 \
    --ssh-user ops --ssh-key ~/.ssh/id_ed25519

Audit cluster nodes and publish the report as an OCI artifact:
  verscan audit --minimum 2.9.7653.47581 --k8s-nodes \
    --ssh-user ops --ssh-key ~/.ssh/id_ed25519 \
    --output oci://ghcr.io/fleetops/audits:2026-08

Audit the local host only:
  verscan audit --minimum 2.9.7653.47581 --local --format table`,
		Flags: []cli.Flag{
			minimumFlag,
			&cli.StringSliceFlag{
				Name:  "host",
				Usage: "Host to audit (can be repeated)",
			},
			&cli.StringFlag{
				Name:  "hosts-file",
				Usage: "Path to a host list file, one host per line, # comments skipped",
			},
			&cli.BoolFlag{
				Name:  "k8s-nodes",
				Usage: "Audit the nodes of the current Kubernetes cluster",
			},
			&cli.StringFlag{
				Name:  "label-selector",
				Usage: "Node label selector for --k8s-nodes (e.g. role=storage)",
			},
			&cli.BoolFlag{
				Name:  "local",
				Usage: "Probe in-process instead of dispatching over SSH",
			},
			&cli.StringFlag{
				Name:    "ssh-user",
				Sources: cli.EnvVars("VERSCAN_SSH_USER"),
				Value:   "root",
				Usage:   "SSH login user for remote probing",
			},
			&cli.StringFlag{
				Name:    "ssh-key",
				Sources: cli.EnvVars("VERSCAN_SSH_KEY"),
				Usage:   "Path to the SSH private key for remote probing",
			},
			&cli.IntFlag{
				Name:  "ssh-port",
				Value: transport.DefaultSSHPort,
				Usage: "SSH port on the target hosts",
			},
			&cli.StringFlag{
				Name:  "remote-binary",
				Usage: "Path of the verscan binary on the target hosts (default: PATH lookup)",
			},
			&cli.IntFlag{
				Name:  "concurrency",
				Value: 1,
				Usage: "Number of hosts probed at once",
			},
			&cli.FloatFlag{
				Name:  "rate-limit",
				Usage: "Maximum host dispatches per second across all workers (0 = unlimited)",
			},
			&cli.DurationFlag{
				Name:  "host-timeout",
				Value: fleet.DefaultPerHostTimeout,
				Usage: "Timeout per host, reachability check included",
			},
			&cli.BoolFlag{
				Name:  "skip-on-transport-error",
				Usage: "Omit hosts whose dispatch fails instead of reporting them as Unknown",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Print per-host completion progress to stderr",
			},
			&cli.BoolFlag{
				Name:  "fail-on-violation",
				Usage: "Exit non-zero when any host fails validation",
			},
			&cli.BoolFlag{
				Name:  "plain-http",
				Usage: "Use HTTP for OCI registry output targets",
			},
			&cli.BoolFlag{
				Name:  "insecure-tls",
				Usage: "Skip TLS verification for OCI registry output targets",
			},
			outputFlag,
			formatFlag,
			kubeconfigFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			// Parse output format and target before doing any work
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}
			target, err := oci.ParseOutputTarget(cmd.String("output"))
			if err != nil {
				return fmt.Errorf("invalid output target: %w", err)
			}

			hosts, err := buildResolver(cmd).Resolve(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve audit hosts: %w", err)
			}

			executor, prober, err := buildTransport(cmd)
			if err != nil {
				return err
			}

			opts := []fleet.Option{
				fleet.WithVersion(version),
				fleet.WithConcurrency(int(cmd.Int("concurrency"))),
				fleet.WithPerHostTimeout(cmd.Duration("host-timeout")),
			}
			if rl := float64(cmd.Float("rate-limit")); rl > 0 {
				opts = append(opts, fleet.WithRateLimit(rl))
			}
			if cmd.Bool("skip-on-transport-error") {
				opts = append(opts, fleet.WithSkipOnTransportError())
			}
			if cmd.Bool("progress") {
				opts = append(opts, fleet.WithProgress(func(ev fleet.ProgressEvent) {
					fmt.Fprintf(os.Stderr, "[%d/%d] %s: %s\n", ev.Completed, ev.Total, ev.Host, ev.Outcome)
				}))
			}

			minimum := cmd.String("minimum")
			collector := fleet.New(executor, prober, opts...)
			records, err := collector.CollectAll(ctx, hosts, minimum)
			if err != nil {
				return fmt.Errorf("fleet collection failed: %w", err)
			}

			report := fleet.NewReport(version, minimum, records)

			if target.IsOCI {
				if err := pushReport(ctx, cmd, report, target); err != nil {
					return err
				}
			} else {
				ser := serializer.NewFileWriterOrStdout(outFormat, target.LocalPath)
				defer func() {
					if err := ser.Close(); err != nil {
						slog.Warn("failed to close serializer", "error", err)
					}
				}()
				if err := ser.Serialize(ctx, report); err != nil {
					return fmt.Errorf("failed to write report: %w", err)
				}
			}

			if cmd.Bool("fail-on-violation") && report.Summary.Failed > 0 {
				return cli.Exit(fmt.Sprintf("%d of %d hosts failed validation",
					report.Summary.Failed, report.Summary.Total), 2)
			}
			return nil
		},
	}
}

// buildResolver picks the host inventory source: cluster nodes, a host list
// file, or the host flags (the local host when none given).
func buildResolver(cmd *cli.Command) inventory.Resolver {
	switch {
	case cmd.Bool("k8s-nodes"):
		return &inventory.NodeResolver{
			Kubeconfig:    cmd.String("kubeconfig"),
			LabelSelector: cmd.String("label-selector"),
		}
	case cmd.String("hosts-file") != "":
		return &inventory.FileResolver{Path: cmd.String("hosts-file")}
	default:
		return inventory.Static(cmd.StringSlice("host"))
	}
}

// buildTransport wires the executor and reachability prober for the run.
func buildTransport(cmd *cli.Command) (transport.Executor, transport.Prober, error) {
	if cmd.Bool("local") {
		return &transport.LocalExecutor{}, transport.LocalProber{}, nil
	}

	keyPath := cmd.String("ssh-key")
	if keyPath == "" {
		return nil, nil, fmt.Errorf("--ssh-key is required for remote audits (or use --local)")
	}
	executor, err := transport.NewSSHExecutor(cmd.String("ssh-user"), keyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to configure SSH transport: %w", err)
	}
	port := int(cmd.Int("ssh-port"))
	executor.Port = port
	executor.Binary = cmd.String("remote-binary")

	return executor, &transport.TCPProber{Port: port}, nil
}

// pushReport publishes the report to an OCI registry. An untagged reference
// gets a UTC timestamp tag so repeated runs never overwrite each other.
func pushReport(ctx context.Context, cmd *cli.Command, report *fleet.Report, target *oci.Reference) error {
	payload, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	tag := target.Tag
	if tag == "" {
		tag = time.Now().UTC().Format("20060102-150405")
	}

	result, err := oci.PushReport(ctx, payload, oci.PushOptions{
		Registry:    target.Registry,
		Repository:  target.Repository,
		Tag:         tag,
		PlainHTTP:   cmd.Bool("plain-http"),
		InsecureTLS: cmd.Bool("insecure-tls"),
		Annotations: map[string]string{
			"dev.verscan.minimum-version": report.MinimumVersion,
			"dev.verscan.run-id":          report.Metadata["run-id"],
		},
	})
	if err != nil {
		return fmt.Errorf("failed to push report: %w", err)
	}

	fmt.Fprintf(cmd.Writer, "%s@%s\n", result.Reference, result.Digest)
	return nil
}

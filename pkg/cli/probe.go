/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/fleetops/verscan/pkg/probe"
	"github.com/fleetops/verscan/pkg/serializer"
)

func probeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "probe",
		EnableShellCompletion: true,
		Usage:                 "Collect the version record for the local host",
		Description: `Collect version evidence from every source on the local host and report
a single record: installer registry, product registry, product CLI,
service binaries, and driver files.

This is also the remote agent entrypoint: the audit command runs
"verscan probe --minimum <v> --format json" on each target over SSH and
decodes the output. The command exits zero even when validation fails;
the outcome is carried in the record, not the exit status.

# Examples

Probe with the standard install layout:
  verscan probe --minimum 2.9.7653.47581

Probe a relocated install:
  verscan probe --minimum 2.9.7653.47581 \
    --registry-dir /opt/installer/registry \
    --cli-path /opt/acme/bin/acme-sync`,
		Flags: []cli.Flag{
			minimumFlag,
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host identifier stamped into the record (default: local hostname)",
			},
			&cli.StringFlag{
				Name:  "product",
				Value: probe.DefaultProduct,
				Usage: "Product display name matched against installer registry entries",
			},
			&cli.StringFlag{
				Name:  "registry-dir",
				Usage: "Installer registry directory override",
			},
			&cli.StringFlag{
				Name:  "product-info",
				Usage: "Product info file override",
			},
			&cli.StringFlag{
				Name:  "cli-path",
				Value: probe.DefaultCLIPath,
				Usage: "Path of the product CLI binary",
			},
			outputFlag,
			formatFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat := serializer.Format(cmd.String("format"))
			if outFormat.IsUnknown() {
				return fmt.Errorf("unknown output format: %q", outFormat)
			}

			host := cmd.String("host")
			if host == "" {
				var err error
				host, err = os.Hostname()
				if err != nil {
					return fmt.Errorf("failed to resolve local hostname: %w", err)
				}
			}

			var factoryOpts []probe.FactoryOption
			if dir := cmd.String("registry-dir"); dir != "" {
				factoryOpts = append(factoryOpts, probe.WithRegistryDir(dir))
			}
			if path := cmd.String("product-info"); path != "" {
				factoryOpts = append(factoryOpts, probe.WithProductInfoPath(path))
			}

			p := &probe.Probe{
				Product: cmd.String("product"),
				Version: version,
				CLIPath: cmd.String("cli-path"),
				Factory: probe.NewDefaultFactory(factoryOpts...),
			}

			// the probe never fails, faults surface as Unknown fields
			rec := p.Run(ctx, host, cmd.String("minimum"))

			ser := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer func() {
				if err := ser.Close(); err != nil {
					slog.Warn("failed to close serializer", "error", err)
				}
			}()
			return ser.Serialize(ctx, rec)
		},
	}
}

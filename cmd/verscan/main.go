/*
Copyright © 2025 Verscan Authors
SPDX-License-Identifier: Apache-2.0
*/
package main

import (
	"github.com/fleetops/verscan/pkg/cli"
)

func main() {
	cli.Run()
}

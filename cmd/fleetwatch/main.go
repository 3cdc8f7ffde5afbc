// Command fleetwatch evaluates fleet compliance and manages notifications.
package main

import (
	"fmt"
	"os"

	"github.com/custodia-labs/fleetwatch/internal/adapters/driving/cli"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(wire)

	if err := cli.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

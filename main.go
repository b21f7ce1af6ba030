package main

import (
	"fmt"
	"os"

	"github.com/runnerr0/stridelog/internal/cli"
)

// version is overridden at build time via -ldflags.
var version = "0.3.0-dev"

func main() {
	if err := cli.Run(version); err != nil {
		fmt.Fprintf(os.Stderr, "stridelog: %v\n", err)
		os.Exit(1)
	}
}

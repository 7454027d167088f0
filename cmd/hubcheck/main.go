// Package main provides the CLI for the hubcheck forecast submission
// validator.
package main

import (
	"os"

	"github.com/metricslab/hubcheck/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

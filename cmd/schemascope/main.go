// Package main provides the CLI for the schemascope retrieval engine.
package main

import (
	"os"

	"github.com/leapstack-labs/schemascope/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

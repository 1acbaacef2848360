// Package main provides the leapcube CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/leapcube/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

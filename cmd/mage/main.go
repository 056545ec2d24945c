// Package main provides the mage CLI entry point.
package main

import (
	"os"

	"github.com/thunderstroke325/mage-ai/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

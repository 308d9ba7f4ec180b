// Package main is the salesdash command.
package main

import (
	"os"

	"github.com/leapstack-labs/salesdash/internal/cli"
)

// Set via -ldflags "-X main.version=... -X main.commit=... -X main.date=...".
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	if version != "" {
		cli.Version = version
	}
	if commit != "" {
		cli.GitCommit = commit
	}
	if date != "" {
		cli.BuildDate = date
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}

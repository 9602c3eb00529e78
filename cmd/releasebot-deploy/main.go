// Package main is the entry point for the releasebot-deploy CLI, which
// deploys release-bot instances to an OpenShift cluster.
package main

import (
	"fmt"
	"os"

	"github.com/shresthagrawal/release-bot/cmd/releasebot-deploy/commands"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)

	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

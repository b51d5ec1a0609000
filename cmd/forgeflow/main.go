// Package main is the single-binary entrypoint for forgeflow.
package main

import "github.com/forgeflow/forgeflow/internal/cli"

// version is set at build time via -ldflags.
var version = "dev"

func main() {
	cli.Execute(version)
}

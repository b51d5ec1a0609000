// Package cli implements the forgeflow command-line interface using Cobra.
// Each subcommand maps to a task or scheduling operation (add, list, plan, etc.).
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "forgeflow",
	Short: "forgeflow — Dependency-aware task scheduling",
	Long: `forgeflow plans work for you.
It profiles tasks, infers dependencies from their descriptions, and
produces an execution plan of parallel batches that respects resource limits.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. Called from main.go.
func Execute(version string) {
	rootCmd.Version = version

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

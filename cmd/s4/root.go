// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug output
	verbose bool

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "s4",
		Short: "Manage containerized seL4 build environments",
		Long: TitleStyle.Render("s4") + SubtitleStyle.Render(" - containerized seL4 build environments") + `

s4 checks out seL4 projects from manifest repositories into workspaces,
configures build directories for a chosen platform and architecture with
validated build options, runs the build inside the project's container
image, and boots the resulting images on machine-queue hardware.

` + SubtitleStyle.Render("Quick Start:") + `
  1. s4 init sel4test            Check out a workspace
  2. s4 configure tx2 aarch64 b  Configure a build directory
  3. s4 build                    Build inside the container
  4. s4 run                      Boot on machine-queue hardware`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(configureCmd)
	rootCmd.AddCommand(buildsCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(configCmd)
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// initLogging applies the verbosity flag before any command runs.
func initLogging() {
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
}

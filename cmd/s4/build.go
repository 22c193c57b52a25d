// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"s4-cli/internal/config"

	"github.com/spf13/cobra"
)

// buildCmd runs ninja for the current build directory inside the container.
var buildCmd = &cobra.Command{
	Use:   "build [ninja-args...]",
	Short: "Build the current build directory in the container",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		build, err := requireBuild(cfg)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		inv, err := buildInvocation(engine, build)
		if err != nil {
			return err
		}
		return inv.Command(cmd.Context(), "ninja", args...).Run()
	},
}

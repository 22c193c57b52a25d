// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"s4-cli/internal/config"
	"s4-cli/internal/container"
	"s4-cli/internal/workspace"

	"github.com/spf13/cobra"
)

// shellCmd starts an interactive shell inside the build container. Inside a
// build directory the workspace and build mounts are set up as for a build;
// elsewhere only the current directory is mounted.
var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Start an interactive shell in the build container",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		engine, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}

		var inv *container.Invocation
		if ctx, err := workspace.FindContext(); err == nil {
			if build, ok := ctx.(*workspace.Build); ok {
				if inv, err = buildInvocation(engine, build); err != nil {
					return err
				}
			}
		}
		if inv == nil {
			if inv, err = engine.Invocation(); err != nil {
				return err
			}
		}
		return inv.Command(cmd.Context(), "bash").Run()
	},
}

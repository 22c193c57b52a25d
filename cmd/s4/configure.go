// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"
	"s4-cli/internal/workspace"

	"github.com/spf13/cobra"
)

var configureSet []string

// configureCmd creates and generates a build directory inside the current
// workspace.
var configureCmd = &cobra.Command{
	Use:   "configure <platform[:variation]> <architecture> [directory]",
	Short: "Configure a build directory for a platform",
	Long: `Create a build directory for the chosen platform (optionally a platform
variation) and architecture, resolve the effective build options for the
workspace's project, and run the build generator inside the container.

The directory defaults to "build-<platform>-<architecture>" under the
workspace root. Options given with --set override the resolved values.`,
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		choice, err := config.ParseChoice(args[0])
		if err != nil {
			return err
		}
		arch, err := config.ParseArchitecture(args[1])
		if err != nil {
			return err
		}
		platform, err := cfg.Platform(choice.Platform)
		if err != nil {
			return err
		}
		if !platform.Supports(arch) {
			return fmt.Errorf("platform %s does not support architecture %s", choice.Platform, arch)
		}

		added, err := parseAssignments(configureSet)
		if err != nil {
			return err
		}

		ctx, err := workspace.FindContext()
		if err != nil {
			return err
		}
		ws := ctx.Workspace()

		dir := fmt.Sprintf("build-%s-%s", choice.Platform, arch)
		if len(args) > 2 {
			dir = args[2]
		}

		build, err := workspace.CreateBuild(cfg, ws, choice.Platform, choice.Variation, arch, added, dir)
		if err != nil {
			return err
		}

		engine, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := generateBuild(cmd.Context(), cfg, engine, build); err != nil {
			return err
		}

		fmt.Println(SuccessStyle.Render("Configured: ") + ValueStyle.Render(build.Root()))
		return nil
	},
}

func init() {
	configureCmd.Flags().StringArrayVar(&configureSet, "set", nil,
		"override a build option as flag=value (repeatable)")
}

// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"

	"github.com/spf13/cobra"
)

// setCmd edits build options of the current build directory in place.
var setCmd = &cobra.Command{
	Use:   "set <flag=value> ...",
	Short: "Change build options of the current build directory",
	Long: `Merge the given flag=value assignments into the current build's options,
validate the result against the flag catalog, persist it, and re-run the
build generator so the change takes effect.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		build, err := requireBuild(cfg)
		if err != nil {
			return err
		}

		edits, err := parseAssignments(args)
		if err != nil {
			return err
		}
		build.UpdateSetting(edits)

		engine, err := newEngine(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		if err := regenerateBuild(cmd.Context(), cfg, engine, build); err != nil {
			return err
		}

		fmt.Println(SuccessStyle.Render("Updated: ") + build.Setting().String())
		return nil
	},
}

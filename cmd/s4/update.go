// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"

	"github.com/spf13/cobra"
)

// updateCmd pulls the configured build-tools container image.
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update the build-tools container image",
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
		if err := engine.Pull(cmd.Context()); err != nil {
			return err
		}
		fmt.Println(SuccessStyle.Render("Updated: ") + ValueStyle.Render(engine.Image()))
		return nil
	},
}

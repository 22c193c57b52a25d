// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/workspace"

	"github.com/spf13/cobra"
)

// buildsCmd lists the build directories registered in the current workspace.
var buildsCmd = &cobra.Command{
	Use:   "builds",
	Short: "List build directories of the current workspace",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, err := workspace.FindContext()
		if err != nil {
			return err
		}
		ws := ctx.Workspace()

		builds, err := ws.Builds()
		if err != nil {
			return err
		}
		if len(builds) == 0 {
			fmt.Println(SubtitleStyle.Render("No build directories configured."))
			return nil
		}

		fmt.Println(TitleStyle.Render("Builds of ") + ValueStyle.Render(ws.Root()))
		for _, build := range builds {
			target := string(build.Platform())
			if build.Variation() != "" {
				target += ":" + string(build.Variation())
			}
			fmt.Printf("  %s  %s %s\n",
				ValueStyle.Render(build.Root()),
				target,
				SubtitleStyle.Render(string(build.Architecture())))
		}
		return nil
	},
}

// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"
	"s4-cli/internal/tools"
	"s4-cli/internal/workspace"

	"github.com/spf13/cobra"
)

// initCmd checks a project out into a new workspace directory.
var initCmd = &cobra.Command{
	Use:   "init <project> [directory]",
	Short: "Create a workspace and check out a project",
	Long: `Create a workspace directory for a known project, then initialise and
sync its manifest checkout with the repo tool. The target directory defaults
to the project name and must not exist or must be empty.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		projectId := config.ProjectId(args[0])
		project, err := cfg.Project(projectId)
		if err != nil {
			return err
		}

		dir := args[0]
		if len(args) > 1 {
			dir = args[1]
		}

		ws, err := workspace.Create(projectId, dir)
		if err != nil {
			return err
		}

		repo, err := tools.NewRepo(cfg.Defaults.RepoURL)
		if err != nil {
			return err
		}
		opts := tools.InitOptions{
			ManifestURL: cfg.Defaults.GitRepoURL(project.Repository),
			Branch:      cfg.Defaults.RepoBranch,
			Manifest:    cfg.Defaults.RepoManifest,
		}
		if err := repo.Init(cmd.Context(), ws.Root(), opts); err != nil {
			return err
		}
		if err := repo.Sync(cmd.Context(), ws.Root()); err != nil {
			return err
		}

		fmt.Println(SuccessStyle.Render("Workspace ready: ") + ValueStyle.Render(ws.Root()))
		return nil
	},
}

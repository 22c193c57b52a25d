// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"
	"s4-cli/internal/setting"

	"github.com/spf13/cobra"
)

// configCmd groups configuration inspection subcommands.
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the tool configuration",
}

// configShowCmd prints the effective merged configuration.
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective merged configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		fmt.Println(TitleStyle.Render("Defaults"))
		fmt.Printf("  git-server:    %s\n", ValueStyle.Render(cfg.Defaults.GitServer))
		fmt.Printf("  docker-image:  %s\n", ValueStyle.Render(cfg.Defaults.DockerImage))
		fmt.Printf("  repo-url:      %s\n", ValueStyle.Render(cfg.Defaults.RepoURL))
		if cfg.Defaults.RepoBranch != "" {
			fmt.Printf("  repo-branch:   %s\n", ValueStyle.Render(cfg.Defaults.RepoBranch))
		}
		if cfg.Defaults.RepoManifest != "" {
			fmt.Printf("  repo-manifest: %s\n", ValueStyle.Render(cfg.Defaults.RepoManifest))
		}
		fmt.Printf("  exit-phrase:   %s\n", ValueStyle.Render(cfg.Defaults.ExitPhrase))

		fmt.Println(TitleStyle.Render("Platforms"))
		for _, name := range sortedKeys(cfg.Platforms) {
			platform := cfg.Platforms[config.PlatformId(name)]
			archs := make([]string, 0, len(platform.Architectures))
			for _, arch := range platform.Architectures {
				archs = append(archs, string(arch))
			}
			line := "  " + ValueStyle.Render(name)
			for _, variation := range sortedKeys(platform.Variations) {
				line += " " + SubtitleStyle.Render(":"+variation)
			}
			fmt.Printf("%s  %v\n", line, archs)
		}

		fmt.Println(TitleStyle.Render("Projects"))
		for _, name := range sortedKeys(cfg.Projects) {
			project := cfg.Projects[config.ProjectId(name)]
			fmt.Printf("  %s  %s\n",
				ValueStyle.Render(name),
				SubtitleStyle.Render(project.Repository.String()))
		}

		fmt.Println(TitleStyle.Render("Flags"))
		for _, name := range sortedKeys(cfg.Flags) {
			fmt.Printf("  %s  %s\n",
				ValueStyle.Render(name),
				SubtitleStyle.Render(cfg.Flags[setting.FlagId(name)].Description))
		}
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
}

// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"fmt"

	"s4-cli/internal/config"
	"s4-cli/internal/machineq"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var runSystem string

// runCmd boots the current build's images on machine-queue hardware.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Boot the current build on machine-queue hardware",
	Long: `Select candidate machine-queue targets matching the build's platform and
variation (pools before individual systems) and try each in order until one
run succeeds. A specific target can be forced with --system.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		build, err := requireBuild(cfg)
		if err != nil {
			return err
		}
		project, err := cfg.Project(build.Project())
		if err != nil {
			return err
		}

		queue, err := machineq.New()
		if err != nil {
			return err
		}

		candidates := []string{runSystem}
		if runSystem == "" {
			candidates, err = queue.MatchSystem(cmd.Context(), build.Platform(), build.Variation())
			if err != nil {
				return err
			}
		}

		var files []string
		if build.Architecture().Family() == config.FamilyX86 {
			kernel, err := build.KernelImagePath()
			if err != nil {
				return err
			}
			files = append(files, kernel)
		}
		rootServer := project.RootServer
		if rootServer == "" {
			if rootServer, err = build.InferredRootServer(); err != nil {
				return err
			}
		}
		image, err := build.ImagePath(rootServer)
		if err != nil {
			return err
		}
		files = append(files, image)

		exitPhrase := project.ExitPhrase
		if exitPhrase == "" {
			exitPhrase = cfg.Defaults.ExitPhrase
		}

		for _, system := range candidates {
			err := queue.Run(cmd.Context(), machineq.RunOptions{
				ExitPhrase: exitPhrase,
				System:     system,
				Files:      files,
				Dir:        build.Root(),
			})
			if err == nil {
				return nil
			}
			log.Warn("run attempt failed", "system", system, "err", err)
		}
		return fmt.Errorf("could not run on any available system")
	},
}

func init() {
	runCmd.Flags().StringVarP(&runSystem, "system", "s", "",
		"run on a specific system or pool instead of matching")
}

// SPDX-License-Identifier: BSD-2-Clause

package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"s4-cli/internal/config"
	"s4-cli/internal/container"
	"s4-cli/internal/setting"
	"s4-cli/internal/workspace"
)

// cmakeCacheFile is the settings hint file passed to the generator from the
// source directory.
const cmakeCacheFile = "settings.cmake"

// parseAssignments turns "flag=value" arguments into a Setting. The tokens
// "true" and "false" become booleans, everything else is text.
func parseAssignments(args []string) (setting.Setting, error) {
	edits := setting.New()
	for _, arg := range args {
		id, value, found := strings.Cut(arg, "=")
		if !found || id == "" {
			return setting.Setting{}, fmt.Errorf("malformed assignment %q, expected flag=value", arg)
		}
		switch value {
		case "true":
			edits.SetBool(setting.FlagId(id), true)
		case "false":
			edits.SetBool(setting.FlagId(id), false)
		default:
			edits.SetText(setting.FlagId(id), value)
		}
	}
	return edits, nil
}

// requireBuild discovers the enclosing context and fails unless it is a
// build directory.
func requireBuild(cfg config.Config) (*workspace.Build, error) {
	ctx, err := workspace.FindContext()
	if err != nil {
		return nil, err
	}
	build, ok := ctx.(*workspace.Build)
	if !ok {
		return nil, fmt.Errorf("not inside a build directory, configure one first")
	}
	if _, err := cfg.Project(build.Project()); err != nil {
		return nil, err
	}
	return build, nil
}

// newEngine detects the container engine bound to the configured image.
func newEngine(ctx context.Context, cfg config.Config) (*container.Engine, error) {
	return container.New(ctx, cfg.Defaults.DockerImage)
}

// buildInvocation prepares a container invocation with the workspace and
// build directories mounted at their well-known paths and the build
// directory as working directory.
func buildInvocation(engine *container.Engine, build *workspace.Build) (*container.Invocation, error) {
	inv, err := engine.Invocation()
	if err != nil {
		return nil, err
	}
	if _, err := inv.Mount(container.WorkspaceDir, build.WorkspaceRoot()); err != nil {
		return nil, err
	}
	if _, err := inv.Mount(container.BuildDir, build.Root()); err != nil {
		return nil, err
	}
	return inv.WorkDir(container.BuildDir), nil
}

// cmakeArgs renders the build's setting as -D generator arguments. Flags
// scraped from the workspace's easy-settings hint file extend the catalog so
// project-local options map to their variables too; catalog definitions win
// on collision.
func cmakeArgs(cfg config.Config, build *workspace.Build) ([]string, error) {
	scraped, err := build.Workspace().EasySettings()
	if err != nil {
		return nil, err
	}

	flags := make(map[setting.FlagId]config.Flag, len(cfg.Flags)+len(scraped))
	for id, flag := range scraped {
		flags[id] = flag
	}
	for id, flag := range cfg.Flags {
		flags[id] = flag
	}

	s := build.Setting()
	var args []string
	for _, id := range s.Ids() {
		flag, ok := flags[id]
		if !ok {
			continue
		}
		if arg := flag.CMakeArg(s.Flag(id)); arg != "" {
			args = append(args, arg)
		}
	}
	return args, nil
}

// checkAndSave validates the build's setting against the catalog and
// persists the build marker.
func checkAndSave(cfg config.Config, build *workspace.Build) error {
	if err := cfg.CheckSetting(build.Setting()); err != nil {
		return err
	}
	return build.Save()
}

// generateBuild runs the cmake generator for a freshly configured build
// directory inside the container.
func generateBuild(ctx context.Context, cfg config.Config, engine *container.Engine, build *workspace.Build) error {
	if err := checkAndSave(cfg, build); err != nil {
		return err
	}

	project, err := cfg.Project(build.Project())
	if err != nil {
		return err
	}
	sourceDir := project.SourceDirectory
	if sourceDir == "" {
		if sourceDir, err = build.Workspace().InferredSource(); err != nil {
			return err
		}
	}
	sourceDir = container.WorkspaceDir + "/" + sourceDir

	args, err := cmakeArgs(cfg, build)
	if err != nil {
		return err
	}
	args = append(args,
		"-G", "Ninja",
		"-DSEL4_CACHE_DIR="+container.WorkspaceDir+"/"+workspace.CacheSubdir,
		"-B", container.BuildDir,
		"-S", sourceDir,
		"-C", sourceDir+"/"+cmakeCacheFile,
	)

	inv, err := buildInvocation(engine, build)
	if err != nil {
		return err
	}
	return inv.Command(ctx, "cmake", args...).Run()
}

// regenerateBuild re-runs the generator over an existing build directory
// after in-place setting edits.
func regenerateBuild(ctx context.Context, cfg config.Config, engine *container.Engine, build *workspace.Build) error {
	if err := checkAndSave(cfg, build); err != nil {
		return err
	}

	args, err := cmakeArgs(cfg, build)
	if err != nil {
		return err
	}
	args = append(args, container.BuildDir)

	inv, err := buildInvocation(engine, build)
	if err != nil {
		return err
	}
	return inv.Command(ctx, "cmake", args...).Run()
}

// sortedKeys returns map keys as sorted strings, for stable listings.
func sortedKeys[K ~string, V any](m map[K]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, string(k))
	}
	sort.Strings(keys)
	return keys
}

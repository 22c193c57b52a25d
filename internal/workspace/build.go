// SPDX-License-Identifier: BSD-2-Clause

package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"s4-cli/internal/config"
	"s4-cli/internal/setting"

	"github.com/charmbracelet/log"
)

// Build is a loaded build context: a configured build directory together
// with the workspace that owns it.
type Build struct {
	workspace *Workspace
	root      string
	// workspaceRel is the recorded relative path from the build root back
	// to the workspace root.
	workspaceRel string
	platform     config.PlatformId
	variation    config.VariationId
	architecture config.Architecture
	setting      setting.Setting
}

// CreateBuild configures a new build directory at path. The effective
// setting is resolved from the configuration for the workspace's project and
// the chosen platform/variation/architecture, then added is merged on top so
// caller overrides win. The build marker and the updated workspace marker
// are two independent writes: a crash between them leaves the workspace
// unaware of the new build, and nothing rolls the first write back.
func CreateBuild(cfg config.Config, ws *Workspace, platform config.PlatformId, variation config.VariationId, arch config.Architecture, added setting.Setting, path string) (*Build, error) {
	if err := prepareDir(path); err != nil {
		return nil, err
	}

	resolved, err := cfg.PlatformSetting(ws.Project(), platform, variation, arch)
	if err != nil {
		return nil, err
	}
	resolved.Merge(added)

	reverse, err := relativePath(path, ws.Root())
	if err != nil {
		return nil, fmt.Errorf("locate workspace from build directory: %w", err)
	}
	forward, err := relativePath(ws.Root(), path)
	if err != nil {
		return nil, fmt.Errorf("locate build directory from workspace: %w", err)
	}

	b := &Build{
		workspace:    ws,
		root:         path,
		workspaceRel: reverse,
		platform:     platform,
		variation:    variation,
		architecture: arch,
		setting:      resolved,
	}
	if err := b.Save(); err != nil {
		return nil, err
	}
	if err := ws.register(forward); err != nil {
		return nil, err
	}
	log.Debug("created build context",
		"platform", platform, "variation", variation,
		"architecture", arch, "root", path)
	return b, nil
}

// LoadBuild reads the build marker at path and pairs it with the given
// workspace context.
func LoadBuild(ws *Workspace, path string) (*Build, error) {
	marker, err := loadBuildMarker(path)
	if err != nil {
		return nil, err
	}
	return &Build{
		workspace:    ws,
		root:         path,
		workspaceRel: marker.workspaceRoot,
		platform:     marker.platform,
		variation:    marker.variation,
		architecture: marker.architecture,
		setting:      marker.setting,
	}, nil
}

// Save rewrites only the build marker. Used after in-place setting edits.
func (b *Build) Save() error {
	return saveBuildMarker(b.root, buildMarker{
		workspaceRoot: b.workspaceRel,
		platform:      b.platform,
		variation:     b.variation,
		architecture:  b.architecture,
		setting:       b.setting,
	})
}

// Root returns the build directory.
func (b *Build) Root() string { return b.root }

// Platform returns the configured platform.
func (b *Build) Platform() config.PlatformId { return b.platform }

// Variation returns the configured variation, or "" if none was chosen.
func (b *Build) Variation() config.VariationId { return b.variation }

// Architecture returns the configured architecture.
func (b *Build) Architecture() config.Architecture { return b.architecture }

// Setting returns the build's current setting.
func (b *Build) Setting() setting.Setting { return b.setting }

// UpdateSetting merges caller edits into the build's setting. The caller is
// expected to validate and Save afterwards.
func (b *Build) UpdateSetting(edits setting.Setting) {
	b.setting.Merge(edits)
}

// WorkspaceRoot implements Context.
func (b *Build) WorkspaceRoot() string { return b.workspace.Root() }

// Project implements Context.
func (b *Build) Project() config.ProjectId { return b.workspace.Project() }

// BuildRoot implements Context.
func (b *Build) BuildRoot() (string, bool) { return b.root, true }

// Workspace implements Context.
func (b *Build) Workspace() *Workspace { return b.workspace }

// ImageName derives the deterministic image name suffix for the build:
// "<family>-<platform>", except on x86 where the full architecture token is
// used instead of the family.
func (b *Build) ImageName() string {
	prefix := string(b.architecture.Family())
	if b.architecture.Family() == config.FamilyX86 {
		prefix = string(b.architecture)
	}
	return prefix + "-" + string(b.platform)
}

// KernelImagePath returns the path of the kernel image inside the build's
// images directory, failing if the file is missing.
func (b *Build) KernelImagePath() (string, error) {
	return b.imagePath("kernel-" + b.ImageName())
}

// ImagePath returns the path of the root-server image inside the build's
// images directory, failing if the file is missing.
func (b *Build) ImagePath(rootServer string) (string, error) {
	return b.imagePath(rootServer + "-image-" + b.ImageName())
}

func (b *Build) imagePath(filename string) (string, error) {
	path := filepath.Join(b.root, "images", filename)
	if !fileExists(path) {
		return "", fmt.Errorf("image file missing: %s", path)
	}
	return path, nil
}

// InferredRootServer scans the images directory for the first filename
// ending in "-image-<name>" and strips the suffix. os.ReadDir returns
// entries sorted by name, so the lexicographically smallest match wins,
// keeping the inference deterministic.
func (b *Build) InferredRootServer() (string, error) {
	imagesDir := filepath.Join(b.root, "images")
	entries, err := os.ReadDir(imagesDir)
	if err != nil {
		return "", fmt.Errorf("images directory is missing: %w", err)
	}
	tail := "-image-" + b.ImageName()
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, tail) {
			return strings.TrimSuffix(name, tail), nil
		}
	}
	return "", fmt.Errorf("no root-server image in %s", imagesDir)
}

// relativePath computes the relative path from one directory to another,
// resolving both through symlinks first so recorded paths stay stable.
func relativePath(from, to string) (string, error) {
	fromAbs, err := filepath.Abs(from)
	if err != nil {
		return "", err
	}
	toAbs, err := filepath.Abs(to)
	if err != nil {
		return "", err
	}
	if resolved, err := filepath.EvalSymlinks(fromAbs); err == nil {
		fromAbs = resolved
	}
	if resolved, err := filepath.EvalSymlinks(toAbs); err == nil {
		toAbs = resolved
	}
	return filepath.Rel(fromAbs, toAbs)
}

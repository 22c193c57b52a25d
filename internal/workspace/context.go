// SPDX-License-Identifier: BSD-2-Clause

package workspace

import (
	"os"
	"path/filepath"

	"s4-cli/internal/config"
)

// Context is the narrow capability shared by the two context kinds. A bare
// workspace reports no build root; a build context reports both.
type Context interface {
	// WorkspaceRoot is the root directory of the owning workspace.
	WorkspaceRoot() string
	// BuildRoot is the build directory, if the context is a build.
	BuildRoot() (string, bool)
	// Project is the project the context belongs to.
	Project() config.ProjectId
	// Workspace is the owning workspace context.
	Workspace() *Workspace
}

// FindContext discovers the enclosing context by walking from the working
// directory upward toward the filesystem root. At each level the build
// marker is checked before the workspace marker, so a build directory nested
// inside a workspace resolves to the build context even though both markers
// are on the path. Returns ErrNoContext when the walk reaches the root
// without finding either marker.
func FindContext() (Context, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return findContextFrom(dir)
}

func findContextFrom(dir string) (Context, error) {
	for {
		if fileExists(filepath.Join(dir, BuildMarker)) {
			return loadBuildAt(dir)
		}
		if fileExists(filepath.Join(dir, WorkspaceMarker)) {
			return Load(dir)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, ErrNoContext
		}
		dir = parent
	}
}

// loadBuildAt loads the build marker at dir and follows its recorded
// reverse path to load the owning workspace.
func loadBuildAt(dir string) (*Build, error) {
	marker, err := loadBuildMarker(dir)
	if err != nil {
		return nil, err
	}
	ws, err := Load(filepath.Join(dir, marker.workspaceRoot))
	if err != nil {
		return nil, err
	}
	return LoadBuild(ws, dir)
}

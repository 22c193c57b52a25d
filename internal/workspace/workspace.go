// SPDX-License-Identifier: BSD-2-Clause

// Package workspace persists and rediscovers build environments on disk.
// A workspace directory is marked by a small TOML document recording its
// project and the build directories registered under it; each build
// directory carries its own marker with the platform, architecture, and
// effective setting it was configured with. The marker files are the only
// store: there is no lock, and registering a build rewrites the workspace
// marker in place. Two concurrent registrations against one workspace race
// on that rewrite and the later writer wins, silently dropping the other
// registration.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"s4-cli/internal/config"

	"github.com/charmbracelet/log"
)

// Workspace is a loaded workspace context: the root of a project checkout
// and the set of build directories registered under it.
type Workspace struct {
	root    string
	project config.ProjectId
	// builds holds the registered build directories as relative paths from
	// the workspace root, ascending.
	builds []string
}

// Create makes a new workspace directory at path for the given project,
// together with its cache subdirectory and marker file. The target must not
// exist or must be an empty directory.
func Create(project config.ProjectId, path string) (*Workspace, error) {
	if err := prepareDir(path); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Join(path, CacheSubdir), 0o755); err != nil {
		return nil, fmt.Errorf("create cache directory: %w", err)
	}

	w := &Workspace{root: path, project: project}
	if err := w.save(); err != nil {
		return nil, err
	}
	log.Debug("created workspace", "project", project, "root", path)
	return w, nil
}

// Load reads the workspace marker at path.
func Load(path string) (*Workspace, error) {
	marker, err := loadWorkspaceMarker(path)
	if err != nil {
		return nil, err
	}
	builds := slices.Clone(marker.Builds)
	slices.Sort(builds)
	return &Workspace{
		root:    path,
		project: config.ProjectId(marker.Project),
		builds:  slices.Compact(builds),
	}, nil
}

// Root returns the workspace root directory.
func (w *Workspace) Root() string { return w.root }

// Project returns the project the workspace was created for.
func (w *Workspace) Project() config.ProjectId { return w.project }

// WorkspaceRoot implements Context.
func (w *Workspace) WorkspaceRoot() string { return w.root }

// BuildRoot implements Context; a bare workspace has no build directory.
func (w *Workspace) BuildRoot() (string, bool) { return "", false }

// Workspace implements Context.
func (w *Workspace) Workspace() *Workspace { return w }

// Builds loads every registered build context that still exists on disk.
// Entries whose directory or marker has disappeared are skipped rather than
// purged; the recorded set is never rewritten during enumeration.
func (w *Workspace) Builds() ([]*Build, error) {
	var builds []*Build
	for _, rel := range w.builds {
		root := filepath.Join(w.root, rel)
		if !fileExists(filepath.Join(root, BuildMarker)) {
			log.Debug("skipping stale build entry", "path", rel)
			continue
		}
		build, err := LoadBuild(w, root)
		if err != nil {
			return nil, fmt.Errorf("load build %s: %w", rel, err)
		}
		builds = append(builds, build)
	}
	return builds, nil
}

// InferredSource derives the project source directory from the easy-settings
// hint file, as a path relative to the workspace root.
func (w *Workspace) InferredSource() (string, error) {
	root, err := filepath.EvalSymlinks(w.root)
	if err != nil {
		return "", err
	}
	hint := filepath.Join(w.root, EasySettingsFile)
	if !fileExists(hint) {
		return "", fmt.Errorf("could not infer source directory: %s is missing", EasySettingsFile)
	}
	resolved, err := filepath.EvalSymlinks(hint)
	if err != nil {
		return "", err
	}
	return filepath.Rel(root, filepath.Dir(resolved))
}

// register records a build directory in the workspace marker and rewrites
// it. This is an unlocked read-modify-write: concurrent registrations race
// and the last writer wins.
func (w *Workspace) register(rel string) error {
	if idx, found := slices.BinarySearch(w.builds, rel); !found {
		w.builds = slices.Insert(w.builds, idx, rel)
	}
	return w.save()
}

// save rewrites the workspace marker.
func (w *Workspace) save() error {
	return saveWorkspaceMarker(w.root, workspaceMarker{
		Project: string(w.project),
		Builds:  slices.Clone(w.builds),
	})
}

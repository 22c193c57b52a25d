// SPDX-License-Identifier: BSD-2-Clause

package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"s4-cli/internal/config"
	"s4-cli/internal/setting"

	"github.com/pelletier/go-toml/v2"
)

// Marker file names distinguishing the two context kinds, and the hint file
// used to locate the project source directory.
const (
	// WorkspaceMarker indicates a workspace directory.
	WorkspaceMarker = ".s4-workspace.toml"
	// BuildMarker indicates a configured build directory.
	BuildMarker = ".s4-build.toml"
	// CacheSubdir is the artifact cache directory inside a workspace.
	CacheSubdir = ".sel4_cache"
	// EasySettingsFile hints at the location of the project source tree.
	EasySettingsFile = "easy-settings.cmake"
)

// Build marker field names; everything else in the document is a flattened
// setting entry.
const (
	fieldWorkspaceRoot = "workspace-root"
	fieldPlatform      = "build-platform"
	fieldVariation     = "build-variation"
	fieldArchitecture  = "build-architecture"
)

// workspaceMarker is the persisted form of a workspace.
type workspaceMarker struct {
	Project string   `toml:"project"`
	Builds  []string `toml:"builds"`
}

// loadWorkspaceMarker reads and decodes the marker inside a workspace root.
func loadWorkspaceMarker(root string) (workspaceMarker, error) {
	path := filepath.Join(root, WorkspaceMarker)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return workspaceMarker{}, &ConflictError{Path: root, Reason: "no workspace marker"}
	}
	if err != nil {
		return workspaceMarker{}, fmt.Errorf("read workspace marker: %w", err)
	}
	var marker workspaceMarker
	if err := toml.Unmarshal(data, &marker); err != nil {
		return workspaceMarker{}, fmt.Errorf("parse workspace marker %s: %w", path, err)
	}
	return marker, nil
}

// saveWorkspaceMarker writes the marker inside a workspace root.
func saveWorkspaceMarker(root string, marker workspaceMarker) error {
	data, err := toml.Marshal(marker)
	if err != nil {
		return fmt.Errorf("encode workspace marker: %w", err)
	}
	path := filepath.Join(root, WorkspaceMarker)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write workspace marker: %w", err)
	}
	return nil
}

// buildMarker is the persisted form of a build directory configuration.
type buildMarker struct {
	workspaceRoot string
	platform      config.PlatformId
	variation     config.VariationId
	architecture  config.Architecture
	setting       setting.Setting
}

// document flattens the marker into a raw TOML document with the setting
// entries as top-level fields.
func (m buildMarker) document() map[string]any {
	doc := make(map[string]any, m.setting.Len()+4)
	m.setting.Document(doc)
	doc[fieldWorkspaceRoot] = m.workspaceRoot
	doc[fieldPlatform] = string(m.platform)
	doc[fieldArchitecture] = string(m.architecture)
	if m.variation != "" {
		doc[fieldVariation] = string(m.variation)
	}
	return doc
}

// decodeBuildMarker rebuilds a marker from its raw document form.
func decodeBuildMarker(doc map[string]any) (buildMarker, error) {
	var marker buildMarker
	rest := make(map[string]any, len(doc))

	for key, field := range doc {
		text, isText := field.(string)
		switch key {
		case fieldWorkspaceRoot, fieldPlatform, fieldVariation, fieldArchitecture:
			if !isText {
				return buildMarker{}, fmt.Errorf("%s: expected a string, got %T", key, field)
			}
		default:
			rest[key] = field
			continue
		}
		switch key {
		case fieldWorkspaceRoot:
			marker.workspaceRoot = text
		case fieldPlatform:
			marker.platform = config.PlatformId(text)
		case fieldVariation:
			marker.variation = config.VariationId(text)
		case fieldArchitecture:
			arch, err := config.ParseArchitecture(text)
			if err != nil {
				return buildMarker{}, err
			}
			marker.architecture = arch
		}
	}

	if marker.workspaceRoot == "" {
		return buildMarker{}, fmt.Errorf("missing %s field", fieldWorkspaceRoot)
	}
	if marker.platform == "" {
		return buildMarker{}, fmt.Errorf("missing %s field", fieldPlatform)
	}

	var err error
	if marker.setting, err = setting.Decode(rest); err != nil {
		return buildMarker{}, err
	}
	return marker, nil
}

// loadBuildMarker reads and decodes the marker inside a build root.
func loadBuildMarker(root string) (buildMarker, error) {
	path := filepath.Join(root, BuildMarker)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return buildMarker{}, &ConflictError{Path: root, Reason: "no build marker"}
	}
	if err != nil {
		return buildMarker{}, fmt.Errorf("read build marker: %w", err)
	}
	var doc map[string]any
	if err := toml.Unmarshal(data, &doc); err != nil {
		return buildMarker{}, fmt.Errorf("parse build marker %s: %w", path, err)
	}
	marker, err := decodeBuildMarker(doc)
	if err != nil {
		return buildMarker{}, fmt.Errorf("decode build marker %s: %w", path, err)
	}
	return marker, nil
}

// saveBuildMarker writes the marker inside a build root.
func saveBuildMarker(root string, marker buildMarker) error {
	data, err := toml.Marshal(marker.document())
	if err != nil {
		return fmt.Errorf("encode build marker: %w", err)
	}
	path := filepath.Join(root, BuildMarker)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write build marker: %w", err)
	}
	return nil
}

// fileExists reports whether path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// prepareDir enforces the shared create precondition: the target must not
// exist, or must be an empty directory (which is reused). An existing
// non-directory or non-empty directory is a conflict.
func prepareDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
		return nil
	case err != nil:
		return err
	case !info.IsDir():
		return &ConflictError{Path: path, Reason: "already exists and is not a directory"}
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	if len(entries) > 0 {
		return &ConflictError{Path: path, Reason: "directory is not empty"}
	}
	return nil
}

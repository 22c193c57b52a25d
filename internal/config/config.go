// SPDX-License-Identifier: BSD-2-Clause

// Package config loads and resolves the layered tool configuration: the flag
// catalog, the platform and project catalogs, per-architecture settings, and
// the global defaults. A Config is built once from the embedded builtin
// document plus any discovered override documents and is never mutated
// afterwards; resolution composes its layers into one effective Setting for
// a chosen (project, platform, variation, architecture) tuple.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"

	"s4-cli/internal/setting"

	"github.com/charmbracelet/log"
	"github.com/pelletier/go-toml/v2"
)

//go:embed config.toml
var builtinTOML []byte

// Override document names probed in the home and user config directories.
var overrideNames = []string{".s4", ".s4.toml", "s4.toml"}

// Config is the complete merged tool configuration.
type Config struct {
	// Defaults holds the global scalar configuration.
	Defaults Defaults
	// Flags is the catalog of known build options.
	Flags map[setting.FlagId]Flag
	// Platforms is the catalog of known hardware platforms.
	Platforms map[PlatformId]Platform
	// Architectures holds settings applied per kernel architecture,
	// regardless of platform.
	Architectures map[Architecture]setting.Setting
	// Projects is the catalog of known projects.
	Projects map[ProjectId]Project
}

// document pairs a configuration document with its origin for error context.
type document struct {
	source string
	data   []byte
}

// Builtin parses only the embedded builtin configuration.
func Builtin() (Config, error) {
	return fromDocuments(document{source: "builtin", data: builtinTOML})
}

// Load builds the configuration from the builtin document merged with any
// override documents found in the home directory and the user configuration
// directory, in that order.
func Load() (Config, error) {
	docs := []document{{source: "builtin", data: builtinTOML}}

	var dirs []string
	if home, err := os.UserHomeDir(); err == nil {
		dirs = append(dirs, home)
	}
	if cfgDir, err := os.UserConfigDir(); err == nil {
		dirs = append(dirs, cfgDir)
	}

	for _, dir := range dirs {
		for _, name := range overrideNames {
			path := filepath.Join(dir, name)
			data, err := os.ReadFile(path)
			if os.IsNotExist(err) {
				continue
			}
			if err != nil {
				return Config{}, fmt.Errorf("read configuration %s: %w", path, err)
			}
			log.Debug("merging configuration overrides", "path", path)
			docs = append(docs, document{source: path, data: data})
		}
	}

	return fromDocuments(docs...)
}

// fromDocuments decodes each document and merges it over the previous ones.
func fromDocuments(docs ...document) (Config, error) {
	v := defaultsViper()
	var cfg Config

	for _, doc := range docs {
		var raw map[string]any
		if err := toml.Unmarshal(doc.data, &raw); err != nil {
			return Config{}, fmt.Errorf("parse configuration %s: %w", doc.source, err)
		}
		if err := mergeDefaults(v, raw); err != nil {
			return Config{}, fmt.Errorf("merge defaults from %s: %w", doc.source, err)
		}
		decoded, err := decodeConfig(raw)
		if err != nil {
			return Config{}, fmt.Errorf("decode configuration %s: %w", doc.source, err)
		}
		cfg.merge(decoded)
	}

	cfg.Defaults = defaultsFromViper(v)
	return cfg, nil
}

// merge layers another configuration on top of this one. Used only while
// loading; a loaded Config is immutable.
func (c *Config) merge(other Config) {
	c.Flags = setting.MergeMap(c.Flags, other.Flags, Flag.Merge)
	c.Platforms = setting.MergeMap(c.Platforms, other.Platforms, Platform.Merge)
	c.Architectures = setting.MergeMap(c.Architectures, other.Architectures,
		func(a, b setting.Setting) setting.Setting {
			a.Merge(b)
			return a
		})
	c.Projects = setting.MergeMap(c.Projects, other.Projects, Project.Merge)
}

// Project looks up a project by identifier.
func (c Config) Project(id ProjectId) (Project, error) {
	project, ok := c.Projects[id]
	if !ok {
		return Project{}, &NotFoundError{Kind: "project", Name: string(id)}
	}
	return project, nil
}

// Platform looks up a platform by identifier.
func (c Config) Platform(id PlatformId) (Platform, error) {
	platform, ok := c.Platforms[id]
	if !ok {
		return Platform{}, &NotFoundError{Kind: "platform", Name: string(id)}
	}
	return platform, nil
}

// PlatformSetting composes the effective setting for a chosen (project,
// platform, variation, architecture) tuple. Layers apply in order, each
// strictly overriding the previous ones: platform name flags, the platform's
// own setting, the variation (if any), the architecture table entry (if
// any), and finally the project's setting.
func (c Config) PlatformSetting(project ProjectId, platformId PlatformId, variation VariationId, arch Architecture) (setting.Setting, error) {
	result := setting.New()

	platform, ok := c.Platforms[platformId]
	if !ok {
		return setting.Setting{}, &NotFoundError{Kind: "platform", Name: string(platformId)}
	}

	result.SetText(setting.KernelPlatformFlag, string(platformId))
	result.SetText(setting.PlatformFlag, string(platformId))
	result.Merge(platform.Setting)

	if variation != "" {
		v, ok := platform.Variations[variation]
		if !ok {
			return setting.Setting{}, &NotFoundError{
				Kind: "platform variation", Name: string(variation), Scope: string(platformId),
			}
		}
		result.SetText(setting.PlatformFlag, string(variation))
		result.Merge(v.Setting)
	}

	if archSetting, ok := c.Architectures[arch]; ok {
		result.Merge(archSetting)
	}

	proj, ok := c.Projects[project]
	if !ok {
		return setting.Setting{}, &NotFoundError{Kind: "project", Name: string(project)}
	}
	result.Merge(proj.Setting)

	log.Debug("resolved platform setting",
		"project", project, "platform", platformId,
		"variation", variation, "architecture", arch,
		"setting", result)

	return result, nil
}

// CheckSetting validates every flag present in the setting against the
// catalog in one pass over the final values. Flags unknown to the catalog
// are skipped.
func (c Config) CheckSetting(s setting.Setting) error {
	for _, id := range s.Ids() {
		flag, ok := c.Flags[id]
		if !ok {
			continue
		}
		if err := flag.Validate(id, s, s.Flag(id)); err != nil {
			return err
		}
	}
	return nil
}

// CMakeArgs renders the setting as -D generator arguments for every flag in
// the catalog that maps to an external variable, in flag order.
func (c Config) CMakeArgs(s setting.Setting) []string {
	var args []string
	for _, id := range s.Ids() {
		flag, ok := c.Flags[id]
		if !ok {
			continue
		}
		if arg := flag.CMakeArg(s.Flag(id)); arg != "" {
			args = append(args, arg)
		}
	}
	return args
}

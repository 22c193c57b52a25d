// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"fmt"

	"s4-cli/internal/setting"
)

// Table names recognized at the top level of a configuration document.
// Anything else at the top level is a defaults scalar and is consumed by the
// viper defaults layer.
const (
	tableFlag         = "flag"
	tablePlatform     = "platform"
	tableArchitecture = "architecture"
	tableArchAlias    = "arch"
	tableProject      = "project"
)

// decodeConfig converts a raw TOML document into a typed Config. The decode
// is fully explicit: every field is branched on its dynamic type, and value
// and requirement fields use the tagged bool → string → string-list decode.
func decodeConfig(raw map[string]any) (Config, error) {
	var cfg Config
	var err error

	if cfg.Flags, err = decodeNamed[setting.FlagId](raw, tableFlag, decodeFlag); err != nil {
		return Config{}, err
	}
	if cfg.Platforms, err = decodeNamed[PlatformId](raw, tablePlatform, decodePlatform); err != nil {
		return Config{}, err
	}
	if cfg.Projects, err = decodeNamed[ProjectId](raw, tableProject, decodeProject); err != nil {
		return Config{}, err
	}

	archTable, ok := raw[tableArchitecture]
	if !ok {
		archTable, ok = raw[tableArchAlias]
	}
	if ok {
		if cfg.Architectures, err = decodeArchitectures(archTable); err != nil {
			return Config{}, err
		}
	}

	return cfg, nil
}

// decodeNamed decodes a top-level table of named entries with a per-entry
// decoder.
func decodeNamed[K ~string, V any](raw map[string]any, table string, decode func(map[string]any) (V, error)) (map[K]V, error) {
	entries, ok := raw[table]
	if !ok {
		return nil, nil
	}
	entryTable, ok := entries.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%s: expected a table, got %T", table, entries)
	}
	out := make(map[K]V, len(entryTable))
	for name, entry := range entryTable {
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%s.%s: expected a table, got %T", table, name, entry)
		}
		decoded, err := decode(fields)
		if err != nil {
			return nil, fmt.Errorf("%s.%s: %w", table, name, err)
		}
		out[K(name)] = decoded
	}
	return out, nil
}

// decodeFlag decodes one flag catalog entry.
func decodeFlag(fields map[string]any) (Flag, error) {
	var flag Flag
	rest := make(map[string]any)

	for key, field := range fields {
		switch key {
		case "description":
			text, ok := field.(string)
			if !ok {
				return Flag{}, fmt.Errorf("description: expected a string, got %T", field)
			}
			flag.Description = text
		case "variable":
			text, ok := field.(string)
			if !ok {
				return Flag{}, fmt.Errorf("variable: expected a string, got %T", field)
			}
			flag.Variable = text
		case "requires":
			sets, err := decodeRequires(field)
			if err != nil {
				return Flag{}, err
			}
			flag.Requires = sets
		default:
			rest[key] = field
		}
	}

	if len(rest) > 0 {
		return Flag{}, fmt.Errorf("unrecognized flag fields: %v", keysOf(rest))
	}
	return flag, nil
}

// decodeRequires decodes the requires array of conjunction tables.
func decodeRequires(raw any) ([]RequireSet, error) {
	array, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("requires: expected an array of tables, got %T", raw)
	}
	sets := make([]RequireSet, 0, len(array))
	for i, entry := range array {
		table, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("requires[%d]: expected a table, got %T", i, entry)
		}
		rs := make(RequireSet, len(table))
		for dep, field := range table {
			requirement, err := decodeRequirement(field)
			if err != nil {
				return nil, fmt.Errorf("requires[%d].%s: %w", i, dep, err)
			}
			rs[setting.FlagId(dep)] = requirement
		}
		sets = append(sets, rs)
	}
	return sets, nil
}

// decodeRequirement performs the three-way tagged decode of a requirement:
// a boolean or string is a single required value, a list is a set of
// accepted values.
func decodeRequirement(raw any) (Requirement, error) {
	switch field := raw.(type) {
	case bool:
		return Single(setting.Boolean(field)), nil
	case string:
		return Single(setting.Text(field)), nil
	case []any:
		values := make([]setting.Value, 0, len(field))
		for _, element := range field {
			value, err := setting.DecodeValue(element)
			if err != nil {
				return Requirement{}, err
			}
			values = append(values, value)
		}
		return AnyOf(values...), nil
	default:
		return Requirement{}, fmt.Errorf("expected a boolean, string, or list, got %T", raw)
	}
}

// decodePlatform decodes one platform catalog entry; fields that are not
// platform structure are flattened setting entries.
func decodePlatform(fields map[string]any) (Platform, error) {
	var platform Platform
	rest := make(map[string]any)

	for key, field := range fields {
		switch key {
		case "architectures":
			array, ok := field.([]any)
			if !ok {
				return Platform{}, fmt.Errorf("architectures: expected an array, got %T", field)
			}
			for _, element := range array {
				token, ok := element.(string)
				if !ok {
					return Platform{}, fmt.Errorf("architectures: expected strings, got %T", element)
				}
				arch, err := ParseArchitecture(token)
				if err != nil {
					return Platform{}, err
				}
				platform.Architectures = setting.UnionSorted(platform.Architectures, []Architecture{arch})
			}
		case "variation", "variant":
			table, ok := field.(map[string]any)
			if !ok {
				return Platform{}, fmt.Errorf("%s: expected a table, got %T", key, field)
			}
			platform.Variations = make(map[VariationId]Variation, len(table))
			for name, entry := range table {
				variationFields, ok := entry.(map[string]any)
				if !ok {
					return Platform{}, fmt.Errorf("%s.%s: expected a table, got %T", key, name, entry)
				}
				variation, err := decodeVariation(variationFields)
				if err != nil {
					return Platform{}, fmt.Errorf("%s.%s: %w", key, name, err)
				}
				platform.Variations[VariationId(name)] = variation
			}
		default:
			rest[key] = field
		}
	}

	var err error
	if platform.Setting, err = setting.Decode(rest); err != nil {
		return Platform{}, err
	}
	return platform, nil
}

// decodeVariation decodes one variation entry: all fields are setting
// entries.
func decodeVariation(fields map[string]any) (Variation, error) {
	s, err := setting.Decode(fields)
	if err != nil {
		return Variation{}, err
	}
	return Variation{Setting: s}, nil
}

// decodeArchitectures decodes the per-architecture settings table.
func decodeArchitectures(raw any) (map[Architecture]setting.Setting, error) {
	table, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("architecture: expected a table, got %T", raw)
	}
	out := make(map[Architecture]setting.Setting, len(table))
	for token, entry := range table {
		arch, err := ParseArchitecture(token)
		if err != nil {
			return nil, err
		}
		fields, ok := entry.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("architecture.%s: expected a table, got %T", token, entry)
		}
		s, err := setting.Decode(fields)
		if err != nil {
			return nil, fmt.Errorf("architecture.%s: %w", token, err)
		}
		out[arch] = s
	}
	return out, nil
}

// decodeProject decodes one project catalog entry; fields that are not
// project structure are flattened setting entries.
func decodeProject(fields map[string]any) (Project, error) {
	var project Project
	rest := make(map[string]any)

	for key, field := range fields {
		switch key {
		case "repository":
			text, ok := field.(string)
			if !ok {
				return Project{}, fmt.Errorf("repository: expected a string, got %T", field)
			}
			repo, err := ParseRepository(text)
			if err != nil {
				return Project{}, err
			}
			project.Repository = repo
		case "source-directory", "source-dir":
			text, ok := field.(string)
			if !ok {
				return Project{}, fmt.Errorf("%s: expected a string, got %T", key, field)
			}
			project.SourceDirectory = text
		case "root-server", "rootserver":
			text, ok := field.(string)
			if !ok {
				return Project{}, fmt.Errorf("%s: expected a string, got %T", key, field)
			}
			project.RootServer = text
		case "exit-phrase":
			text, ok := field.(string)
			if !ok {
				return Project{}, fmt.Errorf("exit-phrase: expected a string, got %T", field)
			}
			project.ExitPhrase = text
		case "command-line", "cmdline":
			array, ok := field.([]any)
			if !ok {
				return Project{}, fmt.Errorf("%s: expected an array, got %T", key, field)
			}
			for _, element := range array {
				id, ok := element.(string)
				if !ok {
					return Project{}, fmt.Errorf("%s: expected strings, got %T", key, element)
				}
				project.CommandLine = setting.UnionSorted(project.CommandLine, []setting.FlagId{setting.FlagId(id)})
			}
		default:
			rest[key] = field
		}
	}

	var err error
	if project.Setting, err = setting.Decode(rest); err != nil {
		return Project{}, err
	}
	return project, nil
}

// keysOf returns the keys of a raw table for error messages.
func keysOf(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

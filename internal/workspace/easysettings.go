// SPDX-License-Identifier: BSD-2-Clause

package workspace

import (
	"bufio"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	"s4-cli/internal/config"
	"s4-cli/internal/setting"
)

// settingLine matches a `set(VARIABLE <default> <...> TYPE "description")`
// declaration in the easy-settings hint file.
var settingLine = regexp.MustCompile(
	`^set\((?P<variable>[A-Za-z][A-Za-z0-9_]*)( [^ ]+){2} (?P<type>[A-Z]+) "(?P<description>[^"]*)"\)$`)

// EasySettings scrapes additional flag definitions from the workspace's
// easy-settings hint file, so projects without catalog entries still expose
// their options on the command line. A missing hint file yields no flags.
func (w *Workspace) EasySettings() (map[setting.FlagId]config.Flag, error) {
	flags := make(map[setting.FlagId]config.Flag)

	path := filepath.Join(w.root, EasySettingsFile)
	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return flags, nil
	}
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		matches := settingLine.FindStringSubmatch(strings.TrimSpace(scanner.Text()))
		if matches == nil {
			continue
		}
		variable := matches[settingLine.SubexpIndex("variable")]
		description := matches[settingLine.SubexpIndex("description")]
		flags[flagIdentifier(variable)] = config.Flag{
			Description: description,
			Variable:    variable,
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return flags, nil
}

// flagIdentifier converts an external variable name into a flag identifier:
// SCREAMING_SNAKE_CASE and PascalCase both become kebab-case.
func flagIdentifier(variable string) setting.FlagId {
	var sb strings.Builder
	if strings.IndexFunc(variable, unicode.IsLower) < 0 {
		// SCREAMING_SNAKE_CASE
		for _, r := range variable {
			if r == '_' {
				sb.WriteRune('-')
			} else {
				sb.WriteRune(unicode.ToLower(r))
			}
		}
	} else {
		// PascalCase
		for i, r := range variable {
			if unicode.IsUpper(r) && i > 0 {
				sb.WriteRune('-')
			}
			sb.WriteRune(unicode.ToLower(r))
		}
	}
	return setting.FlagId(sb.String())
}

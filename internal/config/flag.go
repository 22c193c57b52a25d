// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"slices"
	"sort"
	"strings"

	"s4-cli/internal/setting"
)

type (
	// Requirement is a predicate over another flag's value: it holds when
	// the value equals a single required value, or is a member of a set of
	// accepted values.
	Requirement struct {
		// anyOf holds the accepted values, ascending by Value.Compare.
		// A single-value requirement is a one-element set.
		anyOf []setting.Value
	}

	// RequireSet is one conjunction of a flag's requirements: every listed
	// dependency must satisfy its requirement for the conjunction to hold.
	RequireSet map[setting.FlagId]Requirement

	// Flag is the catalog definition of one build option.
	Flag struct {
		// Description is the human-readable purpose of the option.
		Description string
		// Variable is the external build-system option name the flag maps
		// to, or empty if the flag is internal to the tool.
		Variable string
		// Requires is a disjunction of conjunctions: the flag may be
		// enabled when any one RequireSet is fully satisfied.
		Requires []RequireSet
	}
)

// Single returns a requirement satisfied only by the given value.
func Single(value setting.Value) Requirement {
	return Requirement{anyOf: []setting.Value{value}}
}

// AnyOf returns a requirement satisfied by membership in the given values.
func AnyOf(values ...setting.Value) Requirement {
	anyOf := slices.Clone(values)
	sort.Slice(anyOf, func(i, j int) bool { return anyOf[i].Compare(anyOf[j]) < 0 })
	return Requirement{anyOf: slices.Compact(anyOf)}
}

// Check reports whether the given value satisfies the requirement.
func (r Requirement) Check(value setting.Value) bool {
	for _, accepted := range r.anyOf {
		if accepted == value {
			return true
		}
	}
	return false
}

// key renders a canonical form used to deduplicate requirement sets when
// merging flag definitions across documents.
func (rs RequireSet) key() string {
	ids := make([]string, 0, len(rs))
	for id := range rs {
		ids = append(ids, string(id))
	}
	sort.Strings(ids)
	var sb strings.Builder
	for _, id := range ids {
		sb.WriteString(id)
		sb.WriteString("=")
		for _, v := range rs[setting.FlagId(id)].anyOf {
			sb.WriteString(v.String())
			sb.WriteString("|")
		}
		sb.WriteString(";")
	}
	return sb.String()
}

// satisfied reports whether every pair of the conjunction holds in the
// setting. Dependencies absent from the setting read as Boolean(false).
func (rs RequireSet) satisfied(s setting.Setting) bool {
	for id, requirement := range rs {
		if !requirement.Check(s.Flag(id)) {
			return false
		}
	}
	return true
}

// Validate checks that the flag may be assigned the given value under the
// current setting. Flags without requirements accept anything. Gated flags
// accept true only when some requirement set holds, always accept false
// (disabling a gated feature needs no justification), and reject non-boolean
// values outright.
func (f Flag) Validate(id setting.FlagId, s setting.Setting, value setting.Value) error {
	if len(f.Requires) == 0 {
		return nil
	}
	if !value.IsBoolean() {
		return &FlagValueError{Flag: id, Value: value}
	}
	if !value.Bool() {
		return nil
	}
	for _, conjunction := range f.Requires {
		if conjunction.satisfied(s) {
			return nil
		}
	}
	return &UnsatisfiedError{Flag: id}
}

// Merge layers another definition of the same flag on top of this one: the
// variable replaces when set, requirement sets union, the description is the
// terminal scalar of the original definition unless overridden.
func (f Flag) Merge(other Flag) Flag {
	f.Description = setting.ReplaceIfSet(f.Description, other.Description)
	f.Variable = setting.ReplaceIfSet(f.Variable, other.Variable)
	seen := make(map[string]bool, len(f.Requires))
	for _, rs := range f.Requires {
		seen[rs.key()] = true
	}
	for _, rs := range other.Requires {
		if !seen[rs.key()] {
			f.Requires = append(f.Requires, rs)
			seen[rs.key()] = true
		}
	}
	return f
}

// CMakeArg renders the flag as a -D<variable>=<value> generator argument, or
// "" if the flag does not map to an external variable.
func (f Flag) CMakeArg(value setting.Value) string {
	if f.Variable == "" {
		return ""
	}
	return "-D" + f.Variable + "=" + value.CMakeString()
}

// SPDX-License-Identifier: BSD-2-Clause

// Package setting models resolved build options: typed option values, the
// FlagId→Value mapping produced by configuration resolution, and the layered
// merge combinator used to stack configuration documents on top of each
// other. A Setting is mutated only through explicit Set calls and Merge; all
// iteration is in lexicographic key order so rendered output is reproducible.
package setting

import (
	"slices"
	"strings"
)

// FlagId identifies a single build option in the flag catalog and in
// settings. It is a distinct type so flag, platform, and project identifiers
// cannot be mixed up.
type FlagId string

// String returns the identifier text.
func (id FlagId) String() string { return string(id) }

// Well-known flags maintained by configuration resolution itself.
const (
	// PlatformFlag carries the name of the selected platform, or of the
	// selected variation when one is chosen.
	PlatformFlag FlagId = "platform"
	// KernelPlatformFlag always carries the name of the selected platform.
	KernelPlatformFlag FlagId = "kernel-platform"
)

// Setting maps option identifiers to their resolved values. The zero value
// is an empty setting ready for use.
type Setting struct {
	flags map[FlagId]Value
}

// New returns an empty Setting.
func New() Setting {
	return Setting{flags: make(map[FlagId]Value)}
}

// Len returns the number of options present.
func (s Setting) Len() int { return len(s.flags) }

// Flag returns the value of an option. Options that are absent read as
// Boolean(false), matching how requirement checks treat unset flags.
func (s Setting) Flag(id FlagId) Value {
	if v, ok := s.flags[id]; ok {
		return v
	}
	return Boolean(false)
}

// Has reports whether the option is explicitly present.
func (s Setting) Has(id FlagId) bool {
	_, ok := s.flags[id]
	return ok
}

// Ids returns the present option identifiers in lexicographic order.
func (s Setting) Ids() []FlagId {
	ids := make([]FlagId, 0, len(s.flags))
	for id := range s.flags {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Set assigns a value to an option.
func (s *Setting) Set(id FlagId, value Value) {
	if s.flags == nil {
		s.flags = make(map[FlagId]Value)
	}
	s.flags[id] = value
}

// SetBool assigns a boolean value to an option.
func (s *Setting) SetBool(id FlagId, value bool) { s.Set(id, Boolean(value)) }

// SetText assigns a text value to an option.
func (s *Setting) SetText(id FlagId, value string) { s.Set(id, Text(value)) }

// Merge layers another setting on top of this one. Values are terminal
// scalars, so every entry of other replaces the corresponding entry here.
func (s *Setting) Merge(other Setting) {
	for id, value := range other.flags {
		s.Set(id, value)
	}
}

// Clone returns an independent copy.
func (s Setting) Clone() Setting {
	out := New()
	for id, value := range s.flags {
		out.flags[id] = value
	}
	return out
}

// Equal reports whether two settings assign the same values to the same
// options.
func (s Setting) Equal(other Setting) bool {
	if len(s.flags) != len(other.flags) {
		return false
	}
	for id, value := range s.flags {
		if got, ok := other.flags[id]; !ok || got != value {
			return false
		}
	}
	return true
}

// String renders the setting as "{ id: value, ... }" in key order.
func (s Setting) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	for i, id := range s.Ids() {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(" ")
		sb.WriteString(string(id))
		sb.WriteString(": ")
		sb.WriteString(s.flags[id].String())
	}
	if len(s.flags) > 0 {
		sb.WriteString(" ")
	}
	sb.WriteString("}")
	return sb.String()
}

// Document appends the setting's entries to a raw document map, flattened as
// top-level boolean/string fields.
func (s Setting) Document(doc map[string]any) {
	for id, value := range s.flags {
		doc[string(id)] = value.Document()
	}
}

// Decode builds a Setting from raw document fields, rejecting anything that
// is not a boolean or a string.
func Decode(raw map[string]any) (Setting, error) {
	out := New()
	for key, field := range raw {
		value, err := DecodeValue(field)
		if err != nil {
			return Setting{}, err
		}
		out.Set(FlagId(key), value)
	}
	return out, nil
}

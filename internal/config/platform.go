// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"strings"

	"s4-cli/internal/setting"
)

type (
	// PlatformId identifies a hardware platform in the catalog.
	PlatformId string

	// VariationId identifies a variation within a platform.
	VariationId string

	// Variation is a named specialization of a platform, layering its own
	// partial setting on top of the platform's.
	Variation struct {
		Setting setting.Setting
	}

	// Platform is a named hardware target known to the build system.
	Platform struct {
		// Architectures the platform supports, ascending.
		Architectures []Architecture
		// Variations of the platform, if any.
		Variations map[VariationId]Variation
		// Setting applied whenever the platform is selected.
		Setting setting.Setting
	}

	// Choice is a parsed "platform[:variation]" selection string.
	Choice struct {
		Platform  PlatformId
		Variation VariationId
	}
)

// String returns the identifier text.
func (id PlatformId) String() string { return string(id) }

// String returns the identifier text.
func (id VariationId) String() string { return string(id) }

// Merge layers another definition of the same variation on top of this one.
func (v Variation) Merge(other Variation) Variation {
	v.Setting.Merge(other.Setting)
	return v
}

// Merge layers another definition of the same platform on top of this one:
// architecture sets union, variations merge per key, settings merge.
func (p Platform) Merge(other Platform) Platform {
	p.Architectures = setting.UnionSorted(p.Architectures, other.Architectures)
	p.Variations = setting.MergeMap(p.Variations, other.Variations, Variation.Merge)
	p.Setting.Merge(other.Setting)
	return p
}

// Supports reports whether the platform supports the given architecture.
func (p Platform) Supports(arch Architecture) bool {
	for _, a := range p.Architectures {
		if a == arch {
			return true
		}
	}
	return false
}

// ParseChoice parses a "platform" or "platform:variation" selection string.
func ParseChoice(input string) (Choice, error) {
	parts := strings.Split(input, ":")
	switch len(parts) {
	case 1:
		return Choice{Platform: PlatformId(parts[0])}, nil
	case 2:
		return Choice{Platform: PlatformId(parts[0]), Variation: VariationId(parts[1])}, nil
	default:
		return Choice{}, &ParseError{Kind: "platform choice", Input: input}
	}
}

// String renders the choice back as "platform[:variation]".
func (c Choice) String() string {
	if c.Variation == "" {
		return string(c.Platform)
	}
	return string(c.Platform) + ":" + string(c.Variation)
}

// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"strings"

	"s4-cli/internal/setting"
)

type (
	// ProjectId identifies a project in the catalog.
	ProjectId string

	// Repository is the (organisation, name) pair of a project's manifest
	// repository on the configured git server.
	Repository struct {
		Organisation string
		Name         string
	}

	// Project describes one buildable project.
	Project struct {
		Repository Repository
		// SourceDirectory is the path of the build-system source directory
		// relative to the workspace root, or empty to infer it.
		SourceDirectory string
		// RootServer is the name of the root-server binary, or empty to
		// infer it from the images directory of a build.
		RootServer string
		// ExitPhrase overrides the default phrase that marks a successful
		// hardware run, if set.
		ExitPhrase string
		// CommandLine lists the flags the project exposes for direct
		// override when configuring a build directory, ascending.
		CommandLine []setting.FlagId
		// Setting applied whenever the project is selected.
		Setting setting.Setting
	}
)

// String returns the identifier text.
func (id ProjectId) String() string { return string(id) }

// ParseRepository parses an "organisation/name" pair. A trailing ".git"
// suffix and bare organisation names are rejected.
func ParseRepository(input string) (Repository, error) {
	parts := strings.Split(input, "/")
	if len(parts) != 2 || strings.HasSuffix(parts[1], ".git") {
		return Repository{}, &ParseError{Kind: "repository", Input: input}
	}
	return Repository{Organisation: parts[0], Name: parts[1]}, nil
}

// String renders the repository as "organisation/name".
func (r Repository) String() string { return r.Organisation + "/" + r.Name }

// Merge layers another definition of the same project on top of this one.
func (p Project) Merge(other Project) Project {
	if other.Repository != (Repository{}) {
		p.Repository = other.Repository
	}
	p.SourceDirectory = setting.ReplaceIfSet(p.SourceDirectory, other.SourceDirectory)
	p.RootServer = setting.ReplaceIfSet(p.RootServer, other.RootServer)
	p.ExitPhrase = setting.ReplaceIfSet(p.ExitPhrase, other.ExitPhrase)
	p.CommandLine = setting.UnionSorted(p.CommandLine, other.CommandLine)
	p.Setting.Merge(other.Setting)
	return p
}

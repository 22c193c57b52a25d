// SPDX-License-Identifier: BSD-2-Clause

package config

import (
	"errors"
	"fmt"

	"s4-cli/internal/setting"
)

var (
	// ErrNotFound is the sentinel error wrapped by NotFoundError.
	ErrNotFound = errors.New("not found")

	// ErrUnsatisfied is the sentinel error wrapped by UnsatisfiedError.
	ErrUnsatisfied = errors.New("requirements unsatisfied")

	// ErrInvalidFlagValue is the sentinel error wrapped by FlagValueError.
	ErrInvalidFlagValue = errors.New("invalid flag value")

	// ErrParse is the sentinel error wrapped by ParseError.
	ErrParse = errors.New("parse error")
)

type (
	// NotFoundError is returned when a platform, variation, or project
	// identifier has no entry in the catalog.
	NotFoundError struct {
		// Kind names the catalog that was searched: "platform",
		// "variation", or "project".
		Kind string
		// Name is the identifier that was looked up.
		Name string
		// Scope optionally names the enclosing entry (the platform a
		// variation was looked up in).
		Scope string
	}

	// UnsatisfiedError is returned when a gated flag is enabled but none of
	// its requirement sets hold in the current setting.
	UnsatisfiedError struct {
		Flag setting.FlagId
	}

	// FlagValueError is returned when a flag with requirements is assigned a
	// non-boolean value.
	FlagValueError struct {
		Flag  setting.FlagId
		Value setting.Value
	}

	// ParseError is returned for malformed repository strings, architecture
	// tokens, and platform choice strings.
	ParseError struct {
		// Kind names what failed to parse: "repository", "architecture",
		// or "platform choice".
		Kind  string
		Input string
	}
)

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.Scope != "" {
		return fmt.Sprintf("no such %s %s for platform %s", e.Kind, e.Name, e.Scope)
	}
	return fmt.Sprintf("no such %s %s", e.Kind, e.Name)
}

// Unwrap returns ErrNotFound for errors.Is compatibility.
func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// Error implements the error interface.
func (e *UnsatisfiedError) Error() string {
	return fmt.Sprintf("none of the requirement sets for the flag %s could be satisfied", e.Flag)
}

// Unwrap returns ErrUnsatisfied for errors.Is compatibility.
func (e *UnsatisfiedError) Unwrap() error { return ErrUnsatisfied }

// Error implements the error interface.
func (e *FlagValueError) Error() string {
	return fmt.Sprintf("cannot set flag %s with requirements to non-boolean value: %s", e.Flag, e.Value)
}

// Unwrap returns ErrInvalidFlagValue for errors.Is compatibility.
func (e *FlagValueError) Unwrap() error { return ErrInvalidFlagValue }

// Error implements the error interface.
func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed %s: %s", e.Kind, e.Input)
}

// Unwrap returns ErrParse for errors.Is compatibility.
func (e *ParseError) Unwrap() error { return ErrParse }

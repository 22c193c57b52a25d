// SPDX-License-Identifier: BSD-2-Clause

package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrConflict is the sentinel error wrapped by ConflictError.
	ErrConflict = errors.New("filesystem conflict")

	// ErrNoContext is returned by FindContext when no workspace or build
	// marker exists anywhere between the working directory and the
	// filesystem root.
	ErrNoContext = errors.New("not inside an s4 workspace")
)

// ConflictError is returned when a create target already exists in an
// unusable state, or a required marker file is missing on load.
type ConflictError struct {
	Path   string
	Reason string
}

// Error implements the error interface.
func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Unwrap returns ErrConflict for errors.Is compatibility.
func (e *ConflictError) Unwrap() error { return ErrConflict }

// SPDX-License-Identifier: BSD-2-Clause

package tools

import (
	"errors"
	"fmt"
)

// ErrExternal is the sentinel for failures of external collaborator tools:
// missing executables, failed downloads, and non-zero exit statuses.
var ErrExternal = errors.New("external tool failure")

// ExternalError reports which tool failed and in what way.
type ExternalError struct {
	Tool   string
	Reason string
	Err    error
}

func (e *ExternalError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Tool, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Tool, e.Reason)
}

func (e *ExternalError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrExternal
}

// Is makes every ExternalError match ErrExternal even when it wraps a
// lower-level cause.
func (e *ExternalError) Is(target error) bool {
	return target == ErrExternal
}

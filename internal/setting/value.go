// SPDX-License-Identifier: BSD-2-Clause

package setting

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidValue is the sentinel error wrapped by InvalidValueError.
var ErrInvalidValue = errors.New("invalid option value")

type (
	// valueKind discriminates the two payload shapes of a Value.
	valueKind uint8

	// Value is the value assigned to a build option: either a boolean or a
	// piece of text. The zero value is Boolean(false), which is also what an
	// absent option defaults to during requirement checking.
	Value struct {
		kind valueKind
		b    bool
		text string
	}

	// InvalidValueError is returned when a raw document field cannot be
	// decoded as a boolean or string option value.
	InvalidValueError struct {
		Raw any
	}
)

const (
	kindBoolean valueKind = iota
	kindText
)

// Boolean returns a boolean Value.
func Boolean(b bool) Value { return Value{kind: kindBoolean, b: b} }

// Text returns a text Value.
func Text(s string) Value { return Value{kind: kindText, text: s} }

// IsBoolean reports whether the Value holds a boolean payload.
func (v Value) IsBoolean() bool { return v.kind == kindBoolean }

// Bool returns the boolean payload, or false for text values.
func (v Value) Bool() bool { return v.kind == kindBoolean && v.b }

// String renders the value the way it appears in documents and messages:
// "true"/"false" for booleans, the text itself otherwise.
func (v Value) String() string {
	if v.kind == kindBoolean {
		if v.b {
			return "true"
		}
		return "false"
	}
	return v.text
}

// CMakeString renders the value as a CMake cache argument payload.
func (v Value) CMakeString() string {
	switch v.kind {
	case kindBoolean:
		if v.b {
			return "ON"
		}
		return "OFF"
	default:
		return v.text
	}
}

// Compare orders values by tag (booleans before text) then payload.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		return int(v.kind) - int(other.kind)
	}
	if v.kind == kindBoolean {
		switch {
		case v.b == other.b:
			return 0
		case v.b:
			return 1
		default:
			return -1
		}
	}
	return strings.Compare(v.text, other.text)
}

// Document returns the value as it is persisted in a TOML document.
func (v Value) Document() any {
	if v.kind == kindBoolean {
		return v.b
	}
	return v.text
}

// DecodeValue converts a raw decoded document field into a Value. The decode
// is an explicit two-way branch: booleans stay booleans, strings become text,
// everything else is rejected.
func DecodeValue(raw any) (Value, error) {
	switch val := raw.(type) {
	case bool:
		return Boolean(val), nil
	case string:
		return Text(val), nil
	default:
		return Value{}, &InvalidValueError{Raw: raw}
	}
}

// Error implements the error interface.
func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("invalid option value %v (%T): must be a boolean or a string", e.Raw, e.Raw)
}

// Unwrap returns ErrInvalidValue so callers can use errors.Is for detection.
func (e *InvalidValueError) Unwrap() error { return ErrInvalidValue }

// SPDX-License-Identifier: BSD-2-Clause

package setting

import (
	"cmp"
	"slices"
)

// The configuration layers combine through four shapes, applied pairwise
// with the later operand winning on conflict:
//
//   - optional scalars replace only when the later operand is present,
//   - sets take the union,
//   - mappings merge recursively per key,
//   - terminal scalars (text, Value, enum tokens) replace unconditionally.
//
// Merging is associative per layer but not commutative, and re-applying an
// unchanged layer is idempotent.

// MergeMap merges src into dst: keys present in both are combined with the
// supplied merge function, keys only in src are inserted. dst is returned for
// convenience; a nil dst is allocated first.
func MergeMap[K comparable, V any](dst, src map[K]V, merge func(V, V) V) map[K]V {
	if dst == nil && len(src) > 0 {
		dst = make(map[K]V, len(src))
	}
	for key, other := range src {
		if current, ok := dst[key]; ok {
			dst[key] = merge(current, other)
		} else {
			dst[key] = other
		}
	}
	return dst
}

// UnionSorted merges two ascending unique slices into one, treating them as
// sets. The result is ascending and duplicate-free.
func UnionSorted[T cmp.Ordered](dst, src []T) []T {
	for _, v := range src {
		if idx, found := slices.BinarySearch(dst, v); !found {
			dst = slices.Insert(dst, idx, v)
		}
	}
	return dst
}

// ReplaceIfSet implements the optional-scalar shape for strings, where the
// empty string marks absence.
func ReplaceIfSet(current, other string) string {
	if other != "" {
		return other
	}
	return current
}

// SPDX-License-Identifier: MIT

package builder

import (
	"fmt"
	"strconv"
)

// IDFn generates a connector identifier from its zero-based placement
// index. It must be pure: the same idx always yields the same string.
type IDFn func(idx int) string

// DefaultIDFn returns "C" followed by the one-based index: 0→"C1", 9→"C10".
// Panics if idx < 0.
func DefaultIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("DefaultIDFn: idx must be ≥ 0, got %d", idx))
	}
	return "C" + strconv.Itoa(idx+1)
}

// SymbolIDFn returns the uppercase Latin letter for idx in [0..25].
// Panics outside that range.
func SymbolIDFn(idx int) string {
	if idx < 0 || idx > 25 {
		panic(fmt.Sprintf("SymbolIDFn: idx must be in [0,25], got %d", idx))
	}
	return string('A' + rune(idx))
}

// ExcelColumnIDFn returns the spreadsheet column name for idx:
// 0→"A", 25→"Z", 26→"AA". Panics if idx < 0.
func ExcelColumnIDFn(idx int) string {
	if idx < 0 {
		panic(fmt.Sprintf("ExcelColumnIDFn: idx must be ≥ 0, got %d", idx))
	}
	var runes []rune
	for i := idx; i >= 0; i = i/26 - 1 {
		runes = append(runes, rune('A'+(i%26)))
	}
	for i, j := 0, len(runes)-1; i < j; i, j = i+1, j-1 {
		runes[i], runes[j] = runes[j], runes[i]
	}
	return string(runes)
}

// PrefixIDFn returns an IDFn producing prefix + one-based index, e.g.
// PrefixIDFn("X")(0) == "X1". Panics on an empty prefix or a prefix
// containing '.', which would break pin references.
func PrefixIDFn(prefix string) IDFn {
	if prefix == "" {
		panic("PrefixIDFn: empty prefix")
	}
	for _, r := range prefix {
		if r == '.' {
			panic(fmt.Sprintf("PrefixIDFn: prefix %q contains '.'", prefix))
		}
	}
	return func(idx int) string {
		if idx < 0 {
			panic(fmt.Sprintf("PrefixIDFn: idx must be ≥ 0, got %d", idx))
		}
		return prefix + strconv.Itoa(idx+1)
	}
}

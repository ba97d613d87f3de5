// Package textnorm normalizes user-entered tag and section names.
package textnorm

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// Name trims surrounding whitespace and applies NFC so visually equal names compare equal
func Name(s string) string {
	return norm.NFC.String(strings.TrimSpace(s))
}

// FoldKey returns a key for case-insensitive comparison
func FoldKey(s string) string {
	return cases.Fold().String(Name(s))
}

// EqualFold reports whether two names are equal ignoring case
func EqualFold(a, b string) bool {
	return FoldKey(a) == FoldKey(b)
}

// ContainsFold reports whether substr occurs in s ignoring case
func ContainsFold(s, substr string) bool {
	return strings.Contains(FoldKey(s), FoldKey(substr))
}

// Package strings provides string utility functions for parameter naming.
package strings

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var lower = cases.Lower(language.Und)

// LowerFirst lower-cases the first rune of s using culture-invariant rules
// and leaves the rest untouched ("InjectedValue" -> "injectedValue").
func LowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return lower.String(s[:size]) + s[size:]
}

// TrimUnderscores strips the leading underscores of a field name ("_value" -> "value").
func TrimUnderscores(s string) string {
	return strings.TrimLeft(s, "_")
}

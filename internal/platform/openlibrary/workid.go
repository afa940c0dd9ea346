package openlibrary

import (
	"strings"
	"unicode"
)

// ValidWorkID reports whether s is an Open Library work identifier of the
// form OL<digits>W, e.g. OL8022414W. The prefix and suffix are
// case-sensitive and the digit body must be non-empty.
func ValidWorkID(s string) bool {
	// shortest valid id is OL<one digit>W
	if len(s) < 4 {
		return false
	}
	if s[:2] != "OL" || s[len(s)-1] != 'W' {
		return false
	}
	for i := 2; i < len(s)-1; i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// NormalizeQuery converts free text like "Isn't it wonderful?" into the
// URL-safe form "isnt+it+wonderful" expected by the search endpoint:
// lowercased, non-alphanumeric characters stripped, words joined with "+".
func NormalizeQuery(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r == ' ' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), "+")
}

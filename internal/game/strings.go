package game

import "strings"

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// SameName reports whether an answer names the element: both sides are
// trimmed and compared case-insensitively.
func SameName(answer, name string) bool {
	return lower(answer) == lower(name)
}

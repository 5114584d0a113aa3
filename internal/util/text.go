package util

import (
	"strings"
	"unicode"
)

// SanitizeID rewrites a display label into an identifier-safe form:
// letters, digits and underscores pass through, every other rune becomes
// an underscore. Unicode letters are kept so labels like "João" stay
// recognizable in the assigned id.
func SanitizeID(label string) string {
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteByte('_')
		}
	}
	return b.String()
}

// CollapseWhitespace trims a value and folds all interior whitespace runs,
// including newlines, into single spaces.
func CollapseWhitespace(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	return strings.Join(strings.Fields(value), " ")
}

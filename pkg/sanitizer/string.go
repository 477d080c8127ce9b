package sanitizer

import (
	"strings"
	"unicode"
)

// Separators are the characters users type between identifier groups.
const Separators = " -"

// Trim removes leading and trailing whitespace from a string.
func Trim(s string) string {
	return strings.TrimSpace(s)
}

// ToUpper converts a string to uppercase.
func ToUpper(s string) string {
	return strings.ToUpper(s)
}

// RemoveChars removes all occurrences of the specified characters from a string.
func RemoveChars(s string, chars string) string {
	for _, char := range chars {
		s = strings.ReplaceAll(s, string(char), "")
	}
	return s
}

// StripSeparators removes every space and hyphen.
func StripSeparators(s string) string {
	return RemoveChars(s, Separators)
}

// RemoveControlChars removes non-printable characters except tabs, newlines and spaces.
func RemoveControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && r != '\t' && r != '\n' && r != ' ' {
			return -1
		}
		return r
	}, s)
}

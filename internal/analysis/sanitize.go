package analysis

import (
	"strings"
	"unicode"

	"github.com/charmbracelet/x/ansi"
)

// Clean makes a server-supplied string safe to draw in a terminal.
// Escape sequences are stripped, newlines and tabs are kept, and every other
// control character is dropped.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	s = ansi.Strip(s)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, s)
}

// CleanLine is Clean for single-line slots: line breaks collapse to spaces
func CleanLine(s string) string {
	s = Clean(s)
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\t", " ").Replace(s)
	return strings.TrimSpace(s)
}

// classToken reduces a value to the characters allowed in a state class name
func classToken(value string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(value) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}
	return b.String()
}

// joinList cleans each item, drops blanks and joins with ", "
func joinList(items []string) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		if cleaned := CleanLine(item); cleaned != "" {
			parts = append(parts, cleaned)
		}
	}
	return strings.Join(parts, ", ")
}

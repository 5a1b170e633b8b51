package tarot

import (
	"regexp"
	"strings"
	"unicode"
)

// NoteMaxChars is the stored-note length cap, in runes.
const NoteMaxChars = 500

// tripleNewlineRegex matches runs of three or more newlines.
var tripleNewlineRegex = regexp.MustCompile(`\n{3,}`)

// SanitizeNote prepares raw note input for storage:
// strip control characters except newline and tab, collapse 3+ consecutive
// newlines to 2, trim outer whitespace, and truncate to NoteMaxChars runes.
// The result of sanitizing a sanitized string is unchanged.
func SanitizeNote(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsControl(r) && r != '\n' && r != '\t' {
			continue
		}
		b.WriteRune(r)
	}
	s := b.String()

	s = tripleNewlineRegex.ReplaceAllString(s, "\n\n")
	s = strings.TrimSpace(s)

	runes := []rune(s)
	if len(runes) > NoteMaxChars {
		// Truncation can expose trailing whitespace; trim again so the
		// operation stays idempotent.
		s = strings.TrimSpace(string(runes[:NoteMaxChars]))
	}
	return s
}

// HasNote reports whether a stored note counts as present: non-nil and
// non-blank after trimming.
func HasNote(note *string) bool {
	return note != nil && strings.TrimSpace(*note) != ""
}

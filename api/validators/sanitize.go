package validators

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// SanitizeString cleans free text from form fields such as a brand name or
// tagline: invalid UTF-8 and control characters are dropped, runs of
// whitespace collapse to one space, and the result is capped at maxLen runes.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) && !unicode.IsSpace(r) {
			return -1
		}
		return r
	}, strings.ToValidUTF8(input, ""))
	cleaned = strings.Join(strings.Fields(cleaned), " ")

	if maxLen > 0 && utf8.RuneCountInString(cleaned) > maxLen {
		cleaned = strings.TrimSpace(string([]rune(cleaned)[:maxLen]))
	}
	return cleaned
}

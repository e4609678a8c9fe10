package sanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// Text cleans a user supplied board name, description or column name: it
// removes invisible characters, strips HTML markup and trims the result.
func Text(input string) string {
	return strings.TrimSpace(FilterHTMLTags(FilterInvisibleCharacters(input)))
}

// FilterHTMLTags removes every HTML element from input. The text content of
// ordinary elements is kept; script and style bodies are dropped.
func FilterHTMLTags(input string) string {
	if input == "" {
		return input
	}
	// the policy escapes the text it keeps; board titles are plain text
	return html.UnescapeString(getPolicy().Sanitize(input))
}

// FilterInvisibleCharacters removes invisible or control characters that should not appear
// in user-facing titles or bodies. This includes:
// - Unicode tag characters: U+E0001, U+E0020–U+E007F
// - BiDi control characters: U+202A–U+202E, U+2066–U+2069
// - Hidden modifier characters: U+200B, U+200C, U+200E, U+200F, U+00AD, U+FEFF, U+180E, U+2060–U+2064
func FilterInvisibleCharacters(input string) string {
	if input == "" {
		return input
	}

	return strings.Map(func(r rune) rune {
		if shouldRemoveRune(r) {
			return -1
		}
		return r
	}, input)
}

func shouldRemoveRune(r rune) bool {
	switch r {
	case 0x200B, // ZERO WIDTH SPACE
		0x200C, // ZERO WIDTH NON-JOINER
		0x200E, // LEFT-TO-RIGHT MARK
		0x200F, // RIGHT-TO-LEFT MARK
		0x00AD, // SOFT HYPHEN
		0xFEFF, // ZERO WIDTH NO-BREAK SPACE
		0x180E, // MONGOLIAN VOWEL SEPARATOR
		0xE0001: // TAG
		return true
	}

	switch {
	case r >= 0xE0020 && r <= 0xE007F: // Unicode tags
		return true
	case r >= 0x202A && r <= 0x202E: // BiDi controls
		return true
	case r >= 0x2066 && r <= 0x2069: // BiDi isolates
		return true
	case r >= 0x2060 && r <= 0x2064: // Hidden modifiers
		return true
	}

	return false
}

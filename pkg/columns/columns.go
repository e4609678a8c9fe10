// Package columns turns the free-form `columns` action input into an ordered
// list of board column names.
package columns

import (
	"regexp"
	"strings"
)

// lineBreaks matches a run of one or more line breaks in either the Unix or
// the Windows convention.
var lineBreaks = regexp.MustCompile(`(?:\r?\n)+`)

// Parse splits raw into column names. Lines are split first, then each line is
// split on commas. Every fragment is trimmed and empty fragments are dropped,
// so "a, b\nc,d\n" yields [a b c d]. Order and duplicates are preserved.
// The result is never nil.
func Parse(raw string) []string {
	names := []string{}
	for _, line := range lineBreaks.Split(raw, -1) {
		for _, fragment := range strings.Split(line, ",") {
			if name := strings.TrimSpace(fragment); name != "" {
				names = append(names, name)
			}
		}
	}
	return names
}

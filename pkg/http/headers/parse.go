package headers

import "strings"

// ParseCommaSeparated splits a comma separated header value such as
// X-OAuth-Scopes, trimming each entry and dropping empty ones.
func ParseCommaSeparated(value string) []string {
	if value == "" {
		return []string{}
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

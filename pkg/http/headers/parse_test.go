package headers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommaSeparated(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: []string{},
		},
		{
			name:     "single value",
			input:    "repo",
			expected: []string{"repo"},
		},
		{
			name:     "scope header",
			input:    "repo, project, read:org",
			expected: []string{"repo", "project", "read:org"},
		},
		{
			name:     "empty values filtered",
			input:    "repo,,project,",
			expected: []string{"repo", "project"},
		},
		{
			name:     "only commas",
			input:    ",,,",
			expected: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ParseCommaSeparated(tt.input))
		})
	}
}

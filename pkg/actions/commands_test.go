package actions

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommands_Issue(t *testing.T) {
	tests := []struct {
		name     string
		issue    func(c *Commands)
		expected string
	}{
		{
			name:     "error",
			issue:    func(c *Commands) { c.Error("failed to create project") },
			expected: "::error::failed to create project\n",
		},
		{
			name:     "multi line message is escaped",
			issue:    func(c *Commands) { c.Warning("first\r\nsecond 100%") },
			expected: "::warning::first%0D%0Asecond 100%25\n",
		},
		{
			name:     "properties are sorted and escaped",
			issue:    func(c *Commands) { c.Issue("set-output", map[string]string{"name": "a:b,c", "extra": "x"}, "v") },
			expected: "::set-output extra=x,name=a%3Ab%2Cc::v\n",
		},
		{
			name:     "mask",
			issue:    func(c *Commands) { c.AddMask("ghs_secret") },
			expected: "::add-mask::ghs_secret\n",
		},
		{
			name:     "empty mask is ignored",
			issue:    func(c *Commands) { c.AddMask("") },
			expected: "",
		},
		{
			name: "group",
			issue: func(c *Commands) {
				c.Group("Create columns")
				c.EndGroup()
			},
			expected: "::group::Create columns\n::endgroup::\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var buf bytes.Buffer
			tc.issue(NewCommands(&buf))
			assert.Equal(t, tc.expected, buf.String())
		})
	}
}

// Package actions implements the parts of the GitHub Actions runner protocol
// the action needs: reading inputs, writing outputs and issuing workflow
// commands.
package actions

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Commands writes workflow commands (::name props::message) to the runner.
// It is safe for concurrent use.
type Commands struct {
	mu sync.Mutex
	w  io.Writer
}

func NewCommands(w io.Writer) *Commands {
	return &Commands{w: w}
}

// Issue writes a single workflow command.
func (c *Commands) Issue(command string, props map[string]string, message string) {
	var b strings.Builder
	b.WriteString("::")
	b.WriteString(command)
	if len(props) > 0 {
		keys := make([]string, 0, len(props))
		for k := range props {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteByte(' ')
		for i, k := range keys {
			if i > 0 {
				b.WriteByte(',')
			}
			fmt.Fprintf(&b, "%s=%s", k, escapeProperty(props[k]))
		}
	}
	b.WriteString("::")
	b.WriteString(escapeData(message))
	b.WriteByte('\n')

	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, b.String())
}

func (c *Commands) Error(message string)   { c.Issue("error", nil, message) }
func (c *Commands) Warning(message string) { c.Issue("warning", nil, message) }
func (c *Commands) Notice(message string)  { c.Issue("notice", nil, message) }
func (c *Commands) Debug(message string)   { c.Issue("debug", nil, message) }

// AddMask registers a secret so the runner redacts it from the log.
func (c *Commands) AddMask(secret string) {
	if secret == "" {
		return
	}
	c.Issue("add-mask", nil, secret)
}

// Group starts a collapsible log group; end it with EndGroup.
func (c *Commands) Group(name string) { c.Issue("group", nil, name) }
func (c *Commands) EndGroup()         { c.Issue("endgroup", nil, "") }

// Println writes a plain log line.
func (c *Commands) Println(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, _ = io.WriteString(c.w, line+"\n")
}

func escapeData(s string) string {
	s = strings.ReplaceAll(s, "%", "%25")
	s = strings.ReplaceAll(s, "\r", "%0D")
	return strings.ReplaceAll(s, "\n", "%0A")
}

func escapeProperty(s string) string {
	s = escapeData(s)
	s = strings.ReplaceAll(s, ":", "%3A")
	return strings.ReplaceAll(s, ",", "%2C")
}

package actions

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
)

// Outputs publishes step outputs. Values are appended to the file named by
// GITHUB_OUTPUT; without it the deprecated set-output command is used.
type Outputs struct {
	path     string
	commands *Commands
}

// NewOutputs returns Outputs writing to path, falling back to commands when
// path is empty.
func NewOutputs(path string, commands *Commands) *Outputs {
	return &Outputs{path: path, commands: commands}
}

// Set publishes one output value.
func (o *Outputs) Set(name, value string) error {
	if o.path == "" {
		o.commands.Issue("set-output", map[string]string{"name": name}, value)
		return nil
	}

	msg, err := formatOutput(name, value)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(o.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600) //#nosec G304 -- path is provided by the runner
	if err != nil {
		return fmt.Errorf("failed to open output file: %w", err)
	}
	defer f.Close()

	if _, err := io.WriteString(f, msg); err != nil {
		return fmt.Errorf("failed to write output %s: %w", name, err)
	}
	return nil
}

// formatOutput renders name=value, or the heredoc form when value spans
// several lines.
func formatOutput(name, value string) (string, error) {
	if !strings.ContainsAny(value, "\r\n") {
		return fmt.Sprintf("%s=%s\n", name, value), nil
	}

	delimiter := "ghadelimiter_" + uuid.NewString()
	if strings.Contains(name, delimiter) || strings.Contains(value, delimiter) {
		return "", fmt.Errorf("unexpected input: output %s contains the delimiter %s", name, delimiter)
	}
	return fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter), nil
}

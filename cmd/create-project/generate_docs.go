package main

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/noptexit/create-project-action/pkg/toolsets"
	"github.com/noptexit/create-project-action/pkg/tools"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var generateDocsCmd = &cobra.Command{
	Use:   "generate-docs",
	Short: "Generate documentation for inputs, outputs and tools",
	Long:  `Generate the automated sections of README.md from action.yml and the MCP tool definitions.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		actionPath, _ := cmd.Flags().GetString("action")
		readmePath, _ := cmd.Flags().GetString("readme")
		if err := generateReadmeDocs(actionPath, readmePath); err != nil {
			return fmt.Errorf("failed to generate docs for %s: %w", readmePath, err)
		}
		fmt.Printf("Successfully updated %s with automated documentation\n", readmePath)
		return nil
	},
}

func init() {
	generateDocsCmd.Flags().String("action", "action.yml", "Path to the action metadata file")
	generateDocsCmd.Flags().String("readme", "README.md", "Path to the README to update")
	rootCmd.AddCommand(generateDocsCmd)
}

// actionMetadata is the part of action.yml the docs are generated from.
type actionMetadata struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Inputs      map[string]struct {
		Description string `yaml:"description"`
		Required    bool   `yaml:"required"`
		Default     string `yaml:"default"`
	} `yaml:"inputs"`
	Outputs map[string]struct {
		Description string `yaml:"description"`
	} `yaml:"outputs"`
}

func readActionMetadata(path string) (*actionMetadata, error) {
	content, err := os.ReadFile(path) //#nosec G304 -- path is a command line flag
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	var meta actionMetadata
	if err := yaml.Unmarshal(content, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &meta, nil
}

func generateReadmeDocs(actionPath, readmePath string) error {
	meta, err := readActionMetadata(actionPath)
	if err != nil {
		return err
	}

	// #nosec G304 - readmePath is controlled by command line flag, not user input
	content, err := os.ReadFile(readmePath)
	if err != nil {
		return fmt.Errorf("failed to read README.md: %w", err)
	}

	// Stateless; no clients are needed to describe the tools
	tsg := tools.DefaultToolsetGroup(false, nil, nil)

	updatedContent := string(content)
	for _, section := range []struct {
		marker string
		doc    string
	}{
		{"INPUTS", generateInputsDoc(meta)},
		{"OUTPUTS", generateOutputsDoc(meta)},
		{"TOOLS", generateToolsDoc(tsg)},
	} {
		updatedContent, err = replaceSection(updatedContent, "START AUTOMATED "+section.marker, "END AUTOMATED "+section.marker, section.doc)
		if err != nil {
			return err
		}
	}

	if err := os.WriteFile(readmePath, []byte(updatedContent), 0600); err != nil {
		return fmt.Errorf("failed to write README.md: %w", err)
	}
	return nil
}

func generateInputsDoc(meta *actionMetadata) string {
	var buf strings.Builder
	buf.WriteString("| Input | Description | Required | Default |\n")
	buf.WriteString("| ----- | ----------- | -------- | ------- |\n")

	for _, name := range sortedKeys(meta.Inputs) {
		in := meta.Inputs[name]
		def := ""
		if in.Default != "" {
			def = fmt.Sprintf("`%s`", in.Default)
		}
		fmt.Fprintf(&buf, "| `%s` | %s | %t | %s |\n", name, tableCell(in.Description), in.Required, def)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func generateOutputsDoc(meta *actionMetadata) string {
	var buf strings.Builder
	buf.WriteString("| Output | Description |\n")
	buf.WriteString("| ------ | ----------- |\n")

	for _, name := range sortedKeys(meta.Outputs) {
		fmt.Fprintf(&buf, "| `%s` | %s |\n", name, tableCell(meta.Outputs[name].Description))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func generateToolsDoc(tsg *toolsets.ToolsetGroup) string {
	names := make([]string, 0, len(tsg.Toolsets))
	for name := range tsg.Toolsets {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf strings.Builder
	for _, name := range names {
		ts := tsg.Toolsets[name]
		var toolBuf strings.Builder
		for _, tool := range ts.GetAvailableTools() {
			writeToolDoc(&toolBuf, tool.Tool)
			toolBuf.WriteString("\n\n")
		}
		if toolBuf.Len() == 0 {
			continue
		}
		if buf.Len() > 0 {
			buf.WriteString("\n\n")
		}
		fmt.Fprintf(&buf, "<details>\n\n<summary>%s</summary>\n\n%s\n\n</details>", formatToolsetName(name), strings.TrimSuffix(toolBuf.String(), "\n\n"))
	}
	return buf.String()
}

func formatToolsetName(name string) string {
	parts := strings.Split(name, "_")
	for i, part := range parts {
		if len(part) > 0 {
			parts[i] = strings.ToUpper(string(part[0])) + part[1:]
		}
	}
	return strings.Join(parts, " ")
}

func writeToolDoc(buf *strings.Builder, tool mcp.Tool) {
	// Tool name only (using annotation name instead of verbose description)
	fmt.Fprintf(buf, "- **%s** - %s\n", tool.Name, tool.Annotations.Title)

	if len(tool.InputSchema.Properties) == 0 {
		buf.WriteString("  - No parameters required")
		return
	}

	paramNames := sortedKeys(tool.InputSchema.Properties)
	for i, propName := range paramNames {
		prop, _ := tool.InputSchema.Properties[propName].(map[string]any)
		requiredStr := "optional"
		if contains(tool.InputSchema.Required, propName) {
			requiredStr = "required"
		}
		typeStr, _ := prop["type"].(string)
		description, _ := prop["description"].(string)

		fmt.Fprintf(buf, "  - `%s`: %s (%s, %s)", propName, indentMultilineDescription(description, "    "), typeStr, requiredStr)
		if i < len(paramNames)-1 {
			buf.WriteString("\n")
		}
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}

// tableCell flattens text so it fits in one markdown table cell.
func tableCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return strings.ReplaceAll(s, "|", `\|`)
}

// indentMultilineDescription adds the specified indent to all lines after the first line.
// This ensures that multi-line descriptions maintain proper markdown list formatting.
func indentMultilineDescription(description, indent string) string {
	if !strings.Contains(description, "\n") {
		return description
	}
	lines := strings.Split(description, "\n")
	return strings.Join(lines, "\n"+indent)
}

func replaceSection(content, startMarker, endMarker, newContent string) (string, error) {
	start := fmt.Sprintf("<!-- %s -->", startMarker)
	end := fmt.Sprintf("<!-- %s -->", endMarker)

	startIdx := strings.Index(content, start)
	endIdx := strings.Index(content, end)
	if startIdx == -1 || endIdx == -1 || endIdx < startIdx {
		return "", fmt.Errorf("markers not found: %s / %s", start, end)
	}

	var buf strings.Builder
	buf.WriteString(content[:startIdx])
	buf.WriteString(start)
	buf.WriteString("\n")
	buf.WriteString(newContent)
	buf.WriteString("\n")
	buf.WriteString(content[endIdx:])
	return buf.String(), nil
}

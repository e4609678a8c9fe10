package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/noptexit/create-project-action/pkg/tools"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAction = `name: 'Create Project'
inputs:
  name:
    description: 'Name of the project'
    required: true
  columns:
    description: |
      Column names,
      one per line
  api:
    description: 'Projects API | backend'
    default: 'projects-v2'
outputs:
  project-url:
    description: 'URL of the project'
  project-id:
    description: 'ID of the project'
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func Test_GenerateInputsAndOutputsDoc(t *testing.T) {
	meta, err := readActionMetadata(writeFile(t, t.TempDir(), "action.yml", testAction))
	require.NoError(t, err)

	assert.Equal(t, "| Input | Description | Required | Default |\n"+
		"| ----- | ----------- | -------- | ------- |\n"+
		"| `api` | Projects API \\| backend | false | `projects-v2` |\n"+
		"| `columns` | Column names, one per line | false |  |\n"+
		"| `name` | Name of the project | true |  |", generateInputsDoc(meta))

	assert.Equal(t, "| Output | Description |\n"+
		"| ------ | ----------- |\n"+
		"| `project-id` | ID of the project |\n"+
		"| `project-url` | URL of the project |", generateOutputsDoc(meta))
}

func Test_GenerateToolsDoc(t *testing.T) {
	doc := generateToolsDoc(tools.DefaultToolsetGroup(false, nil, nil))

	assert.Contains(t, doc, "<summary>Projects</summary>")
	assert.Contains(t, doc, "- **parse_columns** - Parse column list\n")
	assert.Contains(t, doc, "- **create_project_board** - Create project board\n")
	assert.Contains(t, doc, "  - `owner`: Repository owner (string, required)")
	assert.Contains(t, doc, "  - `private`: Keep the project private (boolean, optional)")
}

func Test_ReplaceSection(t *testing.T) {
	content := "intro\n<!-- START AUTOMATED INPUTS -->\nold\n<!-- END AUTOMATED INPUTS -->\noutro\n"

	updated, err := replaceSection(content, "START AUTOMATED INPUTS", "END AUTOMATED INPUTS", "new")
	require.NoError(t, err)
	assert.Equal(t, "intro\n<!-- START AUTOMATED INPUTS -->\nnew\n<!-- END AUTOMATED INPUTS -->\noutro\n", updated)

	_, err = replaceSection(content, "START AUTOMATED TOOLS", "END AUTOMATED TOOLS", "new")
	assert.Error(t, err)
}

func Test_GenerateReadmeDocs(t *testing.T) {
	dir := t.TempDir()
	actionPath := writeFile(t, dir, "action.yml", testAction)
	readmePath := writeFile(t, dir, "README.md", "# Create Project\n"+
		"<!-- START AUTOMATED INPUTS -->\n<!-- END AUTOMATED INPUTS -->\n"+
		"<!-- START AUTOMATED OUTPUTS -->\n<!-- END AUTOMATED OUTPUTS -->\n"+
		"<!-- START AUTOMATED TOOLS -->\n<!-- END AUTOMATED TOOLS -->\n")

	require.NoError(t, generateReadmeDocs(actionPath, readmePath))

	b, err := os.ReadFile(readmePath)
	require.NoError(t, err)
	readme := string(b)
	assert.Contains(t, readme, "| `name` | Name of the project | true |  |")
	assert.Contains(t, readme, "| `project-url` | URL of the project |")
	assert.Contains(t, readme, "- **create_project_board**")

	// regenerating is stable
	require.NoError(t, generateReadmeDocs(actionPath, readmePath))
	again, err := os.ReadFile(readmePath)
	require.NoError(t, err)
	assert.Equal(t, readme, string(again))
}

func Test_WordSepNormalizeFunc(t *testing.T) {
	assert.Equal(t, pflag.NormalizedName("github-token"), wordSepNormalizeFunc(nil, "github_token"))
	assert.Equal(t, pflag.NormalizedName("on-column-error"), wordSepNormalizeFunc(nil, "on_column_error"))
	assert.Equal(t, pflag.NormalizedName("name"), wordSepNormalizeFunc(nil, "name"))
}

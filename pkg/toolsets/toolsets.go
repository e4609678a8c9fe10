package toolsets

import (
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type ToolsetDoesNotExistError struct {
	Name string
}

func (e *ToolsetDoesNotExistError) Error() string {
	return fmt.Sprintf("toolset %s does not exist", e.Name)
}

func (e *ToolsetDoesNotExistError) Is(target error) bool {
	_, ok := target.(*ToolsetDoesNotExistError)
	return ok
}

type ToolDoesNotExistError struct {
	Name string
}

func (e *ToolDoesNotExistError) Error() string {
	return fmt.Sprintf("tool %s does not exist", e.Name)
}

func NewServerTool(tool mcp.Tool, handler server.ToolHandlerFunc) server.ServerTool {
	return server.ServerTool{Tool: tool, Handler: handler}
}

// Toolset groups tools that are enabled together. Write tools are left out
// when the toolset is read-only.
type Toolset struct {
	Name        string
	Description string
	Enabled     bool
	readOnly    bool
	readTools   []server.ServerTool
	writeTools  []server.ServerTool
}

func NewToolset(name, description string) *Toolset {
	return &Toolset{Name: name, Description: description}
}

func (t *Toolset) SetReadOnly() {
	t.readOnly = true
}

// AddReadTools adds tools annotated as read-only. It panics on a tool
// without that annotation.
func (t *Toolset) AddReadTools(tools ...server.ServerTool) *Toolset {
	for _, tool := range tools {
		if !isReadOnly(tool.Tool) {
			panic(fmt.Sprintf("tool (%s) must be annotated as read-only", tool.Tool.Name))
		}
	}
	t.readTools = append(t.readTools, tools...)
	return t
}

// AddWriteTools adds tools that change state. They are dropped silently when
// the toolset is read-only.
func (t *Toolset) AddWriteTools(tools ...server.ServerTool) *Toolset {
	for _, tool := range tools {
		if isReadOnly(tool.Tool) {
			panic(fmt.Sprintf("tool (%s) is incorrectly annotated as read-only", tool.Tool.Name))
		}
	}
	if !t.readOnly {
		t.writeTools = append(t.writeTools, tools...)
	}
	return t
}

// GetActiveTools returns the tools to register: none when disabled.
func (t *Toolset) GetActiveTools() []server.ServerTool {
	if !t.Enabled {
		return nil
	}
	return t.GetAvailableTools()
}

func (t *Toolset) GetAvailableTools() []server.ServerTool {
	tools := append([]server.ServerTool(nil), t.readTools...)
	if t.readOnly {
		return tools
	}
	return append(tools, t.writeTools...)
}

func (t *Toolset) RegisterTools(s *server.MCPServer) {
	for _, tool := range t.GetActiveTools() {
		s.AddTool(tool.Tool, tool.Handler)
	}
}

func isReadOnly(tool mcp.Tool) bool {
	return tool.Annotations.ReadOnlyHint != nil && *tool.Annotations.ReadOnlyHint
}

type ToolsetGroup struct {
	Toolsets     map[string]*Toolset
	everythingOn bool
	readOnly     bool
}

func NewToolsetGroup(readOnly bool) *ToolsetGroup {
	return &ToolsetGroup{
		Toolsets: make(map[string]*Toolset),
		readOnly: readOnly,
	}
}

func (tg *ToolsetGroup) AddToolset(ts *Toolset) {
	if tg.readOnly {
		ts.SetReadOnly()
	}
	tg.Toolsets[ts.Name] = ts
}

func (tg *ToolsetGroup) IsEnabled(name string) bool {
	if tg.everythingOn {
		return true
	}
	ts, ok := tg.Toolsets[name]
	return ok && ts.Enabled
}

// EnableToolsets enables the named toolsets; "all" enables every toolset.
// Unknown names are an error.
func (tg *ToolsetGroup) EnableToolsets(names []string) error {
	for _, name := range names {
		if name == "all" {
			tg.everythingOn = true
			break
		}
	}
	if tg.everythingOn {
		for _, ts := range tg.Toolsets {
			ts.Enabled = true
		}
		return nil
	}

	for _, name := range names {
		ts, ok := tg.Toolsets[name]
		if !ok {
			return &ToolsetDoesNotExistError{Name: name}
		}
		ts.Enabled = true
	}
	return nil
}

func (tg *ToolsetGroup) RegisterAll(s *server.MCPServer) {
	for _, name := range tg.names() {
		tg.Toolsets[name].RegisterTools(s)
	}
}

// FindToolByName searches all toolsets, enabled or not, for a tool.
func (tg *ToolsetGroup) FindToolByName(toolName string) (*server.ServerTool, string, error) {
	for _, name := range tg.names() {
		for _, tool := range tg.Toolsets[name].GetAvailableTools() {
			if tool.Tool.Name == toolName {
				return &tool, name, nil
			}
		}
	}
	return nil, "", &ToolDoesNotExistError{Name: toolName}
}

// names returns the toolset names in a stable order.
func (tg *ToolsetGroup) names() []string {
	names := make([]string, 0, len(tg.Toolsets))
	for name := range tg.Toolsets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

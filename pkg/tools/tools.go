// Package tools exposes project board creation as MCP tools.
package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/go-viper/mapstructure/v2"
	"github.com/google/go-github/v79/github"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/noptexit/create-project-action/pkg/board"
	"github.com/noptexit/create-project-action/pkg/runner"
	"github.com/noptexit/create-project-action/pkg/toolsets"
)

// GetServiceFn returns the board service for the api backend named in a
// tool call; an empty api selects the server default.
type GetServiceFn func(ctx context.Context, api string) (board.Service, error)

// DefaultToolsets lists the toolsets enabled when none are requested.
var DefaultToolsets = []string{"projects"}

// createProjectArgs are the arguments of create_project_board.
type createProjectArgs struct {
	runner.Request `mapstructure:",squash"`
	API            string `mapstructure:"api"`
}

// boardResponse is returned by create_project_board.
type boardResponse struct {
	Project *board.Board   `json:"project"`
	Columns []board.Column `json:"columns"`
}

// CreateProjectBoard creates a project board with its columns.
func CreateProjectBoard(getService GetServiceFn, logger *slog.Logger) (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("create_project_board",
			mcp.WithDescription("Create a project board for a repository and add its columns, in order"),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:           "Create project board",
				ReadOnlyHint:    github.Ptr(false),
				DestructiveHint: github.Ptr(false),
			}),
			mcp.WithString("owner",
				mcp.Required(),
				mcp.Description("Repository owner"),
			),
			mcp.WithString("repo",
				mcp.Required(),
				mcp.Description("Repository name"),
			),
			mcp.WithString("name",
				mcp.Required(),
				mcp.Description("Project name"),
			),
			mcp.WithString("description",
				mcp.Description("Project description"),
			),
			mcp.WithString("columns",
				mcp.Description("Column names separated by line breaks or commas, e.g. \"To Do, In Progress, Done\""),
			),
			mcp.WithBoolean("private",
				mcp.Description("Keep the project private"),
			),
			mcp.WithString("on_column_error",
				mcp.Description("What to do when a column cannot be created: fail stops at the first error, continue attempts every column"),
				mcp.Enum(string(runner.PolicyFail), string(runner.PolicyContinue)),
			),
			mcp.WithString("api",
				mcp.Description("Projects API to use"),
				mcp.Enum("projects-v2", "classic"),
			),
		), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			var args createProjectArgs
			if err := decodeArgs(request.GetArguments(), &args); err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			for _, required := range []struct{ name, value string }{
				{"owner", args.Owner},
				{"repo", args.Repo},
				{"name", args.Name},
			} {
				if required.value == "" {
					return mcp.NewToolResultError(fmt.Sprintf("missing required parameter: %s", required.name)), nil
				}
			}

			svc, err := getService(ctx, args.API)
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			res := runner.Run(ctx, runner.Deps{Service: svc, Logger: logger}, args.Request)
			if !res.OK() {
				msg := res.Message()
				if res.Board != nil {
					// the board exists even though the call failed
					msg = fmt.Sprintf("%s; project %s was created: %s", msg, res.Board.Identifier(), res.Board.URL)
				}
				return mcp.NewToolResultError(msg), nil
			}

			r, err := json.Marshal(boardResponse{Project: res.Board, Columns: res.Columns})
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}
			return mcp.NewToolResultText(string(r)), nil
		}
}

// ParseColumns previews the column names a column list produces.
func ParseColumns() (tool mcp.Tool, handler server.ToolHandlerFunc) {
	return mcp.NewTool("parse_columns",
			mcp.WithDescription("Split a column list into the column names a project board would get"),
			mcp.WithToolAnnotation(mcp.ToolAnnotation{
				Title:        "Parse column list",
				ReadOnlyHint: github.Ptr(true),
			}),
			mcp.WithString("columns",
				mcp.Required(),
				mcp.Description("Column names separated by line breaks or commas"),
			),
		), func(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			raw, err := request.RequireString("columns")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}

			r, err := json.Marshal(runner.ColumnNames(raw))
			if err != nil {
				return nil, fmt.Errorf("failed to marshal response: %w", err)
			}
			return mcp.NewToolResultText(string(r)), nil
		}
}

func decodeArgs(in map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(in); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// DefaultToolsetGroup returns the toolsets served by this module.
func DefaultToolsetGroup(readOnly bool, getService GetServiceFn, logger *slog.Logger) *toolsets.ToolsetGroup {
	tsg := toolsets.NewToolsetGroup(readOnly)

	projects := toolsets.NewToolset("projects", "Create project boards and preview their columns")
	tsg.AddToolset(projects)
	projects.AddReadTools(toolsets.NewServerTool(ParseColumns()))
	projects.AddWriteTools(toolsets.NewServerTool(CreateProjectBoard(getService, logger)))

	return tsg
}

// NewServer returns an MCP server with the enabled toolsets registered.
func NewServer(version string, tsg *toolsets.ToolsetGroup, enabled []string) (*server.MCPServer, error) {
	if len(enabled) == 0 {
		enabled = DefaultToolsets
	}
	if err := tsg.EnableToolsets(enabled); err != nil {
		return nil, fmt.Errorf("failed to enable toolsets: %w", err)
	}

	s := server.NewMCPServer("create-project", version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
	)
	tsg.RegisterAll(s)
	return s, nil
}

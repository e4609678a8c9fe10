package board

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/google/go-github/v79/github"
	"github.com/noptexit/create-project-action/pkg/http/headers"
)

// Classic creates boards with the REST projects (classic) API, one request
// per column. It remains available on GitHub Enterprise Server versions that
// still ship classic projects.
type Classic struct {
	client *github.Client
}

var _ Service = (*Classic)(nil)

func NewClassic(client *github.Client) *Classic {
	return &Classic{client: client}
}

type classicProjectRequest struct {
	Name    string  `json:"name"`
	Body    *string `json:"body,omitempty"`
	Private *bool   `json:"private,omitempty"`
}

type classicProject struct {
	ID      int64  `json:"id"`
	NodeID  string `json:"node_id"`
	Number  int    `json:"number"`
	HTMLURL string `json:"html_url"`
	Name    string `json:"name"`
}

type classicColumnRequest struct {
	Name string `json:"name"`
}

type classicColumn struct {
	ID     int64  `json:"id"`
	NodeID string `json:"node_id"`
	Name   string `json:"name"`
}

// CreateBoard creates a project for opts.Owner/opts.Repo.
func (c *Classic) CreateBoard(ctx context.Context, opts Options) (*Board, error) {
	body := &classicProjectRequest{Name: opts.Name}
	if opts.Description != "" {
		body.Body = github.Ptr(opts.Description)
	}
	if opts.Private {
		body.Private = github.Ptr(true)
	}

	u := fmt.Sprintf("repos/%v/%v/projects", opts.Owner, opts.Repo)
	project := &classicProject{}
	resp, err := c.do(ctx, u, body, project)
	if err != nil {
		return nil, apiError("classic projects API", resp, err)
	}

	return &Board{
		ID:     project.ID,
		NodeID: project.NodeID,
		Number: project.Number,
		URL:    project.HTMLURL,
		Name:   project.Name,
	}, nil
}

// CreateColumn appends a column to b.
func (c *Classic) CreateColumn(ctx context.Context, b *Board, name string) (*Column, error) {
	if b == nil || b.ID == 0 {
		return nil, errors.New("project has no numeric ID")
	}

	u := fmt.Sprintf("projects/%v/columns", b.ID)
	column := &classicColumn{}
	resp, err := c.do(ctx, u, &classicColumnRequest{Name: name}, column)
	if err != nil {
		return nil, apiError("classic projects API", resp, err)
	}

	return &Column{ID: column.ID, NodeID: column.NodeID, Name: column.Name}, nil
}

func (c *Classic) do(ctx context.Context, u string, body, v any) (*github.Response, error) {
	req, err := c.client.NewRequest(http.MethodPost, u, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headers.AcceptHeader, headers.MediaTypeProjectsPreview)

	return c.client.Do(ctx, req, v)
}

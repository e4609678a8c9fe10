// Package board creates project boards and their columns on GitHub.
//
// Two backends implement Service: Classic talks to the REST projects API,
// ProjectsV2 to the GraphQL Projects API where columns are the options of a
// single select field.
package board

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/go-github/v79/github"
	"github.com/noptexit/create-project-action/pkg/http/mark"
)

// ErrColumnFieldExists is returned by ProjectsV2.CreateColumn once the
// board's column field has been created; options cannot be appended to it.
var ErrColumnFieldExists = errors.New("column field already created for this project")

// ErrDuplicateColumns is returned by ProjectsV2.CreateColumns when names
// repeat; a single select field cannot hold two options with the same name.
var ErrDuplicateColumns = errors.New("column names must be unique for Projects V2")

// Options describe the board to create.
type Options struct {
	Owner       string
	Repo        string
	Name        string
	Description string
	Private     bool
}

// Board is a created project.
type Board struct {
	// ID is the numeric REST identifier; zero for Projects V2.
	ID     int64  `json:"id,omitempty"`
	NodeID string `json:"node_id"`
	Number int    `json:"number"`
	URL    string `json:"url"`
	Name   string `json:"name"`
}

// Identifier is the value published as the project-id output.
func (b *Board) Identifier() string {
	if b.ID != 0 {
		return fmt.Sprint(b.ID)
	}
	return b.NodeID
}

// Column is a created column. For Projects V2 it is a single select option
// and NodeID holds the option ID.
type Column struct {
	ID     int64  `json:"id,omitempty"`
	NodeID string `json:"node_id"`
	Name   string `json:"name"`
}

// Service creates boards and columns.
type Service interface {
	CreateBoard(ctx context.Context, opts Options) (*Board, error)
	CreateColumn(ctx context.Context, b *Board, name string) (*Column, error)
}

// BatchColumnCreator is implemented by services that create all columns of a
// board in one call. Columns are created in the order given.
type BatchColumnCreator interface {
	CreateColumns(ctx context.Context, b *Board, names []string) ([]Column, error)
}

// apiError wraps err with msg and marks it with the kind matching the
// response status.
func apiError(msg string, resp *github.Response, err error) error {
	err = fmt.Errorf("%s: %w", msg, err)
	if resp == nil {
		return err
	}
	return mark.FromResponse(resp.Response, err)
}

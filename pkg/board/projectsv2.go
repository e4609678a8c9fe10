package board

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/go-github/v79/github"
	"github.com/shurcooL/githubv4"
)

// DefaultColumnField is the name of the single select field holding the
// columns of a Projects V2 board.
const DefaultColumnField = "Column"

// ProjectsV2 creates boards with the GraphQL Projects API. The board is
// owned by the repository owner and linked to the repository; its columns
// are the options of one single select field, in order. Group the board
// view by that field to lay the columns out.
type ProjectsV2 struct {
	gql        *githubv4.Client
	repos      *RepoCache
	fieldName  string
	logger     *slog.Logger
	mu         sync.Mutex
	withFields map[string]bool
}

var (
	_ Service            = (*ProjectsV2)(nil)
	_ BatchColumnCreator = (*ProjectsV2)(nil)
)

// ProjectsV2Option configures ProjectsV2.
type ProjectsV2Option func(*ProjectsV2)

// WithColumnField sets the name of the field created for the columns.
func WithColumnField(name string) ProjectsV2Option {
	return func(p *ProjectsV2) {
		if name != "" {
			p.fieldName = name
		}
	}
}

// WithRepoCache shares a repository cache between services.
func WithRepoCache(c *RepoCache) ProjectsV2Option {
	return func(p *ProjectsV2) {
		if c != nil {
			p.repos = c
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(logger *slog.Logger) ProjectsV2Option {
	return func(p *ProjectsV2) {
		p.logger = logger
	}
}

// NewProjectsV2 returns a ProjectsV2 service. client resolves repository
// node IDs, gql performs the mutations.
func NewProjectsV2(client *github.Client, gql *githubv4.Client, opts ...ProjectsV2Option) *ProjectsV2 {
	p := &ProjectsV2{
		gql:        gql,
		fieldName:  DefaultColumnField,
		logger:     slog.New(slog.DiscardHandler),
		withFields: map[string]bool{},
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	if p.repos == nil {
		p.repos = NewRepoCache(client, WithCacheLogger(p.logger))
	}
	return p
}

// CreateBoard creates the project, links it to the repository and applies
// the description and visibility. Projects start private, so the
// visibility is only changed for public boards.
func (p *ProjectsV2) CreateBoard(ctx context.Context, opts Options) (*Board, error) {
	repo, err := p.repos.Lookup(ctx, opts.Owner, opts.Repo)
	if err != nil {
		return nil, err
	}

	var created struct {
		CreateProjectV2 struct {
			ProjectV2 struct {
				ID     githubv4.ID
				Number githubv4.Int
				Title  githubv4.String
				URL    githubv4.String
			}
		} `graphql:"createProjectV2(input: $input)"`
	}

	repoID := githubv4.ID(repo.NodeID)
	input := githubv4.CreateProjectV2Input{
		OwnerID:      githubv4.ID(repo.OwnerNodeID),
		Title:        githubv4.String(opts.Name),
		RepositoryID: &repoID,
	}
	if err := p.gql.Mutate(ctx, &created, input, nil); err != nil {
		return nil, fmt.Errorf("createProjectV2: %w", err)
	}

	project := created.CreateProjectV2.ProjectV2
	b := &Board{
		NodeID: fmt.Sprint(project.ID),
		Number: int(project.Number),
		URL:    string(project.URL),
		Name:   string(project.Title),
	}
	p.logger.Debug("created project", "node_id", b.NodeID, "owner", repo.OwnerLogin, "owner_type", repo.OwnerType)

	update := githubv4.UpdateProjectV2Input{ProjectID: project.ID}
	if opts.Description != "" {
		update.ShortDescription = githubv4.NewString(githubv4.String(opts.Description))
	}
	if !opts.Private {
		update.Public = githubv4.NewBoolean(true)
	}
	if update.ShortDescription == nil && update.Public == nil {
		return b, nil
	}

	var updated struct {
		UpdateProjectV2 struct {
			ProjectV2 struct {
				ID githubv4.ID
			}
		} `graphql:"updateProjectV2(input: $input)"`
	}
	if err := p.gql.Mutate(ctx, &updated, update, nil); err != nil {
		return b, fmt.Errorf("failed to set description and visibility of project %s: %w", b.NodeID, err)
	}
	return b, nil
}

// CreateColumns creates the column field with one option per name.
func (p *ProjectsV2) CreateColumns(ctx context.Context, b *Board, names []string) ([]Column, error) {
	if len(names) == 0 {
		return []Column{}, nil
	}
	if b == nil || b.NodeID == "" {
		return nil, errors.New("project has no node ID")
	}
	if dups := duplicates(names); len(dups) > 0 {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateColumns, dups)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.withFields[b.NodeID] {
		return nil, ErrColumnFieldExists
	}

	options := make([]githubv4.ProjectV2SingleSelectFieldOptionInput, 0, len(names))
	for _, name := range names {
		options = append(options, githubv4.ProjectV2SingleSelectFieldOptionInput{
			Name:        githubv4.String(name),
			Color:       githubv4.ProjectV2SingleSelectFieldOptionColorGray,
			Description: githubv4.String(""),
		})
	}

	var created struct {
		CreateProjectV2Field struct {
			ProjectV2Field struct {
				ProjectV2SingleSelectField struct {
					ID      githubv4.ID
					Options []struct {
						ID   githubv4.String
						Name githubv4.String
					}
				} `graphql:"... on ProjectV2SingleSelectField"`
			}
		} `graphql:"createProjectV2Field(input: $input)"`
	}

	input := githubv4.CreateProjectV2FieldInput{
		ProjectID:           githubv4.ID(b.NodeID),
		DataType:            githubv4.ProjectV2CustomFieldTypeSingleSelect,
		Name:                githubv4.String(p.fieldName),
		SingleSelectOptions: &options,
	}
	if err := p.gql.Mutate(ctx, &created, input, nil); err != nil {
		return nil, fmt.Errorf("createProjectV2Field %q: %w", p.fieldName, err)
	}
	p.withFields[b.NodeID] = true

	field := created.CreateProjectV2Field.ProjectV2Field.ProjectV2SingleSelectField
	columns := make([]Column, 0, len(field.Options))
	for _, o := range field.Options {
		columns = append(columns, Column{NodeID: string(o.ID), Name: string(o.Name)})
	}
	return columns, nil
}

// CreateColumn creates the column field with a single option. It can be
// called once per board; use CreateColumns for several columns.
func (p *ProjectsV2) CreateColumn(ctx context.Context, b *Board, name string) (*Column, error) {
	columns, err := p.CreateColumns(ctx, b, []string{name})
	if err != nil {
		return nil, err
	}
	if len(columns) == 0 {
		return &Column{Name: name}, nil
	}
	return &columns[0], nil
}

// duplicates returns each name that occurs more than once, in order of its
// second occurrence.
func duplicates(names []string) []string {
	seen := make(map[string]int, len(names))
	var dups []string
	for _, n := range names {
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}
	return dups
}

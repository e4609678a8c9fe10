// Package runner creates a project board and its columns from a Request.
package runner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/noptexit/create-project-action/pkg/board"
	"github.com/noptexit/create-project-action/pkg/columns"
	"github.com/noptexit/create-project-action/pkg/sanitize"
)

// Policy decides what happens when a column cannot be created.
type Policy string

const (
	// PolicyFail stops at the first failed column.
	PolicyFail Policy = "fail"
	// PolicyContinue attempts every column and reports all failures.
	PolicyContinue Policy = "continue"
)

// ParsePolicy parses an on-column-error value. Empty means PolicyFail.
func ParsePolicy(s string) (Policy, error) {
	switch p := Policy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PolicyFail, nil
	case PolicyFail, PolicyContinue:
		return p, nil
	default:
		return "", fmt.Errorf("invalid column error policy %q: must be %q or %q", s, PolicyFail, PolicyContinue)
	}
}

// Request describes one run.
type Request struct {
	Owner       string `mapstructure:"owner"`
	Repo        string `mapstructure:"repo"`
	Name        string `mapstructure:"name"`
	Description string `mapstructure:"description"`
	// Columns is the raw column list, separated by line breaks or commas.
	Columns      string `mapstructure:"columns"`
	Private      bool   `mapstructure:"private"`
	ColumnErrors Policy `mapstructure:"on_column_error"`
}

// Deps are the collaborators of Run.
type Deps struct {
	Service board.Service
	Logger  *slog.Logger
}

// ColumnError is the failure to create one column.
type ColumnError struct {
	Name string
	Err  error
}

func (e *ColumnError) Error() string {
	return fmt.Sprintf("failed to create column %q: %v", e.Name, e.Err)
}

func (e *ColumnError) Unwrap() error { return e.Err }

// Result is the outcome of Run. It is a failure when Err is set; Board is
// still populated when the board was created before the failure.
type Result struct {
	Board        *board.Board
	Columns      []board.Column
	Err          error
	ColumnErrors []ColumnError
}

func (r Result) OK() bool { return r.Err == nil }

// Message is the text reported to the user for a failed run.
func (r Result) Message() string {
	if r.Err == nil {
		return ""
	}
	return r.Err.Error()
}

func failure(err error) Result {
	return Result{Err: err}
}

// Run creates the board described by req, then its columns in the order
// they appear in req.Columns. It never panics; every failure is returned in
// the Result.
func Run(ctx context.Context, deps Deps, req Request) Result {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if deps.Service == nil {
		return failure(errors.New("no board service configured"))
	}

	policy, err := ParsePolicy(string(req.ColumnErrors))
	if err != nil {
		return failure(err)
	}

	name := visible(req.Name)
	if name == "" {
		return failure(errors.New("project name is empty"))
	}
	names := ColumnNames(req.Columns)

	logger.Info("creating project", "name", name, "owner", req.Owner, "repo", req.Repo, "columns", len(names))
	b, err := deps.Service.CreateBoard(ctx, board.Options{
		Owner:       req.Owner,
		Repo:        req.Repo,
		Name:        name,
		Description: sanitize.Text(req.Description),
		Private:     req.Private,
	})
	if err != nil {
		// a board can come back with an error when only its settings failed
		return Result{Board: b, Err: fmt.Errorf("failed to create project: %w", err)}
	}
	logger.Info("created project", "id", b.Identifier(), "url", b.URL)

	if len(names) == 0 {
		return Result{Board: b, Columns: []board.Column{}}
	}

	if batch, ok := deps.Service.(board.BatchColumnCreator); ok {
		if policy == PolicyContinue {
			logger.Debug("on-column-error does not apply to batch column creation", "policy", policy)
		}
		return createBatch(ctx, logger, batch, b, names)
	}
	return createEach(ctx, logger, deps.Service, b, names, policy)
}

// ColumnNames parses the column list and strips invisible characters from
// each name, dropping names that held nothing else. Markup is kept as typed.
func ColumnNames(raw string) []string {
	parsed := columns.Parse(raw)
	names := make([]string, 0, len(parsed))
	for _, n := range parsed {
		if n = visible(n); n != "" {
			names = append(names, n)
		}
	}
	return names
}

func visible(s string) string {
	return strings.TrimSpace(sanitize.FilterInvisibleCharacters(s))
}

func createBatch(ctx context.Context, logger *slog.Logger, batch board.BatchColumnCreator, b *board.Board, names []string) Result {
	created, err := batch.CreateColumns(ctx, b, names)
	if err != nil {
		colErrs := make([]ColumnError, 0, len(names))
		for _, n := range names {
			colErrs = append(colErrs, ColumnError{Name: n, Err: err})
		}
		logger.Error("failed to create columns", "columns", strings.Join(names, ", "), "error", err)
		return Result{
			Board:        b,
			Columns:      []board.Column{},
			Err:          fmt.Errorf("failed to create columns %s: %w", quoteAll(names), err),
			ColumnErrors: colErrs,
		}
	}
	for _, c := range created {
		logger.Debug("created column", "name", c.Name)
	}
	return Result{Board: b, Columns: created}
}

func createEach(ctx context.Context, logger *slog.Logger, svc board.Service, b *board.Board, names []string, policy Policy) Result {
	res := Result{Board: b, Columns: make([]board.Column, 0, len(names))}

	for _, n := range names {
		c, err := svc.CreateColumn(ctx, b, n)
		if err != nil {
			colErr := ColumnError{Name: n, Err: err}
			res.ColumnErrors = append(res.ColumnErrors, colErr)
			logger.Error("failed to create column", "name", n, "error", err)
			if policy == PolicyFail {
				res.Err = &colErr
				return res
			}
			continue
		}
		logger.Debug("created column", "name", c.Name)
		res.Columns = append(res.Columns, *c)
	}

	if len(res.ColumnErrors) > 0 {
		errs := make([]error, 0, len(res.ColumnErrors))
		failed := make([]string, 0, len(res.ColumnErrors))
		for i := range res.ColumnErrors {
			errs = append(errs, &res.ColumnErrors[i])
			failed = append(failed, res.ColumnErrors[i].Name)
		}
		res.Err = fmt.Errorf("failed to create %d of %d columns (%s): %w",
			len(failed), len(names), quoteAll(failed), errors.Join(errs...))
	}
	return res
}

func quoteAll(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = fmt.Sprintf("%q", n)
	}
	return strings.Join(quoted, ", ")
}

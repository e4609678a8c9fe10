// Package action wires the action inputs to the board service and reports
// the result through the runner protocol.
package action

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/google/go-github/v79/github"
	"github.com/noptexit/create-project-action/pkg/actions"
	"github.com/noptexit/create-project-action/pkg/board"
	"github.com/noptexit/create-project-action/pkg/http/transport"
	"github.com/noptexit/create-project-action/pkg/runner"
	"github.com/noptexit/create-project-action/pkg/scopes"
	"github.com/noptexit/create-project-action/pkg/utils"
	"github.com/shurcooL/githubv4"
)

// Backends selectable with the api input.
const (
	APIProjectsV2 = "projects-v2"
	APIClassic    = "classic"
)

// Output names as declared in action.yml.
const (
	OutputProjectID     = "project-id"
	OutputProjectNumber = "project-number"
	OutputProjectURL    = "project-url"
	OutputProjectNodeID = "project-node-id"
)

// ErrFailed is returned by Run once the failure has been reported.
var ErrFailed = errors.New("action failed")

type Config struct {
	// Version is reported in the user agent.
	Version string
	Inputs  actions.Inputs
	// Stdout receives workflow commands and log lines.
	Stdout io.Writer
	// OutputPath is the GITHUB_OUTPUT file; empty falls back to set-output.
	OutputPath string
	// HTTPClient overrides the authenticated client, mostly for tests.
	HTTPClient *http.Client
}

// Clients are the API clients for one server.
type Clients struct {
	HTTP    *http.Client
	REST    *github.Client
	GraphQL *githubv4.Client
	APIHost utils.APIHost
}

// NewClients builds REST and GraphQL clients for serverURL sharing
// httpClient. A nil httpClient authenticates with token.
func NewClients(serverURL, token, version string, httpClient *http.Client) (*Clients, error) {
	apiHost, err := utils.NewAPIHost(serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse API host: %w", err)
	}

	agent := fmt.Sprintf("create-project-action/%s", version)
	if httpClient == nil {
		httpClient = transport.NewHTTPClient(token, agent)
	}

	restURL, _ := apiHost.BaseRESTURL(context.Background())
	gqlURL, _ := apiHost.GraphqlURL(context.Background())

	rest := github.NewClient(httpClient)
	rest.UserAgent = agent
	rest.BaseURL = restURL
	rest.UploadURL = restURL

	return &Clients{
		HTTP:    httpClient,
		REST:    rest,
		GraphQL: githubv4.NewEnterpriseClient(gqlURL.String(), httpClient),
		APIHost: apiHost,
	}, nil
}

// NewService returns the board service selected by api.
func NewService(api, columnField string, clients *Clients, logger *slog.Logger) (board.Service, error) {
	switch strings.ToLower(api) {
	case "", APIProjectsV2:
		return board.NewProjectsV2(clients.REST, clients.GraphQL,
			board.WithColumnField(columnField),
			board.WithLogger(logger),
		), nil
	case APIClassic:
		return board.NewClassic(clients.REST), nil
	default:
		return nil, fmt.Errorf("invalid api %q: must be %q or %q", api, APIProjectsV2, APIClassic)
	}
}

// requiredScopes lists the classic token scopes each backend needs.
func requiredScopes(api string) []scopes.Scope {
	if strings.EqualFold(api, APIClassic) {
		return []scopes.Scope{scopes.Repo}
	}
	return []scopes.Scope{scopes.Project}
}

// ParseLevel parses a log-level input.
func ParseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}

// Run performs the action. Failures are reported as an error command and
// ErrFailed is returned; the caller only needs to exit non-zero.
func Run(ctx context.Context, cfg Config) error {
	stdout := cfg.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	commands := actions.NewCommands(stdout)
	in := cfg.Inputs
	commands.AddMask(in.Token)

	fail := func(err error) error {
		commands.Error(err.Error())
		return ErrFailed
	}

	level, err := ParseLevel(in.LogLevel)
	if err != nil {
		return fail(err)
	}
	logger := slog.New(actions.NewLogHandler(commands, level))

	policy, err := runner.ParsePolicy(in.OnColumnError)
	if err != nil {
		return fail(err)
	}

	clients, err := NewClients(in.ServerURL, in.Token, cfg.Version, cfg.HTTPClient)
	if err != nil {
		return fail(err)
	}
	svc, err := NewService(in.API, in.ColumnField, clients, logger)
	if err != nil {
		return fail(err)
	}

	if utils.ParseTokenType(in.Token).HasOAuthScopes() {
		checkScopes(ctx, logger, clients, in.Token, requiredScopes(in.API))
	}

	commands.Group("Create project")
	res := runner.Run(ctx, runner.Deps{Service: svc, Logger: logger}, runner.Request{
		Owner:        in.Owner,
		Repo:         in.Repo,
		Name:         in.Name,
		Description:  in.Description,
		Columns:      in.Columns,
		Private:      in.Private,
		ColumnErrors: policy,
	})
	commands.EndGroup()

	if res.Board != nil {
		if err := WriteOutputs(actions.NewOutputs(cfg.OutputPath, commands), res.Board); err != nil {
			return fail(err)
		}
	}
	if !res.OK() {
		return fail(res.Err)
	}

	logger.Info(fmt.Sprintf("created project %q with %d columns", res.Board.Name, len(res.Columns)), "url", res.Board.URL)
	return nil
}

// WriteOutputs publishes the board's identifiers.
func WriteOutputs(outputs *actions.Outputs, b *board.Board) error {
	for _, o := range []struct{ name, value string }{
		{OutputProjectID, b.Identifier()},
		{OutputProjectNumber, strconv.Itoa(b.Number)},
		{OutputProjectURL, b.URL},
		{OutputProjectNodeID, b.NodeID},
	} {
		if err := outputs.Set(o.name, o.value); err != nil {
			return err
		}
	}
	return nil
}

// checkScopes warns when a classic token lacks scopes the backend needs.
// The check never fails the run: the API reports the definitive error.
func checkScopes(ctx context.Context, logger *slog.Logger, clients *Clients, token string, required []scopes.Scope) {
	fetcher := scopes.NewFetcher(clients.APIHost, scopes.FetcherOptions{HTTPClient: clients.HTTP})
	granted, err := fetcher.FetchTokenScopes(ctx, token)
	if err != nil {
		logger.Debug("failed to fetch token scopes", "error", err)
		return
	}
	if missing := granted.Missing(required...); len(missing) > 0 {
		logger.Warn("token is missing scopes", "missing", strings.Join(scopes.ToStringSlice(missing...), ","))
	}
}

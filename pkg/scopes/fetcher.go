package scopes

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/noptexit/create-project-action/pkg/http/headers"
	"github.com/noptexit/create-project-action/pkg/utils"
)

// DefaultFetchTimeout is the default timeout for scope fetching requests.
const DefaultFetchTimeout = 10 * time.Second

// FetcherOptions configures the scope fetcher.
type FetcherOptions struct {
	// HTTPClient is the HTTP client to use for requests.
	// If nil, a default client with DefaultFetchTimeout is used.
	HTTPClient *http.Client
}

// Fetcher retrieves token scopes from GitHub's API.
// It uses an HTTP HEAD request to minimize bandwidth since we only need headers.
type Fetcher struct {
	client  *http.Client
	apiHost utils.APIHostResolver
}

// NewFetcher creates a new scope fetcher with the given options.
func NewFetcher(apiHost utils.APIHostResolver, opts FetcherOptions) *Fetcher {
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: DefaultFetchTimeout}
	}

	return &Fetcher{
		client:  client,
		apiHost: apiHost,
	}
}

// FetchTokenScopes retrieves the OAuth scopes for a token by making an HTTP HEAD
// request to the GitHub API and parsing the X-OAuth-Scopes header.
//
// Fine-grained PATs and GitHub App tokens don't return the header, so an
// empty set is returned for those tokens.
func (f *Fetcher) FetchTokenScopes(ctx context.Context, token string) (ScopeSet, error) {
	apiHostURL, err := f.apiHost.BaseRESTURL(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get API host URL: %w", err)
	}

	endpoint, err := url.JoinPath(apiHostURL.String(), "/")
	if err != nil {
		return nil, fmt.Errorf("failed to construct API URL: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodHead, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set(headers.AuthorizationHeader, "Bearer "+token)
	req.Header.Set(headers.AcceptHeader, headers.MediaTypeGitHubJSON)
	req.Header.Set(headers.GitHubAPIVersionHeader, headers.GitHubAPIVersion)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch scopes: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("invalid or expired token")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return ParseScopeHeader(resp.Header.Get(headers.OAuthScopesHeader)), nil
}

// ParseScopeHeader parses the X-OAuth-Scopes header value into a ScopeSet.
func ParseScopeHeader(header string) ScopeSet {
	var scopes []Scope
	for _, s := range headers.ParseCommaSeparated(header) {
		scopes = append(scopes, Scope(s))
	}
	return NewScopeSet(scopes...)
}

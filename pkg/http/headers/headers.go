package headers

const (
	// AuthorizationHeader is a standard HTTP Header.
	AuthorizationHeader = "Authorization"
	// ContentTypeHeader is a standard HTTP Header.
	ContentTypeHeader = "Content-Type"
	// AcceptHeader is a standard HTTP Header.
	AcceptHeader = "Accept"
	// UserAgentHeader is a standard HTTP Header.
	UserAgentHeader = "User-Agent"

	// ContentTypeJSON is the standard MIME type for JSON.
	ContentTypeJSON = "application/json"

	// GitHub-specific headers.

	// GitHubAPIVersionHeader is the header used to specify the GitHub API version.
	GitHubAPIVersionHeader = "X-GitHub-Api-Version"
	// OAuthScopesHeader lists the OAuth scopes granted to a classic token.
	OAuthScopesHeader = "X-OAuth-Scopes"
	// GitHubRequestIDHeader identifies a request in GitHub's logs.
	GitHubRequestIDHeader = "X-GitHub-Request-Id"

	// GitHubAPIVersion is the REST API version this action is written against.
	GitHubAPIVersion = "2022-11-28"
	// MediaTypeGitHubJSON is the default REST media type.
	MediaTypeGitHubJSON = "application/vnd.github+json"
	// MediaTypeProjectsPreview is required by the classic projects endpoints.
	MediaTypeProjectsPreview = "application/vnd.github.inertia-preview+json"
)

package utils //nolint:revive //TODO: figure out a better name for this package

import (
	"regexp"
	"strings"
)

type TokenType int

const (
	TokenTypeUnknown TokenType = iota
	TokenTypePersonalAccessToken
	TokenTypeFineGrainedPersonalAccessToken
	TokenTypeOAuthAccessToken
	TokenTypeUserToServerGitHubAppToken
	TokenTypeServerToServerGitHubAppToken
)

var supportedGitHubPrefixes = map[string]TokenType{
	"ghp_":        TokenTypePersonalAccessToken,            // Personal access token (classic)
	"github_pat_": TokenTypeFineGrainedPersonalAccessToken, // Fine-grained personal access token
	"gho_":        TokenTypeOAuthAccessToken,               // OAuth access token
	"ghu_":        TokenTypeUserToServerGitHubAppToken,     // User access token for a GitHub App
	"ghs_":        TokenTypeServerToServerGitHubAppToken,   // Installation access token, including the workflow GITHUB_TOKEN
}

// oldPatternRegexp is the regular expression for the old pattern of the token.
// Until 2021, GitHub API tokens did not have an identifiable prefix. They
// were 40 characters long and only contained the characters a-f and 0-9.
var oldPatternRegexp = regexp.MustCompile(`\A[a-f0-9]{40}\z`)

// ParseTokenType identifies the kind of token from its prefix.
func ParseTokenType(token string) TokenType {
	for prefix, tokenType := range supportedGitHubPrefixes {
		if strings.HasPrefix(token, prefix) {
			return tokenType
		}
	}

	if oldPatternRegexp.MatchString(token) {
		return TokenTypePersonalAccessToken
	}

	return TokenTypeUnknown
}

// HasOAuthScopes reports whether GitHub returns X-OAuth-Scopes for this kind
// of token. Fine-grained and GitHub App tokens carry permissions instead.
func (t TokenType) HasOAuthScopes() bool {
	return t == TokenTypePersonalAccessToken || t == TokenTypeOAuthAccessToken
}

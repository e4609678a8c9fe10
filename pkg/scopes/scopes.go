package scopes

// Scope represents a GitHub OAuth scope.
// See https://docs.github.com/en/apps/oauth-apps/building-oauth-apps/scopes-for-oauth-apps
type Scope string

const (
	// Repo grants full control of private repositories
	Repo Scope = "repo"

	// PublicRepo grants access to public repositories
	PublicRepo Scope = "public_repo"

	// WriteOrg grants write access to organization membership, teams and classic projects
	WriteOrg Scope = "write:org"

	// AdminOrg grants full control of organizations and teams
	AdminOrg Scope = "admin:org"

	// ReadProject grants read-only access to projects
	ReadProject Scope = "read:project"

	// Project grants full control of projects
	Project Scope = "project"
)

// ScopeHierarchy maps a scope to the narrower scopes it implies.
var ScopeHierarchy = map[Scope][]Scope{
	Repo:     {PublicRepo},
	AdminOrg: {WriteOrg},
	Project:  {ReadProject},
}

// ScopeSet represents a set of OAuth scopes.
type ScopeSet map[Scope]bool

// NewScopeSet creates a new ScopeSet from the given scopes, including every
// scope implied by them.
func NewScopeSet(scopes ...Scope) ScopeSet {
	set := make(ScopeSet)
	for _, scope := range scopes {
		set[scope] = true
		for _, implied := range ScopeHierarchy[scope] {
			set[implied] = true
		}
	}
	return set
}

// Missing returns the required scopes absent from s, in the order given.
func (s ScopeSet) Missing(required ...Scope) []Scope {
	var missing []Scope
	for _, scope := range required {
		if !s[scope] {
			missing = append(missing, scope)
		}
	}
	return missing
}

// ToStringSlice converts a slice of Scopes to a slice of strings.
func ToStringSlice(scopes ...Scope) []string {
	result := make([]string, len(scopes))
	for i, scope := range scopes {
		result[i] = string(scope)
	}
	return result
}

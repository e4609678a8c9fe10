package transport

import (
	"net/http"

	"github.com/noptexit/create-project-action/pkg/http/headers"
)

// BearerAuthTransport authenticates every request with a GitHub token. The
// REST and GraphQL clients share it so both speak as the same identity.
type BearerAuthTransport struct {
	Transport http.RoundTripper
	Token     string
}

func (t *BearerAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(headers.AuthorizationHeader, "Bearer "+t.Token)
	return base(t.Transport).RoundTrip(req)
}

func base(rt http.RoundTripper) http.RoundTripper {
	if rt == nil {
		return http.DefaultTransport
	}
	return rt
}

package transport

import (
	"net/http"

	"github.com/noptexit/create-project-action/pkg/http/headers"
)

type UserAgentTransport struct {
	Transport http.RoundTripper
	Agent     string
}

func (t *UserAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set(headers.UserAgentHeader, t.Agent)
	return base(t.Transport).RoundTrip(req)
}

// NewHTTPClient returns a client that sends token and agent on every request.
func NewHTTPClient(token, agent string) *http.Client {
	return &http.Client{
		Transport: &BearerAuthTransport{
			Token: token,
			Transport: &UserAgentTransport{
				Transport: http.DefaultTransport,
				Agent:     agent,
			},
		},
	}
}

package board

import (
	"encoding/json"
	"net/http"
	"sync"
	"testing"

	"github.com/migueleliasweb/go-github-mock/src/mock"
	"github.com/stretchr/testify/require"
)

// GitHub API endpoint patterns for testing
var (
	GetReposByOwnerByRepo = mock.EndpointPattern{
		Pattern: "/repos/{owner}/{repo}",
		Method:  http.MethodGet,
	}
	PostReposProjectsByOwnerByRepo = mock.EndpointPattern{
		Pattern: "/repos/{owner}/{repo}/projects",
		Method:  http.MethodPost,
	}
	PostProjectsColumnsByProjectID = mock.EndpointPattern{
		Pattern: "/projects/{project_id}/columns",
		Method:  http.MethodPost,
	}
)

// recordedRequest is a REST request captured by a recorder.
type recordedRequest struct {
	Method string         `json:"method"`
	Path   string         `json:"path"`
	Accept string         `json:"accept"`
	Body   map[string]any `json:"body"`
}

// recorder captures request bodies before handing them to a response
// handler.
type recorder struct {
	t        *testing.T
	mu       sync.Mutex
	requests []recordedRequest
}

func newRecorder(t *testing.T) *recorder {
	return &recorder{t: t}
}

func (r *recorder) andThen(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var body map[string]any
		if req.Body != nil && req.ContentLength != 0 {
			require.NoError(r.t, json.NewDecoder(req.Body).Decode(&body))
		}
		r.mu.Lock()
		r.requests = append(r.requests, recordedRequest{
			Method: req.Method,
			Path:   req.URL.Path,
			Accept: req.Header.Get("Accept"),
			Body:   body,
		})
		r.mu.Unlock()
		next(w, req)
	}
}

func (r *recorder) Requests() []recordedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]recordedRequest(nil), r.requests...)
}

// mockResponse is a helper function to create a mock HTTP response handler
// that returns a specified status code and marshaled body.
func mockResponse(t *testing.T, code int, body any) http.HandlerFunc {
	t.Helper()
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(code)
		b, err := json.Marshal(body)
		require.NoError(t, err)
		_, _ = w.Write(b)
	}
}

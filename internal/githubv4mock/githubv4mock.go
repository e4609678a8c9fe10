// Package githubv4mock serves canned GraphQL responses to a githubv4.Client
// in tests, matching requests by the operation they call.
package githubv4mock

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/josephburnett/jd/lib"
)

// Request is a decoded GraphQL request.
type Request struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

// Response is the body returned for a matched request.
type Response struct {
	Data   any             `json:"data,omitempty"`
	Errors []ResponseError `json:"errors,omitempty"`
}

type ResponseError struct {
	Message string `json:"message"`
}

// DataResponse returns a successful response carrying data.
func DataResponse(data map[string]any) Response {
	return Response{Data: data}
}

// ErrorResponse returns a response carrying a single GraphQL error.
func ErrorResponse(message string) Response {
	return Response{Errors: []ResponseError{{Message: message}}}
}

// Matcher answers requests calling operation, e.g. "createProjectV2".
type Matcher struct {
	operation string
	input     any
	response  Response
}

// NewQueryMatcher answers queries selecting operation.
func NewQueryMatcher(operation string, response Response) Matcher {
	return Matcher{operation: operation, response: response}
}

// NewMutationMatcher answers mutations calling operation. When input is not
// nil the request's $input variable must equal it once both are rendered as
// JSON, otherwise the request fails with the difference.
func NewMutationMatcher(operation string, input any, response Response) Matcher {
	return Matcher{operation: operation, input: input, response: response}
}

func (m Matcher) matches(r Request) bool {
	return strings.Contains(r.Query, m.operation+"(")
}

// Transport is an http.RoundTripper serving matchers and recording every
// request it receives.
type Transport struct {
	mu       sync.Mutex
	matchers []Matcher
	requests []Request
}

// NewMockedHTTPClient returns a client answering with matchers.
func NewMockedHTTPClient(matchers ...Matcher) *http.Client {
	return &http.Client{Transport: NewTransport(matchers...)}
}

func NewTransport(matchers ...Matcher) *Transport {
	return &Transport{matchers: matchers}
}

// Requests returns the requests received so far, in order.
func (t *Transport) Requests() []Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Request(nil), t.requests...)
}

// Operations returns, in order, the operation each request matched.
func (t *Transport) Operations() []string {
	var ops []string
	for _, r := range t.Requests() {
		for _, m := range t.matchers {
			if m.matches(r) {
				ops = append(ops, m.operation)
				break
			}
		}
	}
	return ops
}

func (t *Transport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, err := io.ReadAll(req.Body)
	if err != nil {
		return nil, err
	}
	_ = req.Body.Close()

	var r Request
	if err := json.Unmarshal(body, &r); err != nil {
		return respond(req, http.StatusBadRequest, fmt.Sprintf("invalid GraphQL request: %v", err)), nil
	}

	t.mu.Lock()
	t.requests = append(t.requests, r)
	t.mu.Unlock()

	for _, m := range t.matchers {
		if !m.matches(r) {
			continue
		}
		if m.input != nil {
			if diff, err := diffJSON(m.input, r.Variables["input"]); err != nil {
				return respond(req, http.StatusBadRequest, err.Error()), nil
			} else if diff != "" {
				return respond(req, http.StatusBadRequest, fmt.Sprintf("unexpected input for %s:\n%s", m.operation, diff)), nil
			}
		}
		b, err := json.Marshal(m.response)
		if err != nil {
			return nil, err
		}
		return respond(req, http.StatusOK, string(b)), nil
	}

	return respond(req, http.StatusNotFound, fmt.Sprintf("no matcher for query %q", r.Query)), nil
}

func diffJSON(expected, actual any) (string, error) {
	e, err := json.Marshal(expected)
	if err != nil {
		return "", err
	}
	a, err := json.Marshal(actual)
	if err != nil {
		return "", err
	}
	en, err := jd.ReadJsonString(string(e))
	if err != nil {
		return "", err
	}
	an, err := jd.ReadJsonString(string(a))
	if err != nil {
		return "", err
	}
	return an.Diff(en).Render(), nil
}

func respond(req *http.Request, status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     fmt.Sprintf("%d %s", status, http.StatusText(status)),
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(bytes.NewBufferString(body)),
		Request:    req,
	}
}

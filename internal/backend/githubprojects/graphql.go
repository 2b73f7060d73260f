package githubprojects

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"

	"ghprojsync/internal/service"
)

// DefaultEndpoint is the GitHub GraphQL API endpoint.
const DefaultEndpoint = "https://api.github.com/graphql"

// GraphQL executes queries and mutations against the GitHub GraphQL API.
type GraphQL struct {
	endpoint string
	http     *http.Client
}

// NewGraphQL creates a transport that authenticates every request with token.
// A base *http.Client may be supplied through ctx under oauth2.HTTPClient.
func NewGraphQL(ctx context.Context, endpoint, token string) (*GraphQL, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, &service.AuthError{Reason: "no GitHub token configured (set GITHUB_TOKEN or run: ghprojsync login)"}
	}
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}

	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return &GraphQL{
		endpoint: endpoint,
		http:     oauth2.NewClient(ctx, src),
	}, nil
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}

type graphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []graphQLError  `json:"errors"`
}

// Execute runs query with variables and decodes the "data" object into out.
// out may be nil for mutations whose payload is not needed.
func (g *GraphQL) Execute(ctx context.Context, query string, variables map[string]any, out any) error {
	if variables == nil {
		variables = map[string]any{}
	}
	body, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return &service.TransportError{Op: "encode request", Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(body))
	if err != nil {
		return &service.TransportError{Op: "create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := g.http.Do(req)
	if err != nil {
		return &service.TransportError{Op: "post", Err: err}
	}
	defer resp.Body.Close()

	if err := googleapi.CheckResponse(resp); err != nil {
		return statusError(err)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return &service.TransportError{Op: "read response", Err: err}
	}

	var gqlResp graphQLResponse
	if err := json.Unmarshal(respBody, &gqlResp); err != nil {
		return &service.TransportError{Op: "decode response", Err: err}
	}
	if len(gqlResp.Errors) > 0 {
		return &service.APIError{Message: gqlResp.Errors[0].Message, Type: gqlResp.Errors[0].Type}
	}
	if out == nil || len(gqlResp.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(gqlResp.Data, out); err != nil {
		return &service.TransportError{Op: "decode data", Err: err}
	}
	return nil
}

// statusError converts a non-2xx response check into an APIError.
func statusError(err error) error {
	var gerr *googleapi.Error
	if !errors.As(err, &gerr) {
		return &service.APIError{Message: err.Error()}
	}
	msg := gerr.Message
	if msg == "" {
		msg = githubMessage(gerr.Body)
	}
	return &service.APIError{Status: gerr.Code, Message: msg}
}

// githubMessage extracts "message" from a GitHub REST-style error body.
func githubMessage(body string) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal([]byte(body), &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(body)
}

package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/hashicorp/go-hclog"
)

// PingQuery is the smallest query that proves GraphQL is reachable with the
// current token.
const PingQuery = `{
  allCourses {
    _id
    name
  }
}`

// DueDatesQuery fetches every course with its term and assignment due dates.
const DueDatesQuery = `{
  allCourses {
    _id
    name
    courseCode
    term { name }
    assignmentsConnection(first: 100) {
      nodes {
        _id
        name
        dueAt
        pointsPossible
        htmlUrl
      }
    }
  }
}`

// GraphQLClient posts queries to the Canvas GraphQL endpoint.
type GraphQLClient struct {
	endpoint string
	client   *http.Client
	logger   hclog.Logger
}

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLResponse struct {
	Data   map[string]any     `json:"data"`
	Errors []GraphQLErrorItem `json:"errors"`
}

// Query executes a GraphQL query and returns the decoded data object.
//
// A non-empty errors list is reported as a *GraphQLError even when the HTTP
// status is 200.
func (g *GraphQLClient) Query(ctx context.Context, query string, variables map[string]any) (map[string]any, error) {
	if variables == nil {
		variables = map[string]any{}
	}

	reqJSON, err := json.Marshal(graphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	g.logger.Debug("sending query", "url", g.endpoint, "query_length", len(query))

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Method: http.MethodPost, URL: g.endpoint, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{
			Method: http.MethodPost,
			URL:    g.endpoint,
			Err:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &APIError{
			Method:     http.MethodPost,
			URL:        g.endpoint,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Message:    errorMessage(respBody),
		}
	}

	var result graphQLResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(result.Errors) > 0 {
		return nil, &GraphQLError{StatusCode: resp.StatusCode, Errors: result.Errors}
	}

	if result.Data == nil {
		result.Data = map[string]any{}
	}
	return result.Data, nil
}

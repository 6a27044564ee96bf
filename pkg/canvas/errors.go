package canvas

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Error kinds. Use errors.Is to classify an error returned by the client.
var (
	ErrNetwork = errors.New("canvas: network error")
	ErrAPI     = errors.New("canvas: API error")
	ErrGraphQL = errors.New("canvas: GraphQL error")
)

// NetworkError reports a request that never produced an HTTP response.
type NetworkError struct {
	Method string
	URL    string
	Err    error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s %s: request failed: %v", e.Method, e.URL, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

func (e *NetworkError) Is(target error) bool { return target == ErrNetwork }

// APIError reports a non-2xx response from Canvas.
type APIError struct {
	Method     string
	URL        string
	StatusCode int

	// Body is the response body exactly as Canvas sent it.
	Body []byte

	// Message is extracted from the Canvas error envelope when present.
	Message string
}

func (e *APIError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = strings.TrimSpace(string(e.Body))
	}
	if msg == "" {
		msg = http.StatusText(e.StatusCode)
	}
	return fmt.Sprintf("API error (status %d): %s", e.StatusCode, msg)
}

func (e *APIError) Is(target error) bool { return target == ErrAPI }

// NotFound reports whether Canvas answered 404.
func (e *APIError) NotFound() bool { return e.StatusCode == http.StatusNotFound }

// Unauthorized reports whether the token was rejected.
func (e *APIError) Unauthorized() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// GraphQLErrorItem is a single entry of a GraphQL errors list.
type GraphQLErrorItem struct {
	Message   string         `json:"message"`
	Path      []any          `json:"path,omitempty"`
	Locations []any          `json:"locations,omitempty"`
	Extension map[string]any `json:"extensions,omitempty"`
}

// GraphQLError reports a GraphQL response whose errors list was non-empty,
// regardless of the HTTP status.
type GraphQLError struct {
	StatusCode int
	Errors     []GraphQLErrorItem
}

func (e *GraphQLError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, item := range e.Errors {
		msgs = append(msgs, item.Message)
	}
	return fmt.Sprintf("GraphQL error (status %d): %s", e.StatusCode, strings.Join(msgs, "; "))
}

func (e *GraphQLError) Is(target error) bool { return target == ErrGraphQL }

// errorMessage extracts a readable message from a Canvas error body.
//
// Canvas uses several envelopes:
//
//	{"errors": [{"message": "..."}]}
//	{"errors": {"field": [{"message": "..."}]}}
//	{"message": "..."}
func errorMessage(body []byte) string {
	var envelope struct {
		Errors  json.RawMessage `json:"errors"`
		Message string          `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}

	if len(envelope.Errors) > 0 {
		var list []struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal(envelope.Errors, &list); err == nil {
			msgs := make([]string, 0, len(list))
			for _, item := range list {
				if item.Message != "" {
					msgs = append(msgs, item.Message)
				}
			}
			if len(msgs) > 0 {
				return strings.Join(msgs, "; ")
			}
		}
		// Fall back to the raw errors value, it is still more useful than the
		// whole body.
		return strings.TrimSpace(string(envelope.Errors))
	}

	return envelope.Message
}

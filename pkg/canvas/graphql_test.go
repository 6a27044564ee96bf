package canvas

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraphQLClient_Query(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/graphql", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, PingQuery, req.Query)
		assert.Equal(t, map[string]any{"first": float64(10)}, req.Variables)

		_, _ = w.Write([]byte(`{"data":{"allCourses":[{"_id":"1","name":"Biology"}]}}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	data, err := client.GraphQL.Query(context.Background(), PingQuery, map[string]any{"first": 10})
	require.NoError(t, err)

	courses, ok := data["allCourses"].([]any)
	require.True(t, ok)
	require.Len(t, courses, 1)
	assert.Equal(t, "Biology", courses[0].(map[string]any)["name"])
}

func TestGraphQLClient_QueryNilVariables(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Equal(t, map[string]any{}, raw["variables"])

		_, _ = w.Write([]byte(`{"data":null}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	data, err := client.GraphQL.Query(context.Background(), PingQuery, nil)
	require.NoError(t, err)
	assert.NotNil(t, data)
	assert.Empty(t, data)
}

func TestGraphQLClient_ErrorsWithSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{
			"data": null,
			"errors": [
				{"message": "Field 'bogus' doesn't exist on type 'Course'", "path": ["query", "allCourses", "bogus"]},
				{"message": "second failure"}
			]
		}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GraphQL.Query(context.Background(), `{ allCourses { bogus } }`, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrGraphQL))
	assert.False(t, errors.Is(err, ErrAPI))

	var gqlErr *GraphQLError
	require.True(t, errors.As(err, &gqlErr))
	assert.Equal(t, http.StatusOK, gqlErr.StatusCode)
	require.Len(t, gqlErr.Errors, 2)
	assert.Equal(t,
		"GraphQL error (status 200): Field 'bogus' doesn't exist on type 'Course'; second failure",
		gqlErr.Error(),
	)
}

func TestGraphQLClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"errors":[{"message":"GraphQL is disabled"}]}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	_, err := client.GraphQL.Query(context.Background(), PingQuery, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrAPI))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.True(t, apiErr.Unauthorized())
	assert.Equal(t, "GraphQL is disabled", apiErr.Message)
}

func TestGraphQLClient_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := newTestClient(t, url)

	_, err := client.GraphQL.Query(context.Background(), PingQuery, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNetwork))
}

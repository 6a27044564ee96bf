package canvas

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/hashicorp/go-hclog"
	"github.com/tomnomnom/linkheader"
)

// Record is a single decoded JSON object returned by Canvas.
type Record map[string]any

// Client is a Canvas REST API client. It holds no state between calls and is
// safe for concurrent use.
type Client struct {
	config  *Config
	client  *http.Client
	logger  hclog.Logger
	apiBase *url.URL

	// GraphQL is the GraphQL client for the same instance.
	GraphQL *GraphQLClient
}

// New creates a Canvas client.
func New(cfg *Config) (*Client, error) {
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid Canvas client config: %w", err)
	}

	apiBase, err := url.Parse(cfg.BaseURL + "/api/v1/")
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}

	httpClient := cfg.NewHTTPClient()
	logger := cfg.Logger.Named("canvas")

	return &Client{
		config:  cfg,
		client:  httpClient,
		logger:  logger,
		apiBase: apiBase,
		GraphQL: &GraphQLClient{
			endpoint: cfg.BaseURL + "/api/graphql",
			client:   httpClient,
			logger:   logger.Named("graphql"),
		},
	}, nil
}

// BaseURL returns the instance root URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}

// Get fetches a single endpoint and decodes the body into out (if non-nil).
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, out any) error {
	u, err := c.buildURL(endpoint, params)
	if err != nil {
		return err
	}
	_, body, err := c.doRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	return decodeBody(body, out)
}

// GetRecord fetches a single object endpoint.
func (c *Client) GetRecord(ctx context.Context, endpoint string, params url.Values) (Record, error) {
	var rec Record
	if err := c.Get(ctx, endpoint, params, &rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// Post sends body as JSON and decodes the response into out (if non-nil).
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	return c.send(ctx, http.MethodPost, endpoint, body, out)
}

// Put sends body as JSON and decodes the response into out (if non-nil).
func (c *Client) Put(ctx context.Context, endpoint string, body, out any) error {
	return c.send(ctx, http.MethodPut, endpoint, body, out)
}

// Delete issues a DELETE and decodes the response into out (if non-nil).
func (c *Client) Delete(ctx context.Context, endpoint string, out any) error {
	return c.send(ctx, http.MethodDelete, endpoint, nil, out)
}

func (c *Client) send(ctx context.Context, method, endpoint string, body, out any) error {
	u, err := c.buildURL(endpoint, nil)
	if err != nil {
		return err
	}
	_, respBody, err := c.doRequest(ctx, method, u, body)
	if err != nil {
		return err
	}
	return decodeBody(respBody, out)
}

// Paginate fetches every page of a collection endpoint, following the Link
// header rel="next" URL until Canvas stops supplying one. Pages are fetched
// sequentially and concatenated in order.
//
// per_page defaults to the configured page size when params does not set it.
// A response that is a JSON object instead of an array is returned as a
// single record and ends pagination. A next link that was already fetched is
// an error.
func (c *Client) Paginate(ctx context.Context, endpoint string, params url.Values) ([]Record, error) {
	q := url.Values{}
	for k, v := range params {
		q[k] = append([]string(nil), v...)
	}
	if q.Get("per_page") == "" {
		q.Set("per_page", strconv.Itoa(c.config.PerPage))
	}

	next, err := c.buildURL(endpoint, q)
	if err != nil {
		return nil, err
	}

	var records []Record
	visited := map[string]bool{}
	for page := 1; next != ""; page++ {
		if visited[next] {
			return nil, fmt.Errorf("pagination loop in %s: page %d links back to %s", endpoint, page-1, next)
		}
		visited[next] = true

		header, body, err := c.doRequest(ctx, http.MethodGet, next, nil)
		if err != nil {
			return nil, err
		}

		pageRecords, isList, err := decodePage(body)
		if err != nil {
			return nil, fmt.Errorf("failed to decode page %d of %s: %w", page, endpoint, err)
		}
		records = append(records, pageRecords...)

		c.logger.Trace("fetched page",
			"endpoint", endpoint,
			"page", page,
			"records", len(pageRecords),
		)

		if !isList {
			break
		}

		next, err = c.nextLink(header, next)
		if err != nil {
			return nil, err
		}
	}

	return records, nil
}

// nextLink returns the absolute rel="next" URL, or "" when there is none.
func (c *Client) nextLink(header http.Header, current string) (string, error) {
	links := linkheader.ParseMultiple(header.Values("Link")).FilterByRel("next")
	if len(links) == 0 {
		return "", nil
	}

	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", current, err)
	}
	ref, err := url.Parse(links[0].URL)
	if err != nil {
		return "", fmt.Errorf("invalid next link %q: %w", links[0].URL, err)
	}
	return base.ResolveReference(ref).String(), nil
}

// buildURL resolves endpoint against /api/v1/ and attaches query parameters.
func (c *Client) buildURL(endpoint string, params url.Values) (string, error) {
	ref, err := url.Parse(strings.TrimLeft(endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid endpoint %q: %w", endpoint, err)
	}
	u := c.apiBase.ResolveReference(ref)

	if len(params) > 0 {
		q := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	return u.String(), nil
}

// doRequest executes a single HTTP request and classifies failures.
func (c *Client) doRequest(ctx context.Context, method, rawURL string, body any) (http.Header, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyBytes, err := json.Marshal(body)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(bodyBytes)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, bodyReader)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	c.logger.Debug("sending request", "method", method, "url", rawURL)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, nil, &NetworkError{Method: method, URL: rawURL, Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, &NetworkError{
			Method: method,
			URL:    rawURL,
			Err:    fmt.Errorf("failed to read response: %w", err),
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Debug("request returned error status",
			"method", method,
			"url", rawURL,
			"status", resp.StatusCode,
		)
		return nil, nil, &APIError{
			Method:     method,
			URL:        rawURL,
			StatusCode: resp.StatusCode,
			Body:       respBody,
			Message:    errorMessage(respBody),
		}
	}

	return resp.Header, respBody, nil
}

func decodeBody(body []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// decodePage decodes a page body. isList is false when the body was a single
// object.
func decodePage(body []byte) (records []Record, isList bool, err error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return nil, true, nil
	}

	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &records); err != nil {
			return nil, true, err
		}
		return records, true, nil
	}

	var rec Record
	if err := json.Unmarshal(trimmed, &rec); err != nil {
		return nil, false, err
	}
	return []Record{rec}, false, nil
}

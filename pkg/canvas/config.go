package canvas

import (
	"crypto/tls"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"
	httptrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/net/http"
)

const (
	// DefaultPerPage is the page size requested from Canvas when the caller
	// does not set per_page.
	DefaultPerPage = 100

	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
)

// Config contains configuration for the Canvas client.
type Config struct {
	// BaseURL is the root URL of the Canvas instance.
	// Example: "https://school.instructure.com"
	BaseURL string `json:"baseUrl"`

	// Token is the Canvas API access token sent as a Bearer token.
	Token string `json:"-"` // Don't marshal the token to JSON

	// TLSVerify controls TLS certificate verification.
	// Set to false only for development against self-signed instances.
	TLSVerify *bool `json:"tlsVerify,omitempty"`

	// Timeout for a single API request.
	// Default: 30 seconds
	Timeout time.Duration `json:"timeout,omitempty"`

	// PerPage is the page size requested for paginated endpoints.
	// Default: 100
	PerPage int `json:"perPage,omitempty"`

	// Tracing wraps the HTTP client with Datadog APM spans.
	Tracing bool `json:"tracing,omitempty"`

	// Logger is optional.
	Logger hclog.Logger `json:"-"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	tlsVerify := true
	return &Config{
		TLSVerify: &tlsVerify,
		Timeout:   DefaultTimeout,
		PerPage:   DefaultPerPage,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base URL is required (set CANVAS_HOST)")
	}

	parsedURL, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("base URL must use http or https scheme, got: %q", parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("base URL must include a host, got: %q", c.BaseURL)
	}

	if c.Token == "" {
		return fmt.Errorf("API token is required (set CANVAS_TOKEN)")
	}

	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got: %v", c.Timeout)
	}

	if c.PerPage < 1 || c.PerPage > 100 {
		return fmt.Errorf("per_page must be between 1 and 100, got: %d", c.PerPage)
	}

	return nil
}

// applyDefaults fills zero values from DefaultConfig.
func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.TLSVerify == nil {
		c.TLSVerify = defaults.TLSVerify
	}
	if c.Timeout == 0 {
		c.Timeout = defaults.Timeout
	}
	if c.PerPage == 0 {
		c.PerPage = defaults.PerPage
	}
	if c.Logger == nil {
		c.Logger = hclog.NewNullLogger()
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
}

// NewHTTPClient creates an HTTP client that authenticates every request with
// the configured token.
func (c *Config) NewHTTPClient() *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
	}

	// Configure TLS verification
	if c.TLSVerify != nil && !*c.TLSVerify {
		transport.TLSClientConfig = &tls.Config{
			InsecureSkipVerify: true,
		}
	}

	client := &http.Client{
		Timeout: c.Timeout,
		Transport: &oauth2.Transport{
			Source: oauth2.StaticTokenSource(&oauth2.Token{
				AccessToken: c.Token,
				TokenType:   "Bearer",
			}),
			Base: transport,
		},
	}

	if c.Tracing {
		client = httptrace.WrapClient(client)
	}

	return client
}

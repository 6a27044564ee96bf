package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/hashicorp/hcl/v2/hclsimple"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

// Environment variables read by Load.
const (
	EnvHost  = "CANVAS_HOST"
	EnvToken = "CANVAS_TOKEN"
)

// DefaultEnvFile is loaded from the working directory when present.
const DefaultEnvFile = ".env"

// Transports accepted in the server block.
const (
	TransportStdio = "stdio"
	TransportHTTP  = "http"
)

// Config is the canvas-mcp configuration. It can be read from an HCL file and
// is overridden by the environment. The json tags name fields in validation
// errors.
type Config struct {
	// Canvas configures the Canvas API client.
	Canvas *Canvas `hcl:"canvas,block" json:"canvas"`

	// Server configures the MCP server.
	Server *Server `hcl:"server,block" json:"server"`

	// Datadog configures APM tracing of outbound Canvas requests.
	Datadog *Datadog `hcl:"datadog,block" json:"datadog"`
}

// Canvas configures the Canvas API client.
type Canvas struct {
	// Host is the root URL of the Canvas instance. A bare host name is
	// treated as https.
	Host string `hcl:"host,optional" json:"host"`

	// Token is the Canvas API access token. It is never serialized.
	Token string `hcl:"token,optional" json:"-"`

	// Timeout bounds a single request, as a Go duration string.
	Timeout string `hcl:"timeout,optional" json:"timeout"`

	// PerPage is the page size requested from paginated endpoints.
	PerPage int `hcl:"per_page,optional" json:"per_page"`

	// TLSVerify disables certificate verification when false.
	TLSVerify *bool `hcl:"tls_verify,optional" json:"tls_verify"`
}

// Server configures the MCP server.
type Server struct {
	// Transport is "stdio" or "http".
	Transport string `hcl:"transport,optional" json:"transport"`

	// Addr is the listen address of the HTTP transport.
	Addr string `hcl:"addr,optional" json:"addr"`

	// Path is the URL path of the HTTP transport.
	Path string `hcl:"path,optional" json:"path"`
}

// Datadog configures APM tracing.
type Datadog struct {
	Enabled bool   `hcl:"enabled,optional" json:"enabled"`
	Service string `hcl:"service,optional" json:"service"`
	Env     string `hcl:"env,optional" json:"env"`
}

// Options control where Load reads configuration from.
type Options struct {
	// ConfigFile is an optional HCL (or JSON) configuration file.
	ConfigFile string

	// EnvFile is the dotenv file to load. Defaults to DefaultEnvFile; a
	// missing file is ignored.
	EnvFile string

	// Fs is the file system to read files from. Defaults to the OS file
	// system.
	Fs afero.Fs

	// LookupEnv reads the process environment. Defaults to os.LookupEnv.
	LookupEnv func(string) (string, bool)

	// Logger is optional.
	Logger hclog.Logger
}

// Load builds the configuration. Values are taken, in decreasing order of
// precedence, from the process environment, the dotenv file, the
// configuration file, and the defaults.
func Load(opts Options) (*Config, error) {
	if opts.Fs == nil {
		opts.Fs = afero.NewOsFs()
	}
	if opts.EnvFile == "" {
		opts.EnvFile = DefaultEnvFile
	}
	if opts.LookupEnv == nil {
		opts.LookupEnv = os.LookupEnv
	}
	if opts.Logger == nil {
		opts.Logger = hclog.NewNullLogger()
	}

	cfg := &Config{}
	if opts.ConfigFile != "" {
		var err error
		cfg, err = decodeFile(opts.Fs, opts.ConfigFile)
		if err != nil {
			return nil, err
		}
		opts.Logger.Debug("loaded configuration file", "path", opts.ConfigFile)
	}

	dotenv, err := readEnvFile(opts.Fs, opts.EnvFile)
	if err != nil {
		return nil, err
	}
	if len(dotenv) > 0 {
		opts.Logger.Debug("loaded dotenv file", "path", opts.EnvFile, "keys", len(dotenv))
	}

	lookup := func(key string) (string, bool) {
		if v, ok := opts.LookupEnv(key); ok && v != "" {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok && v != ""
	}

	cfg.applyDefaults()
	if v, ok := lookup(EnvHost); ok {
		cfg.Canvas.Host = v
	}
	if v, ok := lookup(EnvToken); ok {
		cfg.Canvas.Token = v
	}
	cfg.Canvas.Host = normalizeHost(cfg.Canvas.Host)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func decodeFile(fs afero.Fs, filename string) (*Config, error) {
	exists, err := afero.Exists(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to stat configuration file: %w", err)
	}
	if !exists {
		return nil, fmt.Errorf("configuration file not found: %s", filename)
	}

	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file: %w", err)
	}

	var cfg Config
	if err := hclsimple.Decode(filename, src, nil, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file: %w", err)
	}
	return &cfg, nil
}

func readEnvFile(fs afero.Fs, filename string) (map[string]string, error) {
	exists, err := afero.Exists(fs, filename)
	if err != nil || !exists {
		return nil, nil
	}

	src, err := afero.ReadFile(fs, filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	values, err := godotenv.Parse(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", filename, err)
	}
	return values, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas == nil {
		c.Canvas = &Canvas{}
	}
	if c.Canvas.Timeout == "" {
		c.Canvas.Timeout = canvas.DefaultTimeout.String()
	}
	if c.Canvas.PerPage == 0 {
		c.Canvas.PerPage = canvas.DefaultPerPage
	}

	if c.Server == nil {
		c.Server = &Server{}
	}
	if c.Server.Transport == "" {
		c.Server.Transport = TransportStdio
	}
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Server.Path == "" {
		c.Server.Path = "/mcp"
	}

	if c.Datadog == nil {
		c.Datadog = &Datadog{}
	}
	if c.Datadog.Service == "" {
		c.Datadog.Service = "canvas-mcp"
	}
}

func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	if host != "" && !strings.Contains(host, "://") {
		host = "https://" + host
	}
	return strings.TrimRight(host, "/")
}

// Validate checks the configuration.
func (c *Config) Validate() error {
	if c.Canvas == nil || c.Server == nil {
		return fmt.Errorf("configuration is incomplete")
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.Canvas),
		validation.Field(&c.Server),
	)
}

// Validate checks the Canvas block.
func (c Canvas) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Host,
			validation.Required.Error("is required (set "+EnvHost+")")),
		validation.Field(&c.Token,
			validation.Required.Error("is required (set "+EnvToken+")")),
		validation.Field(&c.Timeout, validation.By(isDuration)),
		validation.Field(&c.PerPage, validation.Min(1), validation.Max(100)),
	)
}

// Validate checks the server block.
func (s Server) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Transport, validation.In(TransportStdio, TransportHTTP)),
		validation.Field(&s.Path, validation.By(isPath)),
	)
}

func isDuration(value interface{}) error {
	s, _ := value.(string)
	d, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("must be a duration such as 30s")
	}
	if d <= 0 {
		return fmt.Errorf("must be positive")
	}
	return nil
}

func isPath(value interface{}) error {
	s, _ := value.(string)
	if !strings.HasPrefix(s, "/") {
		return fmt.Errorf("must start with /")
	}
	return nil
}

// CanvasConfig converts the Canvas block to a client configuration.
func (c *Config) CanvasConfig(logger hclog.Logger) *canvas.Config {
	timeout, err := time.ParseDuration(c.Canvas.Timeout)
	if err != nil {
		timeout = canvas.DefaultTimeout
	}

	return &canvas.Config{
		BaseURL:   c.Canvas.Host,
		Token:     c.Canvas.Token,
		TLSVerify: c.Canvas.TLSVerify,
		Timeout:   timeout,
		PerPage:   c.Canvas.PerPage,
		Tracing:   c.Datadog != nil && c.Datadog.Enabled,
		Logger:    logger,
	}
}

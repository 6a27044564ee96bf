// Package mcpserver exposes the course assistant operations as Model Context
// Protocol tools and prompts.
package mcpserver

import (
	"errors"

	"github.com/hashicorp/go-hclog"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
)

// Name is the implementation name announced to MCP clients.
const Name = "canvas-mcp"

const instructions = `Tools for reading a student's Canvas LMS data: courses, assignments, due dates,
modules, files and the user profile. Dates are formatted like "Jan 02, 2006 at 03:04 PM";
missing values are shown as "not available". Call get_current_date before reasoning about relative dates.`

// Config contains the dependencies of the Server.
type Config struct {
	// Service runs the operations. Required.
	Service *assistant.Service

	// Version is announced to clients.
	Version string

	// Logger is optional.
	Logger hclog.Logger
}

// Server is an MCP server backed by an assistant.Service.
type Server struct {
	server  *mcp.Server
	service *assistant.Service
	logger  hclog.Logger
}

// New creates a Server with every tool and prompt registered.
func New(cfg Config) (*Server, error) {
	if cfg.Service == nil {
		return nil, errors.New("assistant service is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}

	s := &Server{
		server: mcp.NewServer(&mcp.Implementation{
			Name:    Name,
			Version: cfg.Version,
		}, &mcp.ServerOptions{
			Instructions: instructions,
		}),
		service: cfg.Service,
		logger:  cfg.Logger.Named("mcp"),
	}
	s.registerTools()
	s.registerPrompts()
	return s, nil
}

// MCPServer returns the underlying MCP server.
func (s *Server) MCPServer() *mcp.Server {
	return s.server
}

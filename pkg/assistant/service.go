// Package assistant implements the course assistant operations on top of the
// Canvas client. Each operation is a single linear sequence: request the
// records, normalize them, and either return the typed result or format it as
// text for a language model host.
package assistant

import (
	"context"
	"errors"
	"time"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

// CanvasAPI is the subset of *canvas.Client used by the assistant.
type CanvasAPI interface {
	BaseURL() string
	GetCourse(ctx context.Context, courseID string, include ...string) (canvas.Record, error)
	ListCourses(ctx context.Context, opts *canvas.ListCoursesOptions) ([]canvas.Record, error)
	ListActiveCourses(ctx context.Context) ([]canvas.Record, error)
	ListAssignments(ctx context.Context, courseID string, opts *canvas.ListAssignmentsOptions) ([]canvas.Record, error)
	ListModules(ctx context.Context, courseID string, include ...string) ([]canvas.Record, error)
	ListCourseFiles(ctx context.Context, courseID string) ([]canvas.Record, error)
	GetSelf(ctx context.Context) (canvas.Record, error)
}

// GraphQLAPI is the subset of *canvas.GraphQLClient used by the assistant.
type GraphQLAPI interface {
	Query(ctx context.Context, query string, variables map[string]any) (map[string]any, error)
}

// Config contains the dependencies of the Service.
type Config struct {
	// Canvas is required.
	Canvas CanvasAPI

	// GraphQL is optional. Without it the GraphQL operations fail with
	// ErrGraphQLUnavailable.
	GraphQL GraphQLAPI

	// Logger is optional.
	Logger hclog.Logger

	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// Service runs the assistant operations. It keeps no state between calls.
type Service struct {
	canvas  CanvasAPI
	graphql GraphQLAPI
	logger  hclog.Logger
	now     func() time.Time
}

// New creates a Service.
func New(cfg Config) (*Service, error) {
	if cfg.Canvas == nil {
		return nil, errors.New("canvas client is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = hclog.NewNullLogger()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Service{
		canvas:  cfg.Canvas,
		graphql: cfg.GraphQL,
		logger:  cfg.Logger.Named("assistant"),
		now:     cfg.Now,
	}, nil
}

// NewFromClient creates a Service backed by a Canvas client and its GraphQL
// client.
func NewFromClient(client *canvas.Client, logger hclog.Logger) (*Service, error) {
	if client == nil {
		return nil, errors.New("canvas client is required")
	}
	return New(Config{
		Canvas:  client,
		GraphQL: client.GraphQL,
		Logger:  logger,
	})
}

// BaseURL returns the root URL of the Canvas instance.
func (s *Service) BaseURL() string {
	return s.canvas.BaseURL()
}

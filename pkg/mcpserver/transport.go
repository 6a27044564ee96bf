package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// DefaultPath is the URL path of the streamable HTTP transport.
const DefaultPath = "/mcp"

// ServeStdio runs the server over stdin/stdout until the client disconnects or
// ctx is canceled. Nothing else may write to stdout while it runs.
func (s *Server) ServeStdio(ctx context.Context) error {
	s.logger.Info("serving MCP over stdio")
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

// HTTPHandler returns an http.Handler serving the streamable HTTP transport.
func (s *Server) HTTPHandler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, nil)
}

// HTTPOptions configure ListenAndServe.
type HTTPOptions struct {
	// Addr is the listen address, such as "127.0.0.1:8080".
	Addr string

	// Listener is used instead of listening on Addr when set.
	Listener net.Listener

	// Path defaults to DefaultPath.
	Path string

	// ReadHeaderTimeout defaults to 10 seconds.
	ReadHeaderTimeout time.Duration

	// Ready is called with the bound address once the listener is open.
	Ready func(addr net.Addr)
}

// ListenAndServe serves the streamable HTTP transport until ctx is canceled,
// then shuts the HTTP server down.
func (s *Server) ListenAndServe(ctx context.Context, opts HTTPOptions) error {
	if opts.Addr == "" && opts.Listener == nil {
		return errors.New("addr is required")
	}
	if opts.Path == "" {
		opts.Path = DefaultPath
	}
	if opts.ReadHeaderTimeout == 0 {
		opts.ReadHeaderTimeout = 10 * time.Second
	}

	listener := opts.Listener
	if listener == nil {
		var err error
		listener, err = net.Listen("tcp", opts.Addr)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", opts.Addr, err)
		}
	}

	mux := http.NewServeMux()
	mux.Handle(opts.Path, s.HTTPHandler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	server := &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
	}

	// Closed when Serve returns, so the shutdown goroutine does not outlive it.
	done := make(chan struct{})
	defer close(done)

	go func() {
		select {
		case <-done:
			return
		case <-ctx.Done():
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			s.logger.Error("error shutting down HTTP server", "error", err)
		}
	}()

	s.logger.Info("serving MCP over HTTP", "addr", listener.Addr().String(), "path", opts.Path)
	if opts.Ready != nil {
		opts.Ready(listener.Addr())
	}

	if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("error serving HTTP: %w", err)
	}
	return nil
}

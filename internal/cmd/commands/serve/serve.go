package serve

import (
	"context"
	"flag"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"gopkg.in/DataDog/dd-trace-go.v1/ddtrace/tracer"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/internal/config"
	"github.com/hashicorp-forge/canvas-mcp/internal/version"
	"github.com/hashicorp-forge/canvas-mcp/pkg/mcpserver"
)

type Command struct {
	*base.Command

	config base.ConfigFlags

	flagTransport string
	flagAddr      string
	flagPath      string

	// ctx replaces the SIGINT/SIGTERM context when set.
	ctx context.Context
}

func (c *Command) Synopsis() string {
	return "Run the MCP server"
}

func (c *Command) Help() string {
	return `Usage: canvas-mcp serve [options]

  Run the Model Context Protocol server exposing the Canvas tools.

  With the stdio transport (the default) the server talks to its host over
  stdin and stdout and logs to stderr. With the http transport it serves the
  streamable HTTP transport on -addr and -path.` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("serve", flag.ContinueOnError))

	c.config.Register(f)
	f.StringVar(
		&c.flagTransport, "transport", "",
		"Transport to serve: stdio or http (defaults to the configuration file, then stdio)",
	)
	f.StringVar(
		&c.flagAddr, "addr", "",
		"Listen address of the http transport (default 127.0.0.1:8080)",
	)
	f.StringVar(
		&c.flagPath, "path", "",
		"URL path of the http transport (default /mcp)",
	)

	return f
}

func (c *Command) Run(args []string) int {
	log, ui := c.Log, c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	cfg, err := c.config.Load(log)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}
	if c.flagTransport != "" {
		cfg.Server.Transport = c.flagTransport
	}
	if c.flagAddr != "" {
		cfg.Server.Addr = c.flagAddr
	}
	if c.flagPath != "" {
		cfg.Server.Path = c.flagPath
	}
	if err := cfg.Validate(); err != nil {
		ui.Error(fmt.Sprintf("invalid configuration: %v", err))
		return 1
	}

	if cfg.Datadog.Enabled {
		opts := []tracer.StartOption{tracer.WithService(cfg.Datadog.Service)}
		if cfg.Datadog.Env != "" {
			opts = append(opts, tracer.WithEnv(cfg.Datadog.Env))
		}
		tracer.Start(opts...)
		defer tracer.Stop()
		log.Info("datadog tracing enabled", "service", cfg.Datadog.Service)
	}

	_, svc, err := base.NewService(cfg, log)
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	srv, err := mcpserver.New(mcpserver.Config{
		Service: svc,
		Version: version.Version,
		Logger:  log,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error creating MCP server: %v", err))
		return 1
	}

	ctx := c.ctx
	if ctx == nil {
		var stop context.CancelFunc
		ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()
	}

	log.Info("starting server",
		"canvas", cfg.Canvas.Host,
		"transport", cfg.Server.Transport,
		"version", version.Version,
	)

	switch cfg.Server.Transport {
	case config.TransportHTTP:
		err = srv.ListenAndServe(ctx, mcpserver.HTTPOptions{
			Addr: cfg.Server.Addr,
			Path: cfg.Server.Path,
			Ready: func(addr net.Addr) {
				ui.Info(fmt.Sprintf("MCP server listening on http://%s%s", addr, cfg.Server.Path))
			},
		})
	default:
		// Stdout belongs to the MCP session; the UI must stay silent.
		err = srv.ServeStdio(ctx)
	}
	if err != nil && ctx.Err() == nil {
		ui.Error(fmt.Sprintf("error running server: %v", err))
		return 1
	}

	log.Info("server stopped")
	return 0
}

package base

import (
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hashicorp-forge/canvas-mcp/internal/config"
	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

// ConfigFlags are the flags of commands that talk to Canvas.
type ConfigFlags struct {
	ConfigFile string
	EnvFile    string
}

// Register adds the flags to f.
func (c *ConfigFlags) Register(f *FlagSet) {
	f.StringVar(
		&c.ConfigFile, "config", "",
		"Path to an HCL configuration file",
	)
	f.StringVar(
		&c.EnvFile, "env-file", config.DefaultEnvFile,
		"[CANVAS_HOST, CANVAS_TOKEN] dotenv file loaded when present",
	)
}

// Load reads the configuration selected by the flags.
func (c *ConfigFlags) Load(log hclog.Logger) (*config.Config, error) {
	return config.Load(config.Options{
		ConfigFile: c.ConfigFile,
		EnvFile:    c.EnvFile,
		Logger:     log,
	})
}

// NewService creates the Canvas client and the assistant service for cfg.
func NewService(cfg *config.Config, log hclog.Logger) (*canvas.Client, *assistant.Service, error) {
	client, err := canvas.New(cfg.CanvasConfig(log))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating Canvas client: %w", err)
	}

	svc, err := assistant.NewFromClient(client, log)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating assistant: %w", err)
	}
	return client, svc, nil
}

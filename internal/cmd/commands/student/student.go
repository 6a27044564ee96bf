// Package student contains the commands that read a student's Canvas data
// from the terminal.
package student

import (
	"fmt"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

// setup loads the configuration and creates the Canvas client and service.
// Errors are reported through the UI.
func setup(c *base.Command, flags *base.ConfigFlags) (*canvas.Client, *assistant.Service, bool) {
	cfg, err := flags.Load(c.Log)
	if err != nil {
		c.UI.Error(fmt.Sprintf("error loading configuration: %v", err))
		return nil, nil, false
	}

	client, svc, err := base.NewService(cfg, c.Log)
	if err != nil {
		c.UI.Error(err.Error())
		return nil, nil, false
	}
	return client, svc, true
}

// reportFailures prints the per-course failures carried by err and reports
// whether there were any.
func reportFailures(c *base.Command, err error) bool {
	if err == nil {
		return false
	}
	c.UI.Error(assistant.FormatFailures(err))
	return true
}

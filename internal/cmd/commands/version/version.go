package version

import (
	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/internal/version"
)

type Command struct {
	*base.Command
}

func (c *Command) Synopsis() string {
	return "Print the version"
}

func (c *Command) Help() string {
	return `Usage: canvas-mcp version

  Print the version of canvas-mcp.`
}

func (c *Command) Run(args []string) int {
	c.UI.Output("canvas-mcp " + version.Version)
	return 0
}

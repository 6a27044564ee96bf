package student

import (
	"flag"
	"fmt"
	"net/url"

	"github.com/pkg/browser"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
)

type OpenCommand struct {
	*base.Command

	config base.ConfigFlags

	flagPrint bool

	// openURL defaults to browser.OpenURL.
	openURL func(string) error
}

func (c *OpenCommand) Synopsis() string {
	return "Open a course in the default browser"
}

func (c *OpenCommand) Help() string {
	return `Usage: canvas-mcp open [options] <course-id>

  Open the Canvas page of a course in the default browser.` + c.Flags().Help()
}

func (c *OpenCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("open", flag.ContinueOnError))
	c.config.Register(f)
	f.BoolVar(
		&c.flagPrint, "print", false,
		"Print the URL instead of opening it",
	)
	return f
}

func (c *OpenCommand) Run(args []string) int {
	log, ui := c.Log, c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}
	if f.NArg() != 1 {
		ui.Error("exactly one course ID is required")
		return 1
	}
	courseID := f.Arg(0)

	cfg, err := c.config.Load(log)
	if err != nil {
		ui.Error(fmt.Sprintf("error loading configuration: %v", err))
		return 1
	}

	courseURL := cfg.Canvas.Host + "/courses/" + url.PathEscape(courseID)
	if c.flagPrint {
		ui.Output(courseURL)
		return 0
	}

	open := c.openURL
	if open == nil {
		open = browser.OpenURL
	}
	ui.Info(fmt.Sprintf("Opening %s", courseURL))
	if err := open(courseURL); err != nil {
		ui.Error(fmt.Sprintf("error opening browser: %v", err))
		return 1
	}
	return 0
}

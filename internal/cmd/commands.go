package cmd

import (
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/cli"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/commands/serve"
	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/commands/student"
	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/commands/version"
)

// Commands is the mapping of all available canvas-mcp commands.
var Commands map[string]cli.CommandFactory

func initCommands(log hclog.Logger, ui cli.Ui) {
	b := &base.Command{
		Log: log,
		UI:  ui,
	}

	Commands = map[string]cli.CommandFactory{
		"courses": func() (cli.Command, error) {
			return &student.CoursesCommand{Command: b}, nil
		},
		"graphql-due-dates": func() (cli.Command, error) {
			return &student.GraphQLDueDatesCommand{Command: b}, nil
		},
		"inspect": func() (cli.Command, error) {
			return &student.InspectCommand{Command: b}, nil
		},
		"open": func() (cli.Command, error) {
			return &student.OpenCommand{Command: b}, nil
		},
		"serve": func() (cli.Command, error) {
			return &serve.Command{Command: b}, nil
		},
		"upcoming": func() (cli.Command, error) {
			return &student.UpcomingCommand{Command: b}, nil
		},
		"version": func() (cli.Command, error) {
			return &version.Command{Command: b}, nil
		},
	}
}

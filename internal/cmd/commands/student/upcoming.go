package student

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
)

const noUpcoming = "No upcoming assignments with due dates found."

type UpcomingCommand struct {
	*base.Command

	config base.ConfigFlags

	flagCourse string
}

func (c *UpcomingCommand) Synopsis() string {
	return "Show upcoming due dates grouped by week"
}

func (c *UpcomingCommand) Help() string {
	return `Usage: canvas-mcp upcoming [options]

  Show the assignments due after now, sorted by due date and grouped by week,
  for one course or every active course.` + c.Flags().Help()
}

func (c *UpcomingCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("upcoming", flag.ContinueOnError))
	c.config.Register(f)
	f.StringVar(
		&c.flagCourse, "course", "",
		"Only show assignments of this course ID",
	)
	return f
}

func (c *UpcomingCommand) Run(args []string) int {
	ui := c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	_, svc, ok := setup(c.Command, &c.config)
	if !ok {
		return 1
	}

	assignments, err := svc.UpcomingAssignments(context.Background(), c.flagCourse)
	if err != nil && !assistant.IsPartial(err) {
		ui.Error(fmt.Sprintf("error listing upcoming assignments: %v", err))
		return 1
	}

	if len(assignments) == 0 {
		ui.Output(noUpcoming)
	} else {
		ui.Output(fmt.Sprintf("Found %d upcoming assignments:", len(assignments)))
		ui.Output(assistant.FormatByWeek(assignments))
	}

	if reportFailures(c.Command, err) {
		return 1
	}
	return 0
}

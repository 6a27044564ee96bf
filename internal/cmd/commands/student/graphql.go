package student

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
)

type GraphQLDueDatesCommand struct {
	*base.Command

	config base.ConfigFlags
}

func (c *GraphQLDueDatesCommand) Synopsis() string {
	return "Show due dates using the GraphQL API"
}

func (c *GraphQLDueDatesCommand) Help() string {
	return `Usage: canvas-mcp graphql-due-dates [options]

  Show the upcoming due dates of every course with a single GraphQL query.
  When the GraphQL API is not available with the current credentials, the
  REST API is used instead.` + c.Flags().Help()
}

func (c *GraphQLDueDatesCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("graphql-due-dates", flag.ContinueOnError))
	c.config.Register(f)
	return f
}

func (c *GraphQLDueDatesCommand) Run(args []string) int {
	log, ui := c.Log, c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	_, svc, ok := setup(c.Command, &c.config)
	if !ok {
		return 1
	}
	ctx := context.Background()

	if err := svc.GraphQLAvailable(ctx); err != nil {
		log.Debug("graphql probe failed", "error", err)
		ui.Warn(fmt.Sprintf("%v; falling back to the REST API", err))
		return c.restFallback(ctx, svc)
	}

	text, err := svc.GraphQLDueDatesText(ctx)
	if err != nil {
		ui.Error(fmt.Sprintf("error querying due dates: %v", err))
		return 1
	}
	ui.Output(text)
	return 0
}

func (c *GraphQLDueDatesCommand) restFallback(ctx context.Context, svc *assistant.Service) int {
	assignments, err := svc.UpcomingAssignments(ctx, "")
	if err != nil && !assistant.IsPartial(err) {
		c.UI.Error(fmt.Sprintf("error listing upcoming assignments: %v", err))
		return 1
	}

	c.UI.Output(assistant.FormatAssignmentList(assignments, noUpcoming))
	if reportFailures(c.Command, err) {
		return 1
	}
	return 0
}

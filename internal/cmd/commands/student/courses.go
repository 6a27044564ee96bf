package student

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/canvas-mcp/internal/cmd/base"
	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
)

type CoursesCommand struct {
	*base.Command

	config     base.ConfigFlags
	flagState  string
	flagRole   string
	flagBucket string
	flagSearch string
}

func (c *CoursesCommand) Synopsis() string {
	return "List courses with their assignments"
}

func (c *CoursesCommand) Help() string {
	return `Usage: canvas-mcp courses [options]

  List the courses of the current user with every assignment, its due date,
  points and submission status. Only available courses are listed unless
  -state says otherwise.` + c.Flags().Help()
}

func (c *CoursesCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(flag.NewFlagSet("courses", flag.ContinueOnError))
	c.config.Register(f)
	f.StringVar(
		&c.flagState, "state", canvas.CourseStateAvailable,
		"Comma-separated course states: available, completed or unpublished",
	)
	f.StringVar(
		&c.flagRole, "role", "",
		"Only list courses where the user has this enrollment role",
	)
	f.StringVar(
		&c.flagBucket, "bucket", "",
		"Only list assignments in this bucket, e.g. upcoming or overdue",
	)
	f.StringVar(
		&c.flagSearch, "search", "",
		"Only list assignments whose name contains this text",
	)
	return f
}

func (c *CoursesCommand) Run(args []string) int {
	ui := c.UI

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	filter := assistant.AssignmentFilter{Bucket: c.flagBucket, SearchTerm: c.flagSearch}
	if err := filter.Validate(); err != nil {
		ui.Error(err.Error())
		return 1
	}

	_, svc, ok := setup(c.Command, &c.config)
	if !ok {
		return 1
	}
	ctx := context.Background()

	states := splitList(c.flagState)
	courses, err := svc.Courses(ctx, assistant.CourseFilter{
		States:         states,
		EnrollmentRole: c.flagRole,
	})
	if err != nil {
		ui.Error(fmt.Sprintf("error listing courses: %v", err))
		return 1
	}

	kind := "courses"
	if len(states) == 1 && states[0] == canvas.CourseStateAvailable {
		kind = "active courses"
	}
	if len(courses) == 0 {
		ui.Output(fmt.Sprintf("No %s found.", kind))
		return 0
	}

	ui.Output(fmt.Sprintf("Found %d %s:\n", len(courses), kind))
	failed := false
	for _, course := range courses {
		ui.Output(strings.TrimSuffix(assistant.FormatCourse(course), "\n"))

		if course.ID == nil {
			ui.Output(assistant.Separator)
			continue
		}
		assignments, err := svc.CourseAssignments(ctx, *course.ID, filter)
		if err != nil {
			ui.Error(fmt.Sprintf("  error listing assignments: %v", err))
			failed = true
		} else {
			ui.Output(strings.TrimSuffix(assistant.FormatCourseAssignments(assignments), "\n"))
		}
		ui.Output(assistant.Separator)
	}

	if failed {
		return 1
	}
	return 0
}

// splitList splits a comma-separated flag value, dropping empty entries.
func splitList(s string) []string {
	var out []string
	for _, v := range strings.Split(s, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

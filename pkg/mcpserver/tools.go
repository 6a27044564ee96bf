package mcpserver

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/hashicorp-forge/canvas-mcp/pkg/assistant"
)

// NoArgs is the input of tools without arguments.
type NoArgs struct{}

// CourseArgs selects a course.
type CourseArgs struct {
	CourseID string `json:"course_id" jsonschema:"The Canvas course ID"`
}

// OptionalCourseArgs optionally selects a course. Every active course is used
// when CourseID is empty.
type OptionalCourseArgs struct {
	CourseID string `json:"course_id,omitempty" jsonschema:"The Canvas course ID; all active courses when omitted"`
}

// CourseAssignmentsArgs selects a course and optionally narrows its
// assignments.
type CourseAssignmentsArgs struct {
	CourseID   string `json:"course_id" jsonschema:"The Canvas course ID"`
	Bucket     string `json:"bucket,omitempty" jsonschema:"Only list assignments in this bucket: past, overdue, undated, ungraded, unsubmitted, upcoming or future"`
	OrderBy    string `json:"order_by,omitempty" jsonschema:"Sort by position, name or due_at; position when omitted"`
	SearchTerm string `json:"search_term,omitempty" jsonschema:"Only list assignments whose name contains this text"`
}

// DateRangeArgs selects the assignments due within a date range.
type DateRangeArgs struct {
	StartDate string `json:"start_date" jsonschema:"First day of the range, YYYY-MM-DD"`
	EndDate   string `json:"end_date" jsonschema:"Last day of the range (inclusive), YYYY-MM-DD"`
	CourseID  string `json:"course_id,omitempty" jsonschema:"The Canvas course ID; all active courses when omitted"`
}

// toolSpec describes a tool. Every tool only reads Canvas data.
type toolSpec struct {
	Name        string
	Title       string
	Description string
}

func ptr[T any](v T) *T {
	return &v
}

// addTool registers a tool whose handler returns text. A handler error is
// returned to the client as an error result.
func addTool[In any](s *Server, def toolSpec, run func(ctx context.Context, in In) (string, error)) {
	tool := &mcp.Tool{
		Name:        def.Name,
		Description: def.Description,
		Annotations: &mcp.ToolAnnotations{
			Title:         def.Title,
			ReadOnlyHint:  true,
			OpenWorldHint: ptr(true),
		},
	}

	mcp.AddTool(s.server, tool, func(ctx context.Context, req *mcp.CallToolRequest, in In) (*mcp.CallToolResult, any, error) {
		log := s.logger.With("tool", def.Name, "request_id", uuid.NewString())
		start := time.Now()
		log.Debug("calling tool")

		text, err := run(ctx, in)
		if err != nil {
			log.Error("tool failed", "error", err, "duration", time.Since(start))
			return nil, nil, err
		}

		log.Info("tool completed", "duration", time.Since(start))
		return &mcp.CallToolResult{
			Content: []mcp.Content{&mcp.TextContent{Text: text}},
		}, nil, nil
	})
}

func (s *Server) registerTools() {
	svc := s.service

	addTool(s, toolSpec{
		Name:        "get_current_date",
		Title:       "Current date",
		Description: "Get today's date (YYYY-MM-DD).",
	}, func(ctx context.Context, _ NoArgs) (string, error) {
		return svc.CurrentDateText(), nil
	})

	addTool(s, toolSpec{
		Name:        "get_course_info",
		Title:       "Course information",
		Description: "Get the name, code, term and state of a course.",
	}, func(ctx context.Context, in CourseArgs) (string, error) {
		return svc.CourseInfoText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "list_active_courses",
		Title:       "Active courses",
		Description: "List the courses the user is actively enrolled in.",
	}, func(ctx context.Context, _ NoArgs) (string, error) {
		return svc.ActiveCoursesText(ctx)
	})

	addTool(s, toolSpec{
		Name:        "get_course_assignments",
		Title:       "Course assignments",
		Description: "List the assignments of a course with due dates, points and submission status, optionally filtered by bucket or name.",
	}, func(ctx context.Context, in CourseAssignmentsArgs) (string, error) {
		return svc.CourseAssignmentsText(ctx, in.CourseID, assistant.AssignmentFilter{
			Bucket:     in.Bucket,
			OrderBy:    in.OrderBy,
			SearchTerm: in.SearchTerm,
		})
	})

	addTool(s, toolSpec{
		Name:        "get_upcoming_assignments",
		Title:       "Upcoming assignments",
		Description: "List assignments due after now, sorted by due date, for one course or all active courses.",
	}, func(ctx context.Context, in OptionalCourseArgs) (string, error) {
		return svc.UpcomingAssignmentsText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_next_assignment",
		Title:       "Next assignment",
		Description: "Get the next assignment due in a course.",
	}, func(ctx context.Context, in CourseArgs) (string, error) {
		return svc.NextAssignmentText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_assignments_due_this_week",
		Title:       "Assignments due this week",
		Description: "List assignments due within the next seven days, for one course or all active courses.",
	}, func(ctx context.Context, in OptionalCourseArgs) (string, error) {
		return svc.AssignmentsDueThisWeekText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_assignments_by_date_range",
		Title:       "Assignments by date range",
		Description: "List assignments due between two dates (YYYY-MM-DD, inclusive), for one course or all active courses.",
	}, func(ctx context.Context, in DateRangeArgs) (string, error) {
		return svc.AssignmentsByDateRangeText(ctx, in.StartDate, in.EndDate, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_course_modules",
		Title:       "Course modules",
		Description: "List the modules of a course and their items.",
	}, func(ctx context.Context, in CourseArgs) (string, error) {
		return svc.CourseModulesText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_course_files",
		Title:       "Course files",
		Description: "List the files of a course.",
	}, func(ctx context.Context, in CourseArgs) (string, error) {
		return svc.CourseFilesText(ctx, in.CourseID)
	})

	addTool(s, toolSpec{
		Name:        "get_current_user",
		Title:       "Current user",
		Description: "Get the profile of the user owning the access token.",
	}, func(ctx context.Context, _ NoArgs) (string, error) {
		return svc.CurrentUserText(ctx)
	})

	addTool(s, toolSpec{
		Name:        "get_due_dates_graphql",
		Title:       "Due dates (GraphQL)",
		Description: "List upcoming due dates of every course with a single GraphQL query.",
	}, func(ctx context.Context, _ NoArgs) (string, error) {
		return svc.GraphQLDueDatesText(ctx)
	})
}

package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/hashicorp-forge/canvas-mcp/pkg/normalize"
)

// ===================================================================
// Text operations
// ===================================================================
// Each method returns human-readable text for a language model host. Errors
// identify the Canvas call that failed. Multi-course operations return the
// text of the courses that succeeded followed by the failures, without an
// error.

// CurrentDateText returns today's date in DateLayout.
func (s *Service) CurrentDateText() string {
	return s.Today()
}

// CourseInfoText describes a course.
func (s *Service) CourseInfoText(ctx context.Context, courseID string) (string, error) {
	course, err := s.Course(ctx, courseID)
	if err != nil {
		return "", err
	}
	return FormatCourse(course), nil
}

// ActiveCoursesText lists the active courses.
func (s *Service) ActiveCoursesText(ctx context.Context) (string, error) {
	courses, err := s.ActiveCourses(ctx)
	if err != nil {
		return "", err
	}
	return FormatCourseList(courses), nil
}

// CourseAssignmentsText lists the assignments of a course matching filter.
func (s *Service) CourseAssignmentsText(ctx context.Context, courseID string, filter AssignmentFilter) (string, error) {
	assignments, err := s.CourseAssignments(ctx, courseID, filter)
	if err != nil {
		return "", err
	}
	if len(assignments) == 0 {
		return fmt.Sprintf("No assignments found for course %s.\n", courseID), nil
	}
	return fmt.Sprintf("Assignments for course %s (%d):\n%s", courseID, len(assignments),
		FormatCourseAssignments(assignments)), nil
}

// UpcomingAssignmentsText lists the upcoming assignments of one course, or of
// every active course when courseID is empty.
func (s *Service) UpcomingAssignmentsText(ctx context.Context, courseID string) (string, error) {
	assignments, err := s.UpcomingAssignments(ctx, courseID)
	return withFailures(FormatAssignmentList(assignments, "No upcoming assignments with due dates found."), err)
}

// NextAssignmentText describes the next assignment due in a course.
func (s *Service) NextAssignmentText(ctx context.Context, courseID string) (string, error) {
	next, err := s.NextAssignment(ctx, courseID)
	if err != nil {
		return "", err
	}
	if next == nil {
		return "No upcoming assignments\n", nil
	}
	return "Next assignment:\n" + FormatAssignment(next), nil
}

// AssignmentsDueThisWeekText lists the assignments due within the next seven
// days.
func (s *Service) AssignmentsDueThisWeekText(ctx context.Context, courseID string) (string, error) {
	assignments, err := s.AssignmentsDueThisWeek(ctx, courseID)
	return withFailures(FormatAssignmentList(assignments, "No assignments due this week."), err)
}

// AssignmentsByDateRangeText lists the assignments due within a date range.
func (s *Service) AssignmentsByDateRangeText(ctx context.Context, startDate, endDate, courseID string) (string, error) {
	assignments, err := s.AssignmentsByDateRange(ctx, startDate, endDate, courseID)
	empty := fmt.Sprintf("No assignments due between %s and %s.", startDate, endDate)
	return withFailures(FormatAssignmentList(assignments, empty), err)
}

// CourseModulesText lists the modules of a course.
func (s *Service) CourseModulesText(ctx context.Context, courseID string) (string, error) {
	modules, err := s.CourseModules(ctx, courseID)
	if err != nil {
		return "", err
	}
	return FormatModules(modules), nil
}

// CourseFilesText lists the files of a course.
func (s *Service) CourseFilesText(ctx context.Context, courseID string) (string, error) {
	files, err := s.CourseFiles(ctx, courseID)
	if err != nil {
		return "", err
	}
	return FormatFiles(files), nil
}

// CurrentUserText describes the token's owner.
func (s *Service) CurrentUserText(ctx context.Context) (string, error) {
	user, err := s.CurrentUser(ctx)
	if err != nil {
		return "", err
	}
	return FormatUser(user), nil
}

// GraphQLDueDatesText lists upcoming due dates using a single GraphQL query.
func (s *Service) GraphQLDueDatesText(ctx context.Context) (string, error) {
	courses, err := s.GraphQLDueDates(ctx)
	if err != nil {
		return "", err
	}
	return FormatGraphQLCourses(courses, s.now()), nil
}

// CourseSummaryPrompt builds a prompt asking the model to summarize a course.
func (s *Service) CourseSummaryPrompt(ctx context.Context, courseID string) (string, error) {
	course, err := s.Course(ctx, courseID)
	if err != nil {
		return "", err
	}
	assignments, err := s.CourseAssignments(ctx, courseID, AssignmentFilter{})
	if err != nil {
		return "", err
	}

	v := course.View()

	var b strings.Builder
	fmt.Fprintf(&b, "Please provide a summary of the course '%s':\n\n", v.Name)
	b.WriteString("Course Information:\n")
	fmt.Fprintf(&b, "- Name: %s\n", v.Name)
	fmt.Fprintf(&b, "- Code: %s\n", v.Code)
	fmt.Fprintf(&b, "- Term: %s\n", v.Term)
	b.WriteString("\nAssignments:\n")
	if len(assignments) == 0 {
		b.WriteString("- none\n")
	}
	for _, a := range assignments {
		due := "No due date"
		if a.DueAt != nil {
			due = a.DueAt.Format("2006-01-02 15:04 MST")
		}
		fmt.Fprintf(&b, "- %s (Due: %s, Points: %s)\n",
			normalize.Or(a.Name), due, normalize.FormatPoints(a.PointsPossible))
	}
	return b.String(), nil
}

// withFailures appends per-course failures to text. Any other error replaces
// the text.
func withFailures(text string, err error) (string, error) {
	if err == nil {
		return text, nil
	}
	if !IsPartial(err) {
		return "", err
	}
	return text + FormatFailures(err), nil
}

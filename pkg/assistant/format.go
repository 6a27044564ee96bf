package assistant

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/canvas-mcp/pkg/normalize"
)

// Separator divides courses in multi-course listings.
var Separator = strings.Repeat("-", 80)

// FormatCourse formats the details of a single course.
func FormatCourse(c *normalize.Course) string {
	v := c.View()

	var b strings.Builder
	fmt.Fprintf(&b, "Course: %s\n", v.Name)
	fmt.Fprintf(&b, "ID: %s\n", v.ID)
	fmt.Fprintf(&b, "Code: %s\n", v.Code)
	fmt.Fprintf(&b, "Term: %s\n", v.Term)
	fmt.Fprintf(&b, "State: %s\n", v.State)
	return b.String()
}

// FormatCourseList formats a list of courses, one per line.
func FormatCourseList(courses []*normalize.Course) string {
	if len(courses) == 0 {
		return "No active courses found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d active courses:\n\n", len(courses))
	for _, c := range courses {
		v := c.View()
		fmt.Fprintf(&b, "- %s (ID: %s)\n", v.Name, v.ID)
		fmt.Fprintf(&b, "  Code: %s\n", v.Code)
		fmt.Fprintf(&b, "  Term: %s\n", v.Term)
	}
	return b.String()
}

// FormatAssignment formats an assignment as a block headed by its due date.
func FormatAssignment(a *normalize.Assignment) string {
	v := a.View()

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", v.DueDate)
	fmt.Fprintf(&b, "Course: %s\n", v.Course)
	fmt.Fprintf(&b, "Assignment: %s\n", v.Name)
	fmt.Fprintf(&b, "Points: %s\n", v.Points)
	fmt.Fprintf(&b, "Status: %s\n", v.Status)
	return b.String()
}

// FormatAssignmentList formats assignments as blocks under a count line.
// empty is returned when there are no assignments.
func FormatAssignmentList(assignments []*normalize.Assignment, empty string) string {
	if len(assignments) == 0 {
		return empty + "\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d assignments:\n", len(assignments))
	for _, a := range assignments {
		b.WriteString("\n")
		b.WriteString(FormatAssignment(a))
	}
	return b.String()
}

// FormatCourseAssignments formats the assignments of one course as an
// indented list. Assignments with a due date come first, sorted; the rest are
// counted.
func FormatCourseAssignments(assignments []*normalize.Assignment) string {
	var dated, undated []*normalize.Assignment
	for _, a := range assignments {
		if a.DueAt != nil {
			dated = append(dated, a)
		} else {
			undated = append(undated, a)
		}
	}
	normalize.SortByDueDate(dated)

	var b strings.Builder
	if len(dated) == 0 {
		b.WriteString("  No assignments with due dates found.\n")
	} else {
		b.WriteString("  Assignments:\n")
		for _, a := range dated {
			v := a.View()
			fmt.Fprintf(&b, "    - %s\n", v.Name)
			fmt.Fprintf(&b, "      Due: %s\n", v.DueDate)
			fmt.Fprintf(&b, "      Points: %s\n", v.Points)
			fmt.Fprintf(&b, "      Status: %s\n", v.Status)
		}
	}
	if len(undated) > 0 {
		fmt.Fprintf(&b, "  %d assignments without due dates.\n", len(undated))
	}
	return b.String()
}

// FormatByWeek formats assignments sorted by due date, grouped under a header
// per calendar week starting on Sunday. Assignments without a due date are
// skipped.
func FormatByWeek(assignments []*normalize.Assignment) string {
	var b strings.Builder
	var current time.Time
	for _, a := range assignments {
		if a.DueAt == nil {
			continue
		}

		week := weekStart(*a.DueAt)
		if !week.Equal(current) {
			current = week
			fmt.Fprintf(&b, "\n--- Week of %s ---\n\n", week.Format("Jan 02"))
		}
		b.WriteString(FormatAssignment(a))
		b.WriteString("\n")
	}
	return b.String()
}

func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	return day.AddDate(0, 0, -int(day.Weekday()))
}

// FormatModules formats the modules of a course.
func FormatModules(modules []*normalize.Module) string {
	if len(modules) == 0 {
		return "No modules found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d modules:\n", len(modules))
	for _, m := range modules {
		v := m.View()
		fmt.Fprintf(&b, "\n%s. %s\n", v.Position, v.Name)
		fmt.Fprintf(&b, "  Items: %s\n", v.Items)
		fmt.Fprintf(&b, "  State: %s\n", v.State)
		for _, item := range m.Items {
			fmt.Fprintf(&b, "  - %s (%s)\n", normalize.Or(item.Title), normalize.Or(item.Type))
		}
	}
	return b.String()
}

// FormatFiles formats file metadata.
func FormatFiles(files []*normalize.File) string {
	if len(files) == 0 {
		return "No files found.\n"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d files:\n", len(files))
	for _, f := range files {
		size := normalize.NotAvailable
		if f.Size != nil {
			size = strconv.FormatInt(*f.Size, 10) + " bytes"
		}
		fmt.Fprintf(&b, "- %s (%s, %s, updated %s)\n",
			normalize.Or(f.DisplayName),
			normalize.Or(f.ContentType),
			size,
			normalize.FormatTime(f.UpdatedAt),
		)
	}
	return b.String()
}

// FormatUser formats a user profile.
func FormatUser(u *normalize.User) string {
	v := u.View()

	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", v.Name)
	fmt.Fprintf(&b, "ID: %s\n", v.ID)
	fmt.Fprintf(&b, "Short name: %s\n", v.ShortName)
	fmt.Fprintf(&b, "Login: %s\n", v.LoginID)
	fmt.Fprintf(&b, "Email: %s\n", v.Email)
	return b.String()
}

// FormatGraphQLCourses formats the upcoming assignments per course followed by
// every upcoming assignment across courses, sorted by due date.
func FormatGraphQLCourses(courses []normalize.CourseWithAssignments, now time.Time) string {
	if len(courses) == 0 {
		return "No courses found with GraphQL API.\n"
	}

	var b strings.Builder
	var all []*normalize.Assignment
	fmt.Fprintf(&b, "Found %d courses\n\n", len(courses))
	for _, entry := range courses {
		v := entry.Course.View()
		fmt.Fprintf(&b, "Course: %s\n", v.Name)
		fmt.Fprintf(&b, "Term: %s\n", v.Term)
		fmt.Fprintf(&b, "ID: %s\n", v.ID)

		upcoming := filter(entry.Assignments, func(a *normalize.Assignment) bool {
			return a.DueAfter(now)
		})
		normalize.SortByDueDate(upcoming)
		all = append(all, upcoming...)

		if len(upcoming) == 0 {
			b.WriteString("  No upcoming assignments\n")
		} else {
			fmt.Fprintf(&b, "  Upcoming Assignments (%d):\n", len(upcoming))
			for _, a := range upcoming {
				av := a.View()
				fmt.Fprintf(&b, "    - %s\n", av.Name)
				fmt.Fprintf(&b, "      Due: %s\n", av.DueDate)
				fmt.Fprintf(&b, "      Points: %s\n", av.Points)
			}
		}
		fmt.Fprintf(&b, "%s\n\n", Separator)
	}

	if len(all) > 0 {
		normalize.SortByDueDate(all)
		b.WriteString("===== ALL UPCOMING ASSIGNMENTS =====\n\n")
		fmt.Fprintf(&b, "Total: %d assignments\n", len(all))
		for _, a := range all {
			b.WriteString("\n")
			b.WriteString(FormatAssignment(a))
		}
	}
	return b.String()
}

// FormatFailures lists the per-course failures of a multi-course operation.
// It returns "" when err is nil.
func FormatFailures(err error) string {
	if err == nil {
		return ""
	}

	var merr *multierror.Error
	if !errors.As(err, &merr) {
		return fmt.Sprintf("\nError: %s\n", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "\nSome courses could not be read (%d):\n", len(merr.Errors))
	for _, e := range merr.Errors {
		fmt.Fprintf(&b, "- %s\n", e)
	}
	return b.String()
}

// IsPartial reports whether err only carries per-course failures, so the
// results returned with it are still usable.
func IsPartial(err error) bool {
	var merr *multierror.Error
	return errors.As(err, &merr)
}

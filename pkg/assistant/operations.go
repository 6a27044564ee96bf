package assistant

import (
	"context"
	"errors"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-multierror"

	"github.com/hashicorp-forge/canvas-mcp/pkg/canvas"
	"github.com/hashicorp-forge/canvas-mcp/pkg/normalize"
)

// DateLayout is the only accepted format of date arguments.
const DateLayout = "2006-01-02"

// Week is the window of AssignmentsDueThisWeek.
const Week = 7 * 24 * time.Hour

// ErrGraphQLUnavailable is returned when the instance does not answer GraphQL
// queries with the current credentials.
var ErrGraphQLUnavailable = errors.New("GraphQL API is not available with the current credentials")

var assignmentIncludes = []string{"submission"}

// Today returns the current date in DateLayout.
func (s *Service) Today() string {
	return s.now().Format(DateLayout)
}

// Course fetches a single course including its term.
func (s *Service) Course(ctx context.Context, courseID string) (*normalize.Course, error) {
	if err := validateCourseID(courseID); err != nil {
		return nil, err
	}

	raw, err := s.canvas.GetCourse(ctx, courseID, "term")
	if err != nil {
		return nil, err
	}
	course := normalize.NewCourse(raw)
	if course.ID == nil {
		course.ID = &courseID
	}
	return course, nil
}

// ActiveCourses lists the available courses of the current user.
func (s *Service) ActiveCourses(ctx context.Context) ([]*normalize.Course, error) {
	raw, err := s.canvas.ListActiveCourses(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NewCourses(raw), nil
}

// CourseFilter narrows Courses.
type CourseFilter struct {
	// States are course workflow states. Defaults to available courses.
	States []string `json:"state"`

	// EnrollmentRole restricts the listing to a custom enrollment role.
	EnrollmentRole string `json:"enrollment_role"`
}

// Validate checks every state is a Canvas course workflow state.
func (f CourseFilter) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.States, validation.Each(validation.In(
			canvas.CourseStateAvailable,
			canvas.CourseStateCompleted,
			canvas.CourseStateUnpublished,
		))),
	); err != nil {
		return fmt.Errorf("invalid course filter: %w", err)
	}
	return nil
}

// Courses lists the courses of the current user matching filter, including
// their term.
func (s *Service) Courses(ctx context.Context, filter CourseFilter) ([]*normalize.Course, error) {
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	states := filter.States
	if len(states) == 0 {
		states = []string{canvas.CourseStateAvailable}
	}

	raw, err := s.canvas.ListCourses(ctx, &canvas.ListCoursesOptions{
		EnrollmentRole: filter.EnrollmentRole,
		Include:        []string{"term"},
		State:          states,
	})
	if err != nil {
		return nil, err
	}
	return normalize.NewCourses(raw), nil
}

// AssignmentFilter narrows CourseAssignments. The zero value lists every
// assignment in course order.
type AssignmentFilter struct {
	// Bucket is one of the canvas.Bucket constants.
	Bucket string `json:"bucket"`

	// OrderBy is one of the canvas.OrderBy constants.
	OrderBy string `json:"order_by"`

	// SearchTerm matches part of the assignment name.
	SearchTerm string `json:"search_term"`
}

// Validate checks Bucket and OrderBy against the values Canvas accepts.
func (f AssignmentFilter) Validate() error {
	if err := validation.ValidateStruct(&f,
		validation.Field(&f.Bucket, validation.In(
			canvas.BucketPast,
			canvas.BucketOverdue,
			canvas.BucketUndated,
			canvas.BucketUngraded,
			canvas.BucketUnsubmitted,
			canvas.BucketUpcoming,
			canvas.BucketFuture,
		)),
		validation.Field(&f.OrderBy, validation.In(
			canvas.OrderByPosition,
			canvas.OrderByName,
			canvas.OrderByDueAt,
		)),
	); err != nil {
		return fmt.Errorf("invalid assignment filter: %w", err)
	}
	return nil
}

// CourseAssignments lists the assignments of a course matching filter,
// including the current user's submission.
func (s *Service) CourseAssignments(ctx context.Context, courseID string, filter AssignmentFilter) ([]*normalize.Assignment, error) {
	if err := validateCourseID(courseID); err != nil {
		return nil, err
	}
	if err := filter.Validate(); err != nil {
		return nil, err
	}
	return s.courseAssignments(ctx, courseID, nil, &canvas.ListAssignmentsOptions{
		Bucket:     filter.Bucket,
		OrderBy:    filter.OrderBy,
		SearchTerm: filter.SearchTerm,
	})
}

func (s *Service) courseAssignments(ctx context.Context, courseID string, courseName *string, opts *canvas.ListAssignmentsOptions) ([]*normalize.Assignment, error) {
	if opts == nil {
		opts = &canvas.ListAssignmentsOptions{}
	}
	opts.Include = assignmentIncludes

	raw, err := s.canvas.ListAssignments(ctx, courseID, opts)
	if err != nil {
		return nil, err
	}

	assignments := normalize.NewAssignments(raw)
	for _, a := range assignments {
		if a.CourseID == nil {
			a.CourseID = &courseID
		}
		if courseName != nil {
			a.CourseName = courseName
		}
	}
	return assignments, nil
}

// UpcomingAssignments returns the assignments due strictly after now, sorted
// by due date. Assignments without a due date are excluded.
//
// Without a course id every active course is searched. Courses whose
// assignments cannot be fetched are reported in a *multierror.Error returned
// alongside the assignments of the other courses.
func (s *Service) UpcomingAssignments(ctx context.Context, courseID string) ([]*normalize.Assignment, error) {
	now := s.now()
	return s.filterAssignments(ctx, courseID, func(a *normalize.Assignment) bool {
		return a.DueAfter(now)
	})
}

// AssignmentsDueThisWeek returns the assignments due in (now, now+7d].
func (s *Service) AssignmentsDueThisWeek(ctx context.Context, courseID string) ([]*normalize.Assignment, error) {
	now := s.now()
	end := now.Add(Week)
	return s.filterAssignments(ctx, courseID, func(a *normalize.Assignment) bool {
		return a.DueWithin(now, end)
	})
}

// AssignmentsByDateRange returns the assignments due between the start of
// startDate and the end of endDate, in UTC. Both dates must use DateLayout.
func (s *Service) AssignmentsByDateRange(ctx context.Context, startDate, endDate, courseID string) ([]*normalize.Assignment, error) {
	r := DateRange{Start: startDate, End: endDate}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	start, end := r.Bounds()

	return s.filterAssignments(ctx, courseID, func(a *normalize.Assignment) bool {
		return a.DueAt != nil && !a.DueAt.Before(start) && a.DueAt.Before(end)
	})
}

// NextAssignment returns the next assignment due in a course, or nil when
// nothing is upcoming.
func (s *Service) NextAssignment(ctx context.Context, courseID string) (*normalize.Assignment, error) {
	course, err := s.Course(ctx, courseID)
	if err != nil {
		return nil, err
	}

	assignments, err := s.courseAssignments(ctx, courseID, course.Name, &canvas.ListAssignmentsOptions{
		Bucket:  canvas.BucketUpcoming,
		OrderBy: canvas.OrderByDueAt,
	})
	if err != nil {
		return nil, err
	}

	upcoming := filter(assignments, func(a *normalize.Assignment) bool {
		return a.DueAfter(s.now())
	})
	if len(upcoming) == 0 {
		return nil, nil
	}
	normalize.SortByDueDate(upcoming)
	return upcoming[0], nil
}

// filterAssignments collects the assignments of one course, or of every
// active course when courseID is empty, that match keep, sorted by due date.
func (s *Service) filterAssignments(ctx context.Context, courseID string, keep func(*normalize.Assignment) bool) ([]*normalize.Assignment, error) {
	var courses []*normalize.Course
	if courseID != "" {
		course, err := s.Course(ctx, courseID)
		if err != nil {
			return nil, err
		}
		courses = []*normalize.Course{course}
	} else {
		var err error
		courses, err = s.ActiveCourses(ctx)
		if err != nil {
			return nil, err
		}
	}

	var result []*normalize.Assignment
	var merr *multierror.Error
	for _, course := range courses {
		if course.ID == nil {
			s.logger.Warn("skipping course with missing id", "course", normalize.Or(course.Name))
			continue
		}

		assignments, err := s.courseAssignments(ctx, *course.ID, course.Name, nil)
		if err != nil {
			if courseID != "" {
				return nil, err
			}
			s.logger.Warn("error fetching assignments", "course_id", *course.ID, "error", err)
			merr = multierror.Append(merr, fmt.Errorf("course %s (%s): %w",
				normalize.Or(course.Name), *course.ID, err))
			continue
		}

		result = append(result, filter(assignments, keep)...)
	}

	normalize.SortByDueDate(result)
	return result, merr.ErrorOrNil()
}

// CourseModules lists the modules of a course including their items.
func (s *Service) CourseModules(ctx context.Context, courseID string) ([]*normalize.Module, error) {
	if err := validateCourseID(courseID); err != nil {
		return nil, err
	}

	raw, err := s.canvas.ListModules(ctx, courseID, "items")
	if err != nil {
		return nil, err
	}

	modules := make([]*normalize.Module, 0, len(raw))
	for _, r := range raw {
		modules = append(modules, normalize.NewModule(r))
	}
	return modules, nil
}

// CourseFiles lists the files of a course.
func (s *Service) CourseFiles(ctx context.Context, courseID string) ([]*normalize.File, error) {
	if err := validateCourseID(courseID); err != nil {
		return nil, err
	}

	raw, err := s.canvas.ListCourseFiles(ctx, courseID)
	if err != nil {
		return nil, err
	}

	files := make([]*normalize.File, 0, len(raw))
	for _, r := range raw {
		files = append(files, normalize.NewFile(r))
	}
	return files, nil
}

// CurrentUser fetches the profile of the token's owner.
func (s *Service) CurrentUser(ctx context.Context) (*normalize.User, error) {
	raw, err := s.canvas.GetSelf(ctx)
	if err != nil {
		return nil, err
	}
	return normalize.NewUser(raw), nil
}

// GraphQLAvailable probes the GraphQL endpoint with a minimal query.
func (s *Service) GraphQLAvailable(ctx context.Context) error {
	if s.graphql == nil {
		return ErrGraphQLUnavailable
	}

	data, err := s.graphql.Query(ctx, canvas.PingQuery, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGraphQLUnavailable, err)
	}
	if _, ok := data["allCourses"]; !ok {
		return ErrGraphQLUnavailable
	}
	return nil
}

// GraphQLDueDates fetches every course with its assignments in a single
// GraphQL query.
func (s *Service) GraphQLDueDates(ctx context.Context) ([]normalize.CourseWithAssignments, error) {
	if s.graphql == nil {
		return nil, ErrGraphQLUnavailable
	}

	data, err := s.graphql.Query(ctx, canvas.DueDatesQuery, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query due dates: %w", err)
	}
	return normalize.GraphQLCourses(data), nil
}

// DateRange is an inclusive range of calendar days.
type DateRange struct {
	Start string `json:"start_date"`
	End   string `json:"end_date"`
}

// Validate checks both dates use DateLayout and that Start is not after End.
func (r DateRange) Validate() error {
	dateRule := validation.Date(DateLayout).Error("must be a valid date in YYYY-MM-DD format")
	if err := validation.ValidateStruct(&r,
		validation.Field(&r.Start, validation.Required, dateRule),
		validation.Field(&r.End, validation.Required, dateRule),
	); err != nil {
		return fmt.Errorf("invalid date range: %w", err)
	}

	first, _ := time.ParseInLocation(DateLayout, r.Start, time.UTC)
	last, _ := time.ParseInLocation(DateLayout, r.End, time.UTC)
	if first.After(last) {
		return fmt.Errorf("start date %s must be before end date %s", r.Start, r.End)
	}
	return nil
}

// Bounds returns the start of the first day and the start of the day after the
// last day, in UTC. It assumes Validate succeeded.
func (r DateRange) Bounds() (start, end time.Time) {
	start, _ = time.ParseInLocation(DateLayout, r.Start, time.UTC)
	last, _ := time.ParseInLocation(DateLayout, r.End, time.UTC)
	return start, last.AddDate(0, 0, 1)
}

func validateCourseID(courseID string) error {
	return validation.Validate(courseID, validation.Required.Error("course_id is required"))
}

func filter(assignments []*normalize.Assignment, keep func(*normalize.Assignment) bool) []*normalize.Assignment {
	var out []*normalize.Assignment
	for _, a := range assignments {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out
}
